package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SecuritySchemeType is the "type" discriminator of a security scheme.
type SecuritySchemeType string

// SecuritySchemeType enum values
const (
	SecuritySchemeTypeAPIKey        SecuritySchemeType = "apiKey"
	SecuritySchemeTypeHTTP          SecuritySchemeType = "http"
	SecuritySchemeTypeOAuth2        SecuritySchemeType = "oauth2"
	SecuritySchemeTypeOpenIDConnect SecuritySchemeType = "openIdConnect"
)

// APIKeyLocation is where an API key is sent.
type APIKeyLocation string

// APIKeyLocation enum values
const (
	APIKeyLocationQuery  APIKeyLocation = "query"
	APIKeyLocationHeader APIKeyLocation = "header"
	APIKeyLocationCookie APIKeyLocation = "cookie"
)

// IsValid reports whether l is a known location
func (l APIKeyLocation) IsValid() bool {
	switch l {
	case APIKeyLocationQuery, APIKeyLocationHeader, APIKeyLocationCookie:
		return true
	default:
		return false
	}
}

// OAuth2 flow names as they appear in OAuthFlows
const (
	OAuthFlowAuthorizationCode = "authorizationCode"
	OAuthFlowClientCredentials = "clientCredentials"
	OAuthFlowImplicit          = "implicit"
	OAuthFlowPassword          = "password"
)

// SecurityScheme is a closed union over the four scheme variants,
// discriminated on the wire by the "type" field.
type SecurityScheme interface {
	SchemeType() SecuritySchemeType
	isSecurityScheme()
}

// Defines a security scheme using an API key.
type APIKeySecurityScheme struct {
	Description *string        `json:"description,omitempty"`
	In          APIKeyLocation `json:"in"`
	Name        string         `json:"name"`
}

// Defines a security scheme using HTTP authentication.
type HTTPAuthSecurityScheme struct {
	BearerFormat *string `json:"bearerFormat,omitempty"`
	Description  *string `json:"description,omitempty"`
	Scheme       string  `json:"scheme"`
}

// Defines a security scheme using OAuth 2.0.
type OAuth2SecurityScheme struct {
	Description *string    `json:"description,omitempty"`
	Flows       OAuthFlows `json:"flows"`
}

// Defines a security scheme using OpenID Connect.
type OpenIDConnectSecurityScheme struct {
	Description      *string `json:"description,omitempty"`
	OpenIDConnectURL string  `json:"openIdConnectUrl"`
}

// Defines the configuration for the supported OAuth 2.0 flows.
type OAuthFlows struct {
	AuthorizationCode *AuthorizationCodeOAuthFlow `json:"authorizationCode,omitempty"`
	ClientCredentials *ClientCredentialsOAuthFlow `json:"clientCredentials,omitempty"`
	Implicit          *ImplicitOAuthFlow          `json:"implicit,omitempty"`
	Password          *PasswordOAuthFlow          `json:"password,omitempty"`
}

// Defines configuration details for the OAuth 2.0 Authorization Code flow.
type AuthorizationCodeOAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl"`
	RefreshURL       *string           `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes"`
	TokenURL         string            `json:"tokenUrl"`
}

// Defines configuration details for the OAuth 2.0 Client Credentials flow.
type ClientCredentialsOAuthFlow struct {
	RefreshURL *string           `json:"refreshUrl,omitempty"`
	Scopes     map[string]string `json:"scopes"`
	TokenURL   string            `json:"tokenUrl"`
}

// Defines configuration details for the OAuth 2.0 Implicit flow.
type ImplicitOAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl"`
	RefreshURL       *string           `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes"`
}

// Defines configuration details for the OAuth 2.0 Resource Owner Password flow.
type PasswordOAuthFlow struct {
	RefreshURL *string           `json:"refreshUrl,omitempty"`
	Scopes     map[string]string `json:"scopes"`
	TokenURL   string            `json:"tokenUrl"`
}

func (APIKeySecurityScheme) SchemeType() SecuritySchemeType        { return SecuritySchemeTypeAPIKey }
func (HTTPAuthSecurityScheme) SchemeType() SecuritySchemeType      { return SecuritySchemeTypeHTTP }
func (OAuth2SecurityScheme) SchemeType() SecuritySchemeType        { return SecuritySchemeTypeOAuth2 }
func (OpenIDConnectSecurityScheme) SchemeType() SecuritySchemeType { return SecuritySchemeTypeOpenIDConnect }

func (APIKeySecurityScheme) isSecurityScheme()        {}
func (HTTPAuthSecurityScheme) isSecurityScheme()      {}
func (OAuth2SecurityScheme) isSecurityScheme()        {}
func (OpenIDConnectSecurityScheme) isSecurityScheme() {}

// MarshalJSON writes the scheme with its type discriminator
func (s APIKeySecurityScheme) MarshalJSON() ([]byte, error) {
	type scheme APIKeySecurityScheme
	return json.Marshal(struct {
		Type SecuritySchemeType `json:"type"`
		scheme
	}{Type: SecuritySchemeTypeAPIKey, scheme: scheme(s)})
}

// MarshalJSON writes the scheme with its type discriminator
func (s HTTPAuthSecurityScheme) MarshalJSON() ([]byte, error) {
	type scheme HTTPAuthSecurityScheme
	return json.Marshal(struct {
		Type SecuritySchemeType `json:"type"`
		scheme
	}{Type: SecuritySchemeTypeHTTP, scheme: scheme(s)})
}

// MarshalJSON writes the scheme with its type discriminator
func (s OAuth2SecurityScheme) MarshalJSON() ([]byte, error) {
	type scheme OAuth2SecurityScheme
	return json.Marshal(struct {
		Type SecuritySchemeType `json:"type"`
		scheme
	}{Type: SecuritySchemeTypeOAuth2, scheme: scheme(s)})
}

// MarshalJSON writes the scheme with its type discriminator
func (s OpenIDConnectSecurityScheme) MarshalJSON() ([]byte, error) {
	type scheme OpenIDConnectSecurityScheme
	return json.Marshal(struct {
		Type SecuritySchemeType `json:"type"`
		scheme
	}{Type: SecuritySchemeTypeOpenIDConnect, scheme: scheme(s)})
}

// UnmarshalSecurityScheme decodes a single scheme by its type discriminator
func UnmarshalSecurityScheme(data []byte) (SecurityScheme, error) {
	var probe struct {
		Type SecuritySchemeType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal security scheme: %w", err)
	}

	switch probe.Type {
	case SecuritySchemeTypeAPIKey:
		var s APIKeySecurityScheme
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal apiKey scheme: %w", err)
		}
		return s, nil
	case SecuritySchemeTypeHTTP:
		var s HTTPAuthSecurityScheme
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal http scheme: %w", err)
		}
		return s, nil
	case SecuritySchemeTypeOAuth2:
		var s OAuth2SecurityScheme
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal oauth2 scheme: %w", err)
		}
		return s, nil
	case SecuritySchemeTypeOpenIDConnect:
		var s OpenIDConnectSecurityScheme
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal openIdConnect scheme: %w", err)
		}
		return s, nil
	case "":
		return nil, fmt.Errorf("security scheme is missing the type discriminator")
	default:
		return nil, fmt.Errorf("unsupported security scheme type %q", probe.Type)
	}
}

// SecuritySchemes maps scheme names to schemes, decoding each value by type
type SecuritySchemes map[string]SecurityScheme

// UnmarshalJSON decodes every entry through UnmarshalSecurityScheme
func (s *SecuritySchemes) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal security schemes: %w", err)
	}
	if raw == nil {
		*s = nil
		return nil
	}

	schemes := make(SecuritySchemes, len(raw))
	for name, entry := range raw {
		scheme, err := UnmarshalSecurityScheme(entry)
		if err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
		schemes[name] = scheme
	}
	*s = schemes
	return nil
}

// Names returns the scheme names in sorted order
func (s SecuritySchemes) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
