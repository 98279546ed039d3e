// Package security validates the security scheme declarations of an agent
// card. Validation is pure; only Discover performs network I/O.
package security

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// wellKnownPaths are the discovery document paths an OpenID Connect URL may
// point at
var wellKnownPaths = []string{
	"/.well-known/openid-configuration",
	"/.well-known/openid_configuration",
}

// httpSchemes are the registered HTTP authentication schemes
var httpSchemes = map[string]bool{
	"basic":     true,
	"bearer":    true,
	"digest":    true,
	"negotiate": true,
	"ntlm":      true,
}

// Validator checks security schemes against a set of field rules
type Validator struct {
	rules validation.Rules
}

// NewValidator creates a Validator using rules for URL and length checks
func NewValidator(rules validation.Rules) *Validator {
	return &Validator{rules: rules}
}

// Validate checks scheme with the default rules
func Validate(scheme types.SecurityScheme) error {
	return NewValidator(validation.DefaultRules()).Validate(scheme)
}

// Validate reports the first violation of scheme in a fixed field order
func (v *Validator) Validate(scheme types.SecurityScheme) error {
	switch s := scheme.(type) {
	case types.APIKeySecurityScheme:
		return v.validateAPIKey(s)
	case types.HTTPAuthSecurityScheme:
		return v.validateHTTPAuth(s)
	case types.OAuth2SecurityScheme:
		return v.validateOAuth2(s)
	case types.OpenIDConnectSecurityScheme:
		return v.validateOpenIDConnect(s)
	case nil:
		return validation.NewInvalidFieldError("type", validation.ClassEmpty, "security scheme is required")
	default:
		return validation.NewInvalidFieldError("type", validation.ClassUnsupported,
			fmt.Sprintf("unsupported security scheme %T", scheme))
	}
}

// ValidateAll checks every named scheme in sorted name order
func (v *Validator) ValidateAll(schemes types.SecuritySchemes) error {
	for _, name := range schemes.Names() {
		if err := v.Validate(schemes[name]); err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
	}
	return nil
}

// ValidateAll checks every named scheme with the default rules
func ValidateAll(schemes types.SecuritySchemes) error {
	return NewValidator(validation.DefaultRules()).ValidateAll(schemes)
}

// ValidateRequirements checks that every scheme referenced by the card's
// security requirements is declared, and that OAuth2 scope references exist
// in one of the declared flows.
func ValidateRequirements(card types.AgentCard) error {
	for i, requirement := range card.Security {
		names := make([]string, 0, len(requirement))
		for name := range requirement {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			field := fmt.Sprintf("security[%d].%s", i, name)
			scheme, ok := card.SecuritySchemes[name]
			if !ok {
				return validation.NewInvalidFieldError(field, validation.ClassUnsupported,
					fmt.Sprintf("security scheme %q is not declared in securitySchemes", name))
			}

			oauth, ok := asOAuth2(scheme)
			if !ok {
				continue
			}
			declared := declaredScopes(oauth.Flows)
			for _, scope := range requirement[name] {
				if !declared[scope] {
					return validation.NewInvalidFieldError(field, validation.ClassUnsupported,
						fmt.Sprintf("scope %q is not declared by any flow", scope))
				}
			}
		}
	}
	return nil
}

// RequiresUserInteraction reports whether obtaining credentials for scheme
// involves the resource owner
func RequiresUserInteraction(scheme types.SecurityScheme) bool {
	if _, ok := scheme.(types.OpenIDConnectSecurityScheme); ok {
		return true
	}
	oauth, ok := asOAuth2(scheme)
	return ok && (oauth.Flows.AuthorizationCode != nil || oauth.Flows.Implicit != nil)
}

// SupportsClientOnlyFlows reports whether scheme offers the client
// credentials flow
func SupportsClientOnlyFlows(scheme types.SecurityScheme) bool {
	oauth, ok := asOAuth2(scheme)
	return ok && oauth.Flows.ClientCredentials != nil
}

// IssuerURL returns the provider base URL of an OpenID Connect scheme: the
// discovery URL without its /.well-known/ suffix
func IssuerURL(scheme types.OpenIDConnectSecurityScheme) string {
	u, err := url.Parse(scheme.OpenIDConnectURL)
	if err != nil {
		return scheme.OpenIDConnectURL
	}
	i := strings.Index(u.Path, "/.well-known/")
	if i < 0 {
		return scheme.OpenIDConnectURL
	}
	issuer := url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: u.Path[:i]}
	return issuer.String()
}

// isDiscoveryURL reports whether the path of raw ends in a discovery
// document path. Query and fragment are not considered.
func isDiscoveryURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, path := range wellKnownPaths {
		if strings.HasSuffix(u.Path, path) {
			return true
		}
	}
	return false
}

func (v *Validator) validateAPIKey(s types.APIKeySecurityScheme) error {
	const variant = types.SecuritySchemeTypeAPIKey

	if s.In == "" {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "in", nil)
	}
	if !s.In.IsValid() {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "in",
			validation.NewInvalidFieldError("in", validation.ClassUnsupported, "location must be one of query, header, cookie"))
	}
	if s.Name == "" {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "name", nil)
	}

	var forbidden error
	switch s.In {
	case types.APIKeyLocationHeader:
		if strings.Contains(s.Name, " ") {
			forbidden = validation.NewInvalidFieldError("name", validation.ClassForbidden, "header names cannot contain spaces")
		} else if strings.EqualFold(s.Name, "Authorization") {
			forbidden = validation.NewInvalidFieldError("name", validation.ClassForbidden, "use an http scheme for the Authorization header")
		}
	case types.APIKeyLocationQuery:
		if strings.ContainsAny(s.Name, " &=") {
			forbidden = validation.NewInvalidFieldError("name", validation.ClassForbidden, "query parameter names cannot contain spaces, '&' or '='")
		}
	case types.APIKeyLocationCookie:
		if strings.ContainsAny(s.Name, " ;=") {
			forbidden = validation.NewInvalidFieldError("name", validation.ClassForbidden, "cookie names cannot contain spaces, ';' or '='")
		}
	}
	if forbidden != nil {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "name", forbidden)
	}

	return v.validateDescription(variant, s.Description)
}

func (v *Validator) validateHTTPAuth(s types.HTTPAuthSecurityScheme) error {
	const variant = types.SecuritySchemeTypeHTTP

	if s.Scheme == "" {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "scheme", nil)
	}
	scheme := strings.ToLower(s.Scheme)
	if !httpSchemes[scheme] && !strings.HasPrefix(scheme, "x-") {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "scheme",
			validation.NewInvalidFieldError("scheme", validation.ClassUnsupported,
				fmt.Sprintf("unknown HTTP authentication scheme %q", s.Scheme)))
	}

	if s.BearerFormat != nil {
		if scheme != "bearer" {
			return validation.NewIncompleteSecuritySchemeError(variant, "", "bearerFormat",
				validation.NewInvalidFieldError("bearerFormat", validation.ClassForbidden, "bearer format is only allowed with the bearer scheme"))
		}
		if *s.BearerFormat == "" {
			return validation.NewIncompleteSecuritySchemeError(variant, "", "bearerFormat",
				validation.NewInvalidFieldError("bearerFormat", validation.ClassEmpty, "bearer format cannot be empty when present"))
		}
	}

	return v.validateDescription(variant, s.Description)
}

func (v *Validator) validateOAuth2(s types.OAuth2SecurityScheme) error {
	const variant = types.SecuritySchemeTypeOAuth2

	flows := s.Flows
	if flows.AuthorizationCode == nil && flows.ClientCredentials == nil && flows.Implicit == nil && flows.Password == nil {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "flows", nil)
	}

	if f := flows.AuthorizationCode; f != nil {
		if err := v.validateFlow(types.OAuthFlowAuthorizationCode, map[string]string{
			"authorizationUrl": f.AuthorizationURL,
			"tokenUrl":         f.TokenURL,
		}, f.RefreshURL, f.Scopes); err != nil {
			return err
		}
	}
	if f := flows.ClientCredentials; f != nil {
		if err := v.validateFlow(types.OAuthFlowClientCredentials, map[string]string{
			"tokenUrl": f.TokenURL,
		}, f.RefreshURL, f.Scopes); err != nil {
			return err
		}
	}
	if f := flows.Implicit; f != nil {
		if err := v.validateFlow(types.OAuthFlowImplicit, map[string]string{
			"authorizationUrl": f.AuthorizationURL,
		}, f.RefreshURL, f.Scopes); err != nil {
			return err
		}
	}
	if f := flows.Password; f != nil {
		if err := v.validateFlow(types.OAuthFlowPassword, map[string]string{
			"tokenUrl": f.TokenURL,
		}, f.RefreshURL, f.Scopes); err != nil {
			return err
		}
	}

	return v.validateDescription(variant, s.Description)
}

// validateFlow checks required URLs in the order authorizationUrl, tokenUrl,
// then the optional refresh URL, then scope names
func (v *Validator) validateFlow(flow string, required map[string]string, refreshURL *string, scopes map[string]string) error {
	const variant = types.SecuritySchemeTypeOAuth2

	for _, field := range []string{"authorizationUrl", "tokenUrl"} {
		raw, ok := required[field]
		if !ok {
			continue
		}
		if raw == "" {
			return validation.NewIncompleteSecuritySchemeError(variant, flow, field, nil)
		}
		if err := v.rules.ValidateURL(field, raw); err != nil {
			return validation.NewIncompleteSecuritySchemeError(variant, flow, field, err)
		}
	}

	if refreshURL != nil {
		if err := v.rules.ValidateURL("refreshUrl", *refreshURL); err != nil {
			return validation.NewIncompleteSecuritySchemeError(variant, flow, "refreshUrl", err)
		}
	}

	names := make([]string, 0, len(scopes))
	for name := range scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" {
			return validation.NewIncompleteSecuritySchemeError(variant, flow, "scopes",
				validation.NewInvalidFieldError("scopes", validation.ClassEmpty, "scope names cannot be empty"))
		}
		if strings.ContainsAny(name, " \t\r\n") {
			return validation.NewIncompleteSecuritySchemeError(variant, flow, "scopes",
				validation.NewInvalidFieldError("scopes", validation.ClassForbidden,
					fmt.Sprintf("scope name %q cannot contain whitespace", name)))
		}
	}

	return nil
}

func (v *Validator) validateOpenIDConnect(s types.OpenIDConnectSecurityScheme) error {
	const variant = types.SecuritySchemeTypeOpenIDConnect
	const field = "openIdConnectUrl"

	if s.OpenIDConnectURL == "" {
		return validation.NewIncompleteSecuritySchemeError(variant, "", field, nil)
	}
	if err := v.rules.ValidateURL(field, s.OpenIDConnectURL); err != nil {
		return validation.NewIncompleteSecuritySchemeError(variant, "", field, err)
	}
	if !strings.HasPrefix(strings.ToLower(s.OpenIDConnectURL), "https://") {
		return validation.NewIncompleteSecuritySchemeError(variant, "", field,
			validation.NewInvalidFieldError(field, validation.ClassUnsupported, "OpenID Connect URL must use https"))
	}

	if !isDiscoveryURL(s.OpenIDConnectURL) {
		return validation.NewIncompleteSecuritySchemeError(variant, "", field,
			validation.NewInvalidFieldError(field, validation.ClassMalformed,
				"OpenID Connect URL must point at /.well-known/openid-configuration"))
	}

	return v.validateDescription(variant, s.Description)
}

func (v *Validator) validateDescription(variant types.SecuritySchemeType, description *string) error {
	if err := validation.ValidateDescription("description", description, v.rules.MaxSchemeDescriptionLength); err != nil {
		return validation.NewIncompleteSecuritySchemeError(variant, "", "description", err)
	}
	return nil
}

func asOAuth2(scheme types.SecurityScheme) (types.OAuth2SecurityScheme, bool) {
	s, ok := scheme.(types.OAuth2SecurityScheme)
	return s, ok
}

func declaredScopes(flows types.OAuthFlows) map[string]bool {
	declared := map[string]bool{}
	add := func(scopes map[string]string) {
		for name := range scopes {
			declared[name] = true
		}
	}
	if flows.AuthorizationCode != nil {
		add(flows.AuthorizationCode.Scopes)
	}
	if flows.ClientCredentials != nil {
		add(flows.ClientCredentials.Scopes)
	}
	if flows.Implicit != nil {
		add(flows.Implicit.Scopes)
	}
	if flows.Password != nil {
		add(flows.Password.Scopes)
	}
	return declared
}
