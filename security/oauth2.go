package security

import (
	"fmt"
	"sort"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	oauth2 "golang.org/x/oauth2"
	clientcredentials "golang.org/x/oauth2/clientcredentials"
)

// Client identifies the OAuth2 client a configuration is built for
type Client struct {
	ID          string
	Secret      string
	RedirectURL string
}

// Endpoint maps the named flow of flows onto an oauth2.Endpoint. The flow is
// validated first so the endpoint URLs are known to be well formed.
func Endpoint(flow string, flows types.OAuthFlows) (oauth2.Endpoint, error) {
	if err := Validate(types.OAuth2SecurityScheme{Flows: flows}); err != nil {
		return oauth2.Endpoint{}, err
	}

	switch flow {
	case types.OAuthFlowAuthorizationCode:
		if f := flows.AuthorizationCode; f != nil {
			return oauth2.Endpoint{AuthURL: f.AuthorizationURL, TokenURL: f.TokenURL}, nil
		}
	case types.OAuthFlowClientCredentials:
		if f := flows.ClientCredentials; f != nil {
			return oauth2.Endpoint{TokenURL: f.TokenURL, AuthStyle: oauth2.AuthStyleInHeader}, nil
		}
	case types.OAuthFlowImplicit:
		if f := flows.Implicit; f != nil {
			return oauth2.Endpoint{AuthURL: f.AuthorizationURL}, nil
		}
	case types.OAuthFlowPassword:
		if f := flows.Password; f != nil {
			return oauth2.Endpoint{TokenURL: f.TokenURL}, nil
		}
	default:
		return oauth2.Endpoint{}, validation.NewInvalidFieldError("flow", validation.ClassUnsupported,
			fmt.Sprintf("unknown OAuth2 flow %q", flow))
	}

	return oauth2.Endpoint{}, validation.NewIncompleteSecuritySchemeError(types.SecuritySchemeTypeOAuth2, flow, "flows", nil)
}

// ClientConfig builds an oauth2.Config for a user-facing flow of flows,
// requesting every scope the flow declares
func ClientConfig(flow string, flows types.OAuthFlows, client Client) (*oauth2.Config, error) {
	endpoint, err := Endpoint(flow, flows)
	if err != nil {
		return nil, err
	}

	return &oauth2.Config{
		ClientID:     client.ID,
		ClientSecret: client.Secret,
		Endpoint:     endpoint,
		RedirectURL:  client.RedirectURL,
		Scopes:       FlowScopes(flow, flows),
	}, nil
}

// ClientCredentialsConfig builds the two-legged configuration of the client
// credentials flow
func ClientCredentialsConfig(flows types.OAuthFlows, client Client) (*clientcredentials.Config, error) {
	endpoint, err := Endpoint(types.OAuthFlowClientCredentials, flows)
	if err != nil {
		return nil, err
	}

	return &clientcredentials.Config{
		ClientID:     client.ID,
		ClientSecret: client.Secret,
		TokenURL:     endpoint.TokenURL,
		Scopes:       FlowScopes(types.OAuthFlowClientCredentials, flows),
		AuthStyle:    endpoint.AuthStyle,
	}, nil
}

// FlowScopes returns the sorted scope names declared by the named flow
func FlowScopes(flow string, flows types.OAuthFlows) []string {
	var scopes map[string]string
	switch flow {
	case types.OAuthFlowAuthorizationCode:
		if flows.AuthorizationCode != nil {
			scopes = flows.AuthorizationCode.Scopes
		}
	case types.OAuthFlowClientCredentials:
		if flows.ClientCredentials != nil {
			scopes = flows.ClientCredentials.Scopes
		}
	case types.OAuthFlowImplicit:
		if flows.Implicit != nil {
			scopes = flows.Implicit.Scopes
		}
	case types.OAuthFlowPassword:
		if flows.Password != nil {
			scopes = flows.Password.Scopes
		}
	}

	names := make([]string, 0, len(scopes))
	for name := range scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
