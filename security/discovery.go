package security

import (
	"context"
	"fmt"
	"net/http"

	oidcV3 "github.com/coreos/go-oidc/v3/oidc"
	types "github.com/inference-gateway/a2a-conformance/types"
)

// Discovery is the subset of an OpenID provider's discovery document the
// checker reports on
type Discovery struct {
	Issuer           string   `json:"issuer"`
	AuthorizationURL string   `json:"authorization_endpoint"`
	TokenURL         string   `json:"token_endpoint"`
	JWKSURL          string   `json:"jwks_uri"`
	UserInfoURL      string   `json:"userinfo_endpoint,omitempty"`
	ScopesSupported  []string `json:"scopes_supported,omitempty"`
}

// Discover fetches the discovery document of an OpenID Connect scheme and
// checks that the advertised issuer matches the scheme's provider URL. The
// scheme is validated first; client, when non-nil, is used for the request.
func Discover(ctx context.Context, scheme types.OpenIDConnectSecurityScheme, client *http.Client) (*Discovery, error) {
	if err := Validate(scheme); err != nil {
		return nil, err
	}
	if client != nil {
		ctx = oidcV3.ClientContext(ctx, client)
	}

	issuer := IssuerURL(scheme)
	provider, err := oidcV3.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("openid connect discovery for %s failed: %w", issuer, err)
	}

	var discovery Discovery
	if err := provider.Claims(&discovery); err != nil {
		return nil, fmt.Errorf("failed to decode discovery document: %w", err)
	}
	if discovery.TokenURL == "" {
		discovery.TokenURL = provider.Endpoint().TokenURL
	}

	return &discovery, nil
}
