package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/inference-gateway/a2a-conformance/validation"
	envconfig "github.com/sethvargo/go-envconfig"
)

// Config holds all checker configuration
type Config struct {
	AppName          string           // Build-time metadata, not configurable via environment
	AppVersion       string           // Build-time metadata, not configurable via environment
	Debug            bool             `env:"DEBUG,default=false"`
	ValidationConfig ValidationConfig `env:",prefix=VALIDATION_"`
	ExtensionsConfig ExtensionsConfig `env:",prefix=EXTENSIONS_"`
	OIDCConfig       OIDCConfig       `env:",prefix=OIDC_"`
	TelemetryConfig  TelemetryConfig  `env:",prefix=TELEMETRY_"`
}

// ValidationConfig holds the bounds applied by the field validators
type ValidationConfig struct {
	MaxIdentifierLength           int      `env:"MAX_IDENTIFIER_LENGTH,default=255" description:"Maximum length of task, message, artifact and context ids"`
	AllowExtendedIdentifiers      bool     `env:"ALLOW_EXTENDED_IDENTIFIERS,default=false" description:"Additionally allow '.' and ':' in identifiers"`
	URLSchemes                    []string `env:"URL_SCHEMES,default=http,https" description:"URL schemes accepted for endpoint URLs"`
	MaxAgentNameLength            int      `env:"MAX_AGENT_NAME_LENGTH,default=100" description:"Maximum agent name length in characters"`
	MaxVersionLength              int      `env:"MAX_VERSION_LENGTH,default=50" description:"Maximum agent version length"`
	MaxSkillIDLength              int      `env:"MAX_SKILL_ID_LENGTH,default=100" description:"Maximum skill id length"`
	MaxSchemeDescriptionLength    int      `env:"MAX_SCHEME_DESCRIPTION_LENGTH,default=500" description:"Maximum security scheme description length"`
	MaxExtensionDescriptionLength int      `env:"MAX_EXTENSION_DESCRIPTION_LENGTH,default=1000" description:"Maximum extension description length"`
}

// ExtensionsConfig lists the extensions the caller understands
type ExtensionsConfig struct {
	Supported []string `env:"SUPPORTED" description:"Comma separated extension URIs treated as supported"`
}

// OIDCConfig holds OpenID Connect discovery configuration
type OIDCConfig struct {
	Enable  bool          `env:"ENABLE,default=false" description:"Fetch the discovery document of OpenID Connect schemes"`
	Timeout time.Duration `env:"TIMEOUT,default=10s" description:"Timeout for a single discovery request"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	Enable bool `env:"ENABLE,default=false" description:"Enable metrics collection"`
}

// Load loads configuration from environment variables, merging with the provided base config.
func Load(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, envconfig.OsLookuper())
}

// LoadWithLookuper creates and loads configuration using a custom lookuper and merges with user config
func LoadWithLookuper(ctx context.Context, baseConfig *Config, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config

	if baseConfig != nil {
		cfg = *baseConfig
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewWithDefaults creates a new config with defaults applied from struct tags.
func NewWithDefaults(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, &emptyLookuper{})
}

// emptyLookuper ensures that only default values from struct tags are used
type emptyLookuper struct{}

func (e *emptyLookuper) Lookup(key string) (string, bool) {
	return "", false
}

// Validate validates the configuration and normalizes list values
func (c *Config) Validate() error {
	v := &c.ValidationConfig
	bounds := []struct {
		name  string
		value int
	}{
		{"VALIDATION_MAX_IDENTIFIER_LENGTH", v.MaxIdentifierLength},
		{"VALIDATION_MAX_AGENT_NAME_LENGTH", v.MaxAgentNameLength},
		{"VALIDATION_MAX_VERSION_LENGTH", v.MaxVersionLength},
		{"VALIDATION_MAX_SKILL_ID_LENGTH", v.MaxSkillIDLength},
		{"VALIDATION_MAX_SCHEME_DESCRIPTION_LENGTH", v.MaxSchemeDescriptionLength},
		{"VALIDATION_MAX_EXTENSION_DESCRIPTION_LENGTH", v.MaxExtensionDescriptionLength},
	}
	for _, bound := range bounds {
		if bound.value < 1 {
			return fmt.Errorf("invalid %s %d: must be positive", bound.name, bound.value)
		}
	}

	schemes := make([]string, 0, len(v.URLSchemes))
	for _, scheme := range v.URLSchemes {
		if scheme = strings.ToLower(strings.TrimSpace(scheme)); scheme != "" {
			schemes = append(schemes, scheme)
		}
	}
	if len(schemes) == 0 {
		return fmt.Errorf("invalid VALIDATION_URL_SCHEMES: at least one scheme is required")
	}
	v.URLSchemes = schemes

	supported := make([]string, 0, len(c.ExtensionsConfig.Supported))
	for _, uri := range c.ExtensionsConfig.Supported {
		if uri = strings.TrimSpace(uri); uri != "" {
			supported = append(supported, uri)
		}
	}
	c.ExtensionsConfig.Supported = supported

	if c.OIDCConfig.Timeout <= 0 {
		c.OIDCConfig.Timeout = 10 * time.Second
	}

	return nil
}

// ToRules returns the field validator bounds of the configuration
func (c *Config) ToRules() validation.Rules {
	v := c.ValidationConfig
	return validation.Rules{
		MaxIdentifierLength:           v.MaxIdentifierLength,
		AllowExtendedIdentifiers:      v.AllowExtendedIdentifiers,
		URLSchemes:                    append([]string(nil), v.URLSchemes...),
		MaxAgentNameLength:            v.MaxAgentNameLength,
		MaxVersionLength:              v.MaxVersionLength,
		MaxSkillIDLength:              v.MaxSkillIDLength,
		MaxSchemeDescriptionLength:    v.MaxSchemeDescriptionLength,
		MaxExtensionDescriptionLength: v.MaxExtensionDescriptionLength,
	}
}
