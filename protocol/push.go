package protocol

import (
	"fmt"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
)

// PushNotificationOption customizes a config built by NewPushNotificationConfig
type PushNotificationOption func(*types.PushNotificationConfig)

// WithPushNotificationID sets the config id
func WithPushNotificationID(id string) PushNotificationOption {
	return func(c *types.PushNotificationConfig) { c.ID = &id }
}

// WithPushNotificationToken sets the token echoed back in every notification
func WithPushNotificationToken(token string) PushNotificationOption {
	return func(c *types.PushNotificationConfig) { c.Token = &token }
}

// WithPushNotificationAuth sets the authentication schemes and optional
// credentials the webhook expects
func WithPushNotificationAuth(schemes []string, credentials string) PushNotificationOption {
	return func(c *types.PushNotificationConfig) {
		auth := &types.PushNotificationAuthenticationInfo{Schemes: schemes}
		if credentials != "" {
			auth.Credentials = &credentials
		}
		c.Authentication = auth
	}
}

// NewPushNotificationConfig builds a push notification config with the
// default rules
func NewPushNotificationConfig(url string, opts ...PushNotificationOption) (types.PushNotificationConfig, error) {
	return defaultValidator.NewPushNotificationConfig(url, opts...)
}

// NewPushNotificationConfig builds a push notification config and returns it
// only if it is valid
func (v *Validator) NewPushNotificationConfig(url string, opts ...PushNotificationOption) (types.PushNotificationConfig, error) {
	config := types.PushNotificationConfig{URL: url}
	for _, opt := range opts {
		opt(&config)
	}
	if err := v.ValidatePushNotificationConfig(config); err != nil {
		return types.PushNotificationConfig{}, err
	}
	return config, nil
}

// ValidatePushNotificationConfig checks the id, webhook url and
// authentication schemes of a push notification config
func (v *Validator) ValidatePushNotificationConfig(config types.PushNotificationConfig) error {
	if config.ID != nil {
		if err := v.rules.ValidateIdentifier("id", *config.ID); err != nil {
			return err
		}
	}
	if err := v.rules.ValidateURL("url", config.URL); err != nil {
		return err
	}

	auth := config.Authentication
	if auth == nil {
		return nil
	}
	if len(auth.Schemes) == 0 {
		return validation.NewInvalidFieldError("authentication.schemes", validation.ClassEmpty, "at least one scheme is required")
	}
	for i, scheme := range auth.Schemes {
		if err := validation.ValidateNonEmpty(fmt.Sprintf("authentication.schemes[%d]", i), scheme); err != nil {
			return err
		}
	}
	return nil
}
