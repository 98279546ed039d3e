package protocol_test

import (
	"testing"

	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestNewPushNotificationConfig(t *testing.T) {
	config, err := protocol.NewPushNotificationConfig("https://example.com/hook",
		protocol.WithPushNotificationID("cfg-1"),
		protocol.WithPushNotificationToken("secret-token"),
		protocol.WithPushNotificationAuth([]string{"Bearer"}, "abc"),
	)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hook", config.URL)
	assert.Equal(t, "cfg-1", *config.ID)
	assert.Equal(t, "secret-token", *config.Token)
	require.NotNil(t, config.Authentication)
	assert.Equal(t, []string{"Bearer"}, config.Authentication.Schemes)
	assert.Equal(t, "abc", *config.Authentication.Credentials)
}

func TestNewPushNotificationConfig_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		opts  []protocol.PushNotificationOption
		field string
		class validation.ValueClass
	}{
		{
			name:  "missing url",
			field: "url",
			class: validation.ClassEmpty,
		},
		{
			name:  "unsupported url scheme",
			url:   "mailto:ops@example.com",
			field: "url",
			class: validation.ClassUnsupported,
		},
		{
			name:  "invalid id",
			url:   "https://example.com/hook",
			opts:  []protocol.PushNotificationOption{protocol.WithPushNotificationID("cfg 1")},
			field: "id",
			class: validation.ClassForbidden,
		},
		{
			name:  "authentication without schemes",
			url:   "https://example.com/hook",
			opts:  []protocol.PushNotificationOption{protocol.WithPushNotificationAuth(nil, "")},
			field: "authentication.schemes",
			class: validation.ClassEmpty,
		},
		{
			name:  "blank scheme",
			url:   "https://example.com/hook",
			opts:  []protocol.PushNotificationOption{protocol.WithPushNotificationAuth([]string{"Bearer", ""}, "")},
			field: "authentication.schemes[1]",
			class: validation.ClassEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := protocol.NewPushNotificationConfig(tt.url, tt.opts...)
			requireField(t, err, tt.field, tt.class)
		})
	}
}
