package validation_test

import (
	"errors"
	"fmt"
	"testing"

	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     validation.Kind
		expected string
	}{
		{
			name:     "invalid field",
			err:      validation.NewInvalidFieldError("url", validation.ClassMalformed, "must be an absolute URL with a scheme"),
			kind:     validation.KindInvalidField,
			expected: "invalid field url (malformed): must be an absolute URL with a scheme",
		},
		{
			name:     "illegal transition",
			err:      validation.NewIllegalTransitionError(types.TaskStateCompleted, "cancel"),
			kind:     validation.KindIllegalTransition,
			expected: `illegal transition: event "cancel" is not allowed in state "completed"`,
		},
		{
			name:     "incomplete scheme missing field",
			err:      validation.NewIncompleteSecuritySchemeError(types.SecuritySchemeTypeOAuth2, types.OAuthFlowAuthorizationCode, "tokenUrl", nil),
			kind:     validation.KindIncompleteSecurityScheme,
			expected: "incomplete oauth2 security scheme (flow authorizationCode): field tokenUrl is required",
		},
		{
			name: "incomplete scheme invalid field",
			err: validation.NewIncompleteSecuritySchemeError(types.SecuritySchemeTypeAPIKey, "", "name",
				validation.NewInvalidFieldError("name", validation.ClassForbidden, "header name must not contain spaces")),
			kind:     validation.KindIncompleteSecurityScheme,
			expected: "incomplete apiKey security scheme: field name: invalid field name (forbidden): header name must not contain spaces",
		},
		{
			name:     "missing required extension",
			err:      validation.NewMissingRequiredExtensionError("https://example.com/ext/v1"),
			kind:     validation.KindMissingRequiredExtension,
			expected: "missing required extension https://example.com/ext/v1",
		},
		{
			name:     "malformed request",
			err:      validation.NewMalformedRequestError("tasks/explode"),
			kind:     validation.KindMalformedRequest,
			expected: `malformed request: unrecognized method "tasks/explode"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Equal(t, tt.kind, validation.KindOf(tt.err))
			assert.Equal(t, tt.kind, validation.KindOf(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestKindOf_NonValidationError(t *testing.T) {
	assert.Equal(t, validation.Kind(""), validation.KindOf(errors.New("boom")))
	assert.Equal(t, validation.Kind(""), validation.KindOf(nil))
}

func TestIncompleteSecuritySchemeError_Unwrap(t *testing.T) {
	cause := validation.NewInvalidFieldError("tokenUrl", validation.ClassMalformed, "must be an absolute URL with a scheme")
	err := validation.NewIncompleteSecuritySchemeError(types.SecuritySchemeTypeOAuth2, types.OAuthFlowPassword, "tokenUrl", cause)

	var fieldErr *validation.InvalidFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Same(t, cause, fieldErr)

	// the outer kind wins
	assert.Equal(t, validation.KindIncompleteSecurityScheme, validation.KindOf(err))
}

func TestNest(t *testing.T) {
	base := validation.NewInvalidFieldError("uri", validation.ClassEmpty, "URI is required")

	nested := validation.Nest("parts[1].file", base)
	var fieldErr *validation.InvalidFieldError
	require.True(t, errors.As(nested, &fieldErr))
	assert.Equal(t, "parts[1].file.uri", fieldErr.Field)
	assert.Equal(t, "uri", base.Field, "original error must not be mutated")

	indexed := validation.Nest("history", validation.NewInvalidFieldError("[0]", validation.ClassEmpty, "x"))
	require.True(t, errors.As(indexed, &fieldErr))
	assert.Equal(t, "history[0]", fieldErr.Field)

	other := validation.NewMissingRequiredExtensionError("urn:x")
	assert.Same(t, other, validation.Nest("capabilities", other))
	assert.Nil(t, validation.Nest("x", nil))
}
