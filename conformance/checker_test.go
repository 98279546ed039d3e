package conformance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	config "github.com/inference-gateway/a2a-conformance/config"
	conformance "github.com/inference-gateway/a2a-conformance/conformance"
	extension "github.com/inference-gateway/a2a-conformance/extension"
	lifecycle "github.com/inference-gateway/a2a-conformance/lifecycle"
	otel "github.com/inference-gateway/a2a-conformance/otel"
	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	observer "go.uber.org/zap/zaptest/observer"
)

type recordingTelemetry struct {
	mu          sync.Mutex
	validations []otel.ValidationAttributes
	transitions []otel.TransitionAttributes
}

func (r *recordingTelemetry) RecordValidation(_ context.Context, attrs otel.ValidationAttributes, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validations = append(r.validations, attrs)
}

func (r *recordingTelemetry) RecordTransition(_ context.Context, attrs otel.TransitionAttributes) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, attrs)
}

func (r *recordingTelemetry) ShutDown(context.Context) error { return nil }

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.NewWithDefaults(context.Background(), &config.Config{AppName: "a2acheck"})
	require.NoError(t, err)
	return cfg
}

func newChecker(t *testing.T, cfg *config.Config, opts ...conformance.CheckerOption) (*conformance.DefaultChecker, *recordingTelemetry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	telemetry := &recordingTelemetry{}

	checker, err := conformance.NewDefaultChecker(cfg, zap.New(core), append(opts, conformance.WithTelemetry(telemetry))...)
	require.NoError(t, err)
	return checker, telemetry, logs
}

func card() types.AgentCard {
	return types.AgentCard{
		Name:               "Weather Agent",
		Description:        "Answers questions about the weather",
		URL:                "https://agents.example.com/weather",
		Version:            "1.2.0",
		ProtocolVersion:    "0.2.5",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []types.AgentSkill{
			{ID: "forecast", Name: "Forecast", Description: "Daily forecast", Tags: []string{"weather"}},
		},
	}
}

func TestNewDefaultChecker_RejectsNilDependencies(t *testing.T) {
	cfg := defaultConfig(t)

	checker, err := conformance.NewDefaultChecker(nil, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")
	assert.Nil(t, checker)

	checker, err = conformance.NewDefaultChecker(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger cannot be nil")
	assert.Nil(t, checker)
}

func TestDefaultChecker_ImplementsChecker(t *testing.T) {
	checker, err := conformance.NewDefaultChecker(defaultConfig(t), zap.NewNop())
	require.NoError(t, err)

	var _ conformance.Checker = checker
	assert.Empty(t, checker.Supported())
}

func TestDefaultChecker_CheckAgentCard(t *testing.T) {
	checker, telemetry, logs := newChecker(t, defaultConfig(t))
	ctx := context.Background()

	require.NoError(t, checker.CheckAgentCard(ctx, card()))

	invalid := card()
	invalid.Version = "1.2"
	err := checker.CheckAgentCard(ctx, invalid)
	require.Error(t, err)
	assert.Equal(t, validation.KindInvalidField, validation.KindOf(err))

	require.Len(t, telemetry.validations, 2)
	assert.Equal(t, otel.ValidationAttributes{Subject: conformance.SubjectAgentCard, Outcome: otel.OutcomeAccepted}, telemetry.validations[0])
	assert.Equal(t, otel.ValidationAttributes{
		Subject:   conformance.SubjectAgentCard,
		Outcome:   otel.OutcomeRejected,
		ErrorKind: string(validation.KindInvalidField),
	}, telemetry.validations[1])

	rejected := logs.FilterMessage("validation rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.InfoLevel, rejected[0].Level)
	assert.Equal(t, "Weather Agent", rejected[0].ContextMap()["agent"])
	assert.Equal(t, 1, logs.FilterMessage("validation accepted").Len())
}

func TestDefaultChecker_CheckAgentCard_SupportedExtensions(t *testing.T) {
	required := true
	withExtension := card()
	withExtension.Capabilities.Extensions = []types.AgentExtension{
		{URI: "https://example.com/ext/tracing/v1", Required: &required},
	}

	checker, _, _ := newChecker(t, defaultConfig(t))
	err := checker.CheckAgentCard(context.Background(), withExtension)
	require.Error(t, err)
	assert.Equal(t, validation.KindMissingRequiredExtension, validation.KindOf(err))

	cfg := defaultConfig(t)
	cfg.ExtensionsConfig.Supported = []string{"https://example.com/ext/tracing/v1"}
	checker, _, _ = newChecker(t, cfg)
	assert.NoError(t, checker.CheckAgentCard(context.Background(), withExtension))
}

func TestDefaultChecker_WithExtensionConstraint(t *testing.T) {
	withExtension := card()
	withExtension.Capabilities.Extensions = []types.AgentExtension{
		{URI: "https://example.com/ext/tracing/v1", Params: types.Struct{"sampleRate": "high"}},
	}

	checker, _, _ := newChecker(t, defaultConfig(t), conformance.WithExtensionConstraint(
		"https://example.com/ext/tracing/v1",
		extension.Constraint{Types: map[string]extension.ParamType{"sampleRate": extension.ParamNumber}},
	))

	err := checker.CheckAgentCard(context.Background(), withExtension)
	var fieldErr *validation.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "capabilities.extensions[0].params.sampleRate", fieldErr.Field)
}

func TestDefaultChecker_CheckRequest(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		method  protocol.Method
		legacy  bool
		errKind validation.Kind
	}{
		{
			name:   "canonical method",
			raw:    `{"jsonrpc":"2.0","id":1,"method":"tasks/get","params":{"id":"task-1"}}`,
			method: protocol.MethodTasksGet,
		},
		{
			name:   "legacy method",
			raw:    `{"jsonrpc":"2.0","id":2,"method":"cancelTask","params":{"id":"task-1"}}`,
			method: protocol.MethodTasksCancel,
			legacy: true,
		},
		{
			name:    "unknown method",
			raw:     `{"jsonrpc":"2.0","id":3,"method":"message/receive"}`,
			errKind: validation.KindMalformedRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, telemetry, logs := newChecker(t, defaultConfig(t))

			req, err := checker.CheckRequest(context.Background(), []byte(tt.raw))
			require.Len(t, telemetry.validations, 1)
			assert.Equal(t, conformance.SubjectRequest, telemetry.validations[0].Subject)

			if tt.errKind != "" {
				require.Error(t, err)
				assert.Nil(t, req)
				assert.Equal(t, tt.errKind, validation.KindOf(err))
				assert.Equal(t, string(tt.errKind), telemetry.validations[0].ErrorKind)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.legacy, req.Legacy)

			accepted := logs.FilterMessage("validation accepted").All()
			require.Len(t, accepted, 1)
			assert.Equal(t, string(tt.method), accepted[0].ContextMap()["method"])
		})
	}
}

func TestDefaultChecker_CheckStream(t *testing.T) {
	checker, telemetry, _ := newChecker(t, defaultConfig(t))

	events := protocol.Events(
		types.TaskStatusUpdateEvent{TaskID: "task-1", ContextID: "ctx-1", Status: types.TaskStatus{State: types.TaskStateWorking}},
		types.TaskStatusUpdateEvent{TaskID: "task-1", ContextID: "ctx-1", Status: types.TaskStatus{State: types.TaskStateCompleted}, Final: true},
		types.TaskStatusUpdateEvent{TaskID: "task-1", ContextID: "ctx-1", Status: types.TaskStatus{State: types.TaskStateWorking}},
	)

	var errs []error
	for _, err := range checker.CheckStream(context.Background(), events) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Error(t, errs[2])

	require.Len(t, telemetry.validations, 3)
	assert.Equal(t, otel.OutcomeRejected, telemetry.validations[2].Outcome)
	for _, attrs := range telemetry.validations {
		assert.Equal(t, conformance.SubjectStreamEvent, attrs.Subject)
	}
}

func TestDefaultChecker_CheckStream_StopsEarly(t *testing.T) {
	checker, telemetry, _ := newChecker(t, defaultConfig(t))

	pulled := 0
	events := func(yield func(types.StreamEvent) bool) {
		for _, state := range []types.TaskState{types.TaskStateWorking, types.TaskStateWorking, types.TaskStateCompleted} {
			pulled++
			if !yield(types.TaskStatusUpdateEvent{TaskID: "task-1", ContextID: "ctx-1", Status: types.TaskStatus{State: state}}) {
				return
			}
		}
	}

	for range checker.CheckStream(context.Background(), events) {
		break
	}

	assert.Equal(t, 1, pulled)
	assert.Len(t, telemetry.validations, 1)
}

func TestDefaultChecker_CheckTransitions(t *testing.T) {
	tests := []struct {
		name        string
		start       types.TaskState
		events      []lifecycle.Event
		expected    types.TaskState
		expectError bool
		recorded    int
	}{
		{
			name:     "submitted to completed",
			start:    types.TaskStateSubmitted,
			events:   []lifecycle.Event{lifecycle.EventStartWorking, lifecycle.EventComplete},
			expected: types.TaskStateCompleted,
			recorded: 2,
		},
		{
			name:        "stops at the first illegal step",
			start:       types.TaskStateSubmitted,
			events:      []lifecycle.Event{lifecycle.EventStartWorking, lifecycle.EventComplete, lifecycle.EventCancel, lifecycle.EventFail},
			expected:    types.TaskStateCompleted,
			expectError: true,
			recorded:    3,
		},
		{
			name:     "no events",
			start:    types.TaskStateWorking,
			expected: types.TaskStateWorking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, telemetry, _ := newChecker(t, defaultConfig(t))

			state, err := checker.CheckTransitions(context.Background(), tt.start, tt.events...)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, validation.KindIllegalTransition, validation.KindOf(err))
				assert.Equal(t, otel.OutcomeRejected, telemetry.transitions[len(telemetry.transitions)-1].Outcome)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, state)
			assert.Len(t, telemetry.transitions, tt.recorded)
		})
	}
}

func TestDefaultChecker_DiscoverOpenIDConnect(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 server.URL,
			"authorization_endpoint": server.URL + "/authorize",
			"token_endpoint":         server.URL + "/token",
			"jwks_uri":               server.URL + "/keys",
		})
	}))
	defer server.Close()

	withOIDC := card()
	withOIDC.SecuritySchemes = types.SecuritySchemes{
		"bearer": types.HTTPAuthSecurityScheme{Scheme: "Bearer"},
		"oidc":   types.OpenIDConnectSecurityScheme{OpenIDConnectURL: server.URL + "/.well-known/openid-configuration"},
	}

	t.Run("disabled", func(t *testing.T) {
		checker, telemetry, _ := newChecker(t, defaultConfig(t))

		documents, err := checker.DiscoverOpenIDConnect(context.Background(), withOIDC)
		require.NoError(t, err)
		assert.Empty(t, documents)
		assert.Empty(t, telemetry.validations)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.OIDCConfig.Enable = true
		cfg.OIDCConfig.Timeout = 5 * time.Second
		checker, telemetry, _ := newChecker(t, cfg, conformance.WithHTTPClient(server.Client()))

		documents, err := checker.DiscoverOpenIDConnect(context.Background(), withOIDC)
		require.NoError(t, err)
		require.Contains(t, documents, "oidc")
		assert.Equal(t, server.URL+"/token", documents["oidc"].TokenURL)

		require.Len(t, telemetry.validations, 1)
		assert.Equal(t, conformance.SubjectDiscovery, telemetry.validations[0].Subject)
		assert.Equal(t, otel.OutcomeAccepted, telemetry.validations[0].Outcome)
	})

	t.Run("unreachable provider", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.OIDCConfig.Enable = true
		checker, _, _ := newChecker(t, cfg)

		broken := card()
		broken.SecuritySchemes = types.SecuritySchemes{
			"oidc": types.OpenIDConnectSecurityScheme{OpenIDConnectURL: server.URL + "/missing/.well-known/openid-configuration"},
		}

		_, err := checker.DiscoverOpenIDConnect(context.Background(), broken)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `security scheme "oidc"`)
	})
}

func TestDefaultChecker_NoTelemetry(t *testing.T) {
	checker, err := conformance.NewDefaultChecker(defaultConfig(t), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, checker.CheckAgentCard(ctx, card()))
	state, err := checker.CheckTransitions(ctx, types.TaskStateSubmitted, lifecycle.EventReject)
	assert.NoError(t, err)
	assert.Equal(t, types.TaskStateRejected, state)
}
