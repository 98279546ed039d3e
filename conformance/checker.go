// Package conformance ties the validators to configuration, logging and
// metrics. Every verdict is logged and, when telemetry is enabled, counted.
package conformance

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	config "github.com/inference-gateway/a2a-conformance/config"
	extension "github.com/inference-gateway/a2a-conformance/extension"
	lifecycle "github.com/inference-gateway/a2a-conformance/lifecycle"
	otel "github.com/inference-gateway/a2a-conformance/otel"
	protocol "github.com/inference-gateway/a2a-conformance/protocol"
	security "github.com/inference-gateway/a2a-conformance/security"
	types "github.com/inference-gateway/a2a-conformance/types"
	validation "github.com/inference-gateway/a2a-conformance/validation"
	zap "go.uber.org/zap"
)

// Subjects recorded by the checker
const (
	SubjectAgentCard   = "agent_card"
	SubjectRequest     = "request"
	SubjectStreamEvent = "stream_event"
	SubjectDiscovery   = "oidc_discovery"
)

// Checker defines the conformance checks of the command line tool
type Checker interface {
	// CheckAgentCard validates an agent card against the configured rules and
	// supported extensions
	CheckAgentCard(ctx context.Context, card types.AgentCard) error

	// CheckRequest parses and validates a raw JSON-RPC request
	CheckRequest(ctx context.Context, raw []byte) (*protocol.ParsedRequest, error)

	// CheckStream validates stream events as they are pulled from seq
	CheckStream(ctx context.Context, seq iter.Seq[types.StreamEvent]) iter.Seq2[types.StreamEvent, error]

	// CheckTransitions replays events from state through the task state machine
	CheckTransitions(ctx context.Context, state types.TaskState, events ...lifecycle.Event) (types.TaskState, error)

	// DiscoverOpenIDConnect fetches the discovery document of every OpenID
	// Connect scheme declared by the card
	DiscoverOpenIDConnect(ctx context.Context, card types.AgentCard) (map[string]*security.Discovery, error)
}

// DefaultChecker implements the Checker interface
type DefaultChecker struct {
	logger     *zap.Logger
	telemetry  otel.Telemetry
	validator  *protocol.Validator
	extensions *extension.Validator
	supported  extension.SupportedSet
	oidc       config.OIDCConfig
	httpClient *http.Client
}

// CheckerOption customizes a DefaultChecker
type CheckerOption func(*DefaultChecker)

// WithTelemetry records every verdict on telemetry
func WithTelemetry(telemetry otel.Telemetry) CheckerOption {
	return func(c *DefaultChecker) { c.telemetry = telemetry }
}

// WithHTTPClient sets the client used for OpenID Connect discovery
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *DefaultChecker) { c.httpClient = client }
}

// WithExtensionConstraint registers a params constraint for an extension URI
func WithExtensionConstraint(uri string, constraint extension.Constraint) CheckerOption {
	return func(c *DefaultChecker) { c.extensions.Register(uri, constraint) }
}

// NewDefaultChecker creates a checker from cfg
func NewDefaultChecker(cfg *config.Config, logger *zap.Logger, opts ...CheckerOption) (*DefaultChecker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	rules := cfg.ToRules()
	extensions := extension.NewValidator(rules)
	c := &DefaultChecker{
		logger:     logger,
		validator:  protocol.NewValidator(rules, extensions),
		extensions: extensions,
		supported:  extension.NewSupportedSet(cfg.ExtensionsConfig.Supported...),
		oidc:       cfg.OIDCConfig,
	}
	for _, opt := range opts {
		opt(c)
	}

	logger.Debug("conformance checker created",
		zap.Int("supported_extensions", len(c.supported)),
		zap.Bool("telemetry", c.telemetry != nil),
		zap.Bool("oidc_discovery", c.oidc.Enable))
	return c, nil
}

// CheckAgentCard validates an agent card
func (c *DefaultChecker) CheckAgentCard(ctx context.Context, card types.AgentCard) error {
	start := time.Now()
	err := c.validator.ValidateAgentCard(card, c.supported)
	c.verdict(ctx, SubjectAgentCard, start, err, zap.String("agent", card.Name))
	return err
}

// CheckRequest parses and validates a raw JSON-RPC request
func (c *DefaultChecker) CheckRequest(ctx context.Context, raw []byte) (*protocol.ParsedRequest, error) {
	start := time.Now()
	req, err := c.validator.ParseRequest(raw)

	fields := []zap.Field{}
	if req != nil {
		fields = append(fields, zap.String("method", string(req.Method)), zap.Bool("legacy", req.Legacy))
	}
	c.verdict(ctx, SubjectRequest, start, err, fields...)
	return req, err
}

// CheckStream validates stream events lazily, logging each verdict
func (c *DefaultChecker) CheckStream(ctx context.Context, seq iter.Seq[types.StreamEvent]) iter.Seq2[types.StreamEvent, error] {
	return func(yield func(types.StreamEvent, error) bool) {
		index := 0
		start := time.Now()
		for event, err := range c.validator.ValidateStream(seq) {
			kind := ""
			if event != nil {
				kind = event.EventKind()
			}
			c.verdict(ctx, SubjectStreamEvent, start, err, zap.Int("index", index), zap.String("kind", kind))
			if !yield(event, err) {
				return
			}
			index++
			start = time.Now()
		}
	}
}

// CheckTransitions replays events step by step, recording every step
func (c *DefaultChecker) CheckTransitions(ctx context.Context, state types.TaskState, events ...lifecycle.Event) (types.TaskState, error) {
	for _, event := range events {
		next, err := lifecycle.Transition(state, event)
		outcome := otel.OutcomeAccepted
		if err != nil {
			outcome = otel.OutcomeRejected
			c.logger.Info("transition rejected",
				zap.String("from", string(state)),
				zap.String("event", string(event)),
				zap.Error(err))
		} else {
			c.logger.Debug("transition accepted",
				zap.String("from", string(state)),
				zap.String("event", string(event)),
				zap.String("to", string(next)))
		}
		if c.telemetry != nil {
			c.telemetry.RecordTransition(ctx, otel.TransitionAttributes{
				From:    string(state),
				Event:   string(event),
				Outcome: outcome,
			})
		}
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}

// DiscoverOpenIDConnect fetches the discovery document of every OpenID
// Connect scheme of card, in scheme name order. It is a no-op unless
// discovery is enabled.
func (c *DefaultChecker) DiscoverOpenIDConnect(ctx context.Context, card types.AgentCard) (map[string]*security.Discovery, error) {
	documents := map[string]*security.Discovery{}
	if !c.oidc.Enable {
		c.logger.Debug("openid connect discovery disabled")
		return documents, nil
	}

	for _, name := range card.SecuritySchemes.Names() {
		scheme, ok := card.SecuritySchemes[name].(types.OpenIDConnectSecurityScheme)
		if !ok {
			continue
		}

		start := time.Now()
		discoverCtx, cancel := context.WithTimeout(ctx, c.oidc.Timeout)
		document, err := security.Discover(discoverCtx, scheme, c.httpClient)
		cancel()

		c.verdict(ctx, SubjectDiscovery, start, err, zap.String("scheme", name), zap.String("url", scheme.OpenIDConnectURL))
		if err != nil {
			return nil, fmt.Errorf("security scheme %q: %w", name, err)
		}
		documents[name] = document
	}
	return documents, nil
}

// Supported returns the extension URIs treated as supported
func (c *DefaultChecker) Supported() extension.SupportedSet {
	return c.supported
}

func (c *DefaultChecker) verdict(ctx context.Context, subject string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	fields = append(fields, zap.String("subject", subject), zap.Duration("duration", duration))

	attrs := otel.ValidationAttributes{Subject: subject, Outcome: otel.OutcomeAccepted}
	if err != nil {
		attrs.Outcome = otel.OutcomeRejected
		attrs.ErrorKind = string(validation.KindOf(err))
		c.logger.Info("validation rejected", append(fields, zap.String("error_kind", attrs.ErrorKind), zap.Error(err))...)
	} else {
		c.logger.Debug("validation accepted", fields...)
	}

	if c.telemetry != nil {
		c.telemetry.RecordValidation(ctx, attrs, float64(duration.Microseconds())/1000)
	}
}
