package otel

import (
	"context"
	"fmt"

	config "github.com/inference-gateway/a2a-conformance/config"
	prometheusclient "github.com/prometheus/client_golang/prometheus"
	attribute "go.opentelemetry.io/otel/attribute"
	prometheus "go.opentelemetry.io/otel/exporters/prometheus"
	metric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	zap "go.uber.org/zap"
)

// Outcome values recorded on every measurement
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Telemetry defines the operations for conformance metrics
type Telemetry interface {
	RecordValidation(ctx context.Context, attrs ValidationAttributes, durationMs float64)
	RecordTransition(ctx context.Context, attrs TransitionAttributes)

	// Shutdown the telemetry system
	ShutDown(ctx context.Context) error
}

// ValidationAttributes describe one validation verdict
type ValidationAttributes struct {
	// Subject names what was validated, e.g. "agent_card" or "request"
	Subject string
	Outcome string
	// ErrorKind is the taxonomy kind of a rejection
	ErrorKind string
}

// TransitionAttributes describe one state machine step
type TransitionAttributes struct {
	From    string
	Event   string
	Outcome string
}

type TelemetryImpl struct {
	logger        *zap.Logger
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter

	// Metrics
	validationCounter           metric.Int64Counter
	transitionCounter           metric.Int64Counter
	validationDurationHistogram metric.Float64Histogram
}

// NewTelemetry creates a Telemetry whose prometheus exporter registers on
// registerer
func NewTelemetry(cfg *config.Config, logger *zap.Logger, registerer prometheusclient.Registerer) (Telemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if registerer == nil {
		return nil, fmt.Errorf("registerer cannot be nil")
	}

	t := &TelemetryImpl{
		logger: logger,
	}

	if err := t.initialize(cfg, registerer); err != nil {
		return nil, fmt.Errorf("failed to initialize opentelemetry: %w", err)
	}

	return t, nil
}

func (t *TelemetryImpl) initialize(cfg *config.Config, registerer prometheusclient.Registerer) error {
	t.logger.Debug("initializing opentelemetry",
		zap.String("app_name", cfg.AppName),
		zap.String("version", cfg.AppVersion))

	exporter, err := prometheus.New(prometheus.WithRegisterer(registerer))
	if err != nil {
		t.logger.Error("failed to create prometheus exporter", zap.Error(err))
		return err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.AppName),
		semconv.ServiceVersion(cfg.AppVersion),
	)

	histogramBoundaries := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

	latencyView := sdkmetric.NewView(
		sdkmetric.Instrument{
			Kind: sdkmetric.InstrumentKindHistogram,
		},
		sdkmetric.Stream{
			Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: histogramBoundaries,
			},
		},
	)

	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(latencyView),
	)

	t.meter = t.meterProvider.Meter(cfg.AppName)

	if err := t.initializeMetrics(); err != nil {
		t.logger.Error("failed to initialize metrics", zap.Error(err))
		return err
	}

	t.logger.Debug("opentelemetry initialized successfully")
	return nil
}

func (t *TelemetryImpl) RecordValidation(ctx context.Context, attrs ValidationAttributes, durationMs float64) {
	attributes := []attribute.KeyValue{
		attribute.String("subject", attrs.Subject),
		attribute.String("outcome", attrs.Outcome),
	}
	if attrs.ErrorKind != "" {
		attributes = append(attributes, attribute.String("error_kind", attrs.ErrorKind))
	}

	t.validationCounter.Add(ctx, 1, metric.WithAttributes(attributes...))
	t.validationDurationHistogram.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("subject", attrs.Subject),
	))
}

func (t *TelemetryImpl) RecordTransition(ctx context.Context, attrs TransitionAttributes) {
	attributes := []attribute.KeyValue{
		attribute.String("from", attrs.From),
		attribute.String("event", attrs.Event),
		attribute.String("outcome", attrs.Outcome),
	}

	t.transitionCounter.Add(ctx, 1, metric.WithAttributes(attributes...))
}

func (t *TelemetryImpl) ShutDown(ctx context.Context) error {
	return t.meterProvider.Shutdown(ctx)
}

// initializeMetrics initializes all the OpenTelemetry metrics
func (t *TelemetryImpl) initializeMetrics() error {
	var err error

	t.validationCounter, err = t.meter.Int64Counter(
		"a2a.validations.total",
		metric.WithDescription("Total number of validated protocol values by subject and outcome"),
		metric.WithUnit("{validation}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create validation counter: %w", err)
	}

	t.transitionCounter, err = t.meter.Int64Counter(
		"a2a.transitions.total",
		metric.WithDescription("Total number of task state machine steps by outcome"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create transition counter: %w", err)
	}

	t.validationDurationHistogram, err = t.meter.Float64Histogram(
		"a2a.validation.duration",
		metric.WithDescription("Duration of a single validation"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("failed to create validation duration histogram: %w", err)
	}

	t.logger.Debug("all opentelemetry metrics initialized successfully")
	return nil
}
