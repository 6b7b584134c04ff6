package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/envcascade/logger"
)

// Resolution outcomes recorded on metrics and spans.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"

	// StatusSourceError means resolution stopped before any key was checked.
	StatusSourceError = "source_error"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded while resolving configuration.
type Metrics struct {
	resolutionTotal    metric.Int64Counter
	resolutionDuration metric.Float64Histogram
	layerTotal         metric.Int64Counter
	failureTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolutionTotal, err := meter.Int64Counter("config.resolutions",
		metric.WithDescription("Total number of configuration resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating config.resolutions counter: %w", err)
	}

	resolutionDuration, err := meter.Float64Histogram("config.resolve.duration",
		metric.WithDescription("Duration of configuration resolution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating config.resolve.duration histogram: %w", err)
	}

	layerTotal, err := meter.Int64Counter("config.keys.resolved",
		metric.WithDescription("Keys resolved, by winning layer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating config.keys.resolved counter: %w", err)
	}

	failureTotal, err := meter.Int64Counter("config.validation_errors",
		metric.WithDescription("Validation failures by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating config.validation_errors counter: %w", err)
	}

	return &Metrics{
		resolutionTotal:    resolutionTotal,
		resolutionDuration: resolutionDuration,
		layerTotal:         layerTotal,
		failureTotal:       failureTotal,
	}, nil
}

// RecordResolution records one completed resolution.
func (m *Metrics) RecordResolution(ctx context.Context, strategy, status string, duration time.Duration) {
	m.resolutionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrStatus, status),
	))
	m.resolutionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStrategy, strategy),
	))
}

// RecordLayer adds n keys resolved from layer.
func (m *Metrics) RecordLayer(ctx context.Context, layer string, n int) {
	if n <= 0 {
		return
	}
	m.layerTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrLayer, layer)))
}

// RecordFailures adds n failures of the given kind ("missing", "invalid").
func (m *Metrics) RecordFailures(ctx context.Context, kind string, n int) {
	if n <= 0 {
		return
	}
	m.failureTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}
