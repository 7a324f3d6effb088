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

	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/version"
)

const defaultMeterInterval = 15 * time.Second

// MeterConfig describes the OTLP metric export target.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment labels the deployment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP/HTTP collector as host:port, e.g. "localhost:4318".
	Endpoint string
	// Insecure exports over plain HTTP. Development only.
	Insecure bool
	// Interval between metric exports. Zero keeps the SDK default.
	Interval time.Duration
}

// DefaultMeterConfig targets a local collector with a 15s export interval.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Version,
		Environment:    defaultEnvironment,
		Endpoint:       defaultCollectorEndpoint,
		Insecure:       true,
		Interval:       defaultMeterInterval,
	}
}

// InitMeter installs a global meter provider exporting to the configured
// collector. Callers own the returned provider and must Shutdown it on exit.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create metric exporter: %w", err)
	}

	rsrc, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("observability: describe service resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp)
	if cfg.Interval > 0 {
		reader = sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(rsrc),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter provider installed", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter hands out a named meter backed by whatever provider is installed.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the authentication flow instruments. Every recording method
// tolerates a nil receiver, so strategies record unconditionally and hosts
// opt in by supplying an instance.
type Metrics struct {
	attempts  metric.Int64Counter
	latency   metric.Float64Histogram
	redirects metric.Int64Counter
	failures  metric.Int64Counter
}

// NewMetrics registers the flow instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	m.attempts, err = meter.Int64Counter("auth.attempts.total",
		metric.WithDescription("Authentication attempts by strategy, grant type, and result"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.attempts.total: %w", err)
	}

	m.latency, err = meter.Float64Histogram("auth.attempt.duration",
		metric.WithDescription("Duration of authentication attempts in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.attempt.duration: %w", err)
	}

	m.redirects, err = meter.Int64Counter("auth.redirects.total",
		metric.WithDescription("Authorization redirects issued by strategy"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.redirects.total: %w", err)
	}

	m.failures, err = meter.Int64Counter("auth.errors.total",
		metric.WithDescription("Authentication errors by code and component"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.errors.total: %w", err)
	}

	return &m, nil
}

// RecordAttempt counts a finished attempt and observes its duration.
func (m *Metrics) RecordAttempt(ctx context.Context, strategy, grantType, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("grant_type", grantType),
		attribute.String("status", result),
	))
	m.latency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("grant_type", grantType),
	))
}

// RecordRedirect counts an authorization redirect handed to a client.
func (m *Metrics) RecordRedirect(ctx context.Context, strategy string) {
	if m == nil {
		return
	}
	m.redirects.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", strategy)))
}

// RecordError counts a failure by error code and component.
func (m *Metrics) RecordError(ctx context.Context, code, comp string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", comp),
	))
}
