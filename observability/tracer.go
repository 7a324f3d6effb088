package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authflow/logger"
	"github.com/skillsenselab/authflow/version"
)

const defaultTracerName = "github.com/skillsenselab/authflow/observability"

// Shared export defaults. Both providers target a local collector until a
// host points them elsewhere.
const (
	defaultCollectorEndpoint = "localhost:4318"
	defaultEnvironment       = "development"
	defaultSampleRate        = 1.0
)

// Names for the spans an authentication flow opens. SpanAuthenticate wraps
// the whole attempt; the oidc.* spans nest inside it per provider call.
const (
	SpanAuthenticate  = "auth.authenticate"
	SpanDiscovery     = "oidc.discovery"
	SpanTokenExchange = "oidc.token_exchange"
	SpanUserInfo      = "oidc.userinfo"
)

// Attribute keys shared by spans and metrics.
const (
	AttrServiceName  = "service.name"
	AttrStrategy     = "auth.strategy"
	AttrGrantType    = "auth.grant_type"
	AttrEndpoint     = "provider.endpoint"
	AttrRequestID    = "request.id"
	AttrUserID       = "user.id"
	AttrDurationMs   = "duration_ms"
	AttrStatus       = "status"
	AttrErrorMessage = "error.message"
)

// TracerConfig describes the OTLP trace export target.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment labels the deployment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP/HTTP collector as host:port, e.g. "localhost:4318".
	Endpoint string
	// Insecure exports over plain HTTP. Development only.
	Insecure bool
	// SampleRate keeps this fraction of traces, 0 through 1.
	SampleRate float64
}

// DefaultTracerConfig targets a local collector and samples everything. The
// service version comes from the build metadata.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Version,
		Environment:    defaultEnvironment,
		Endpoint:       defaultCollectorEndpoint,
		Insecure:       true,
		SampleRate:     defaultSampleRate,
	}
}

// InitTracer installs a global tracer provider exporting to the configured
// collector. Callers own the returned provider and must Shutdown it on exit.
func InitTracer(ctx context.Context, cfg *TracerConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create trace exporter: %w", err)
	}

	rsrc, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("observability: describe service resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(rsrc),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)
	otel.SetTracerProvider(tp)

	prop := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	otel.SetTextMapPropagator(prop)

	logger.Info("tracer provider installed", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// serviceResource tags exported telemetry with the service identity.
func serviceResource(name, ver, env string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(name),
			semconv.ServiceVersion(ver),
			attribute.String("environment", env),
		),
	)
}

// Tracer hands out a named tracer backed by whatever provider is installed.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan opens a span on the default tracer. With no provider installed
// the span is a no-op, so callers instrument unconditionally.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(defaultTracerName).Start(ctx, name, opts...)
}

// SpanFromContext returns the span carried by ctx.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttribute attaches key=value to the span in ctx. Values outside
// the supported scalar and []string types are dropped.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	kv, ok := attributeFor(key, value)
	if !ok {
		return
	}
	if span := SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(kv)
	}
}

func attributeFor(key string, value any) (attribute.KeyValue, bool) {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v), true
	case bool:
		return attribute.Bool(key, v), true
	case int:
		return attribute.Int(key, v), true
	case int64:
		return attribute.Int64(key, v), true
	case float64:
		return attribute.Float64(key, v), true
	case []string:
		return attribute.StringSlice(key, v), true
	}
	return attribute.KeyValue{}, false
}

// SetSpanError records err on the span in ctx, if one is recording.
func SetSpanError(ctx context.Context, err error) {
	if span := SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
	}
}
