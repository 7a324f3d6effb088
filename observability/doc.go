// Package observability provides OpenTelemetry tracing and metrics for
// authentication flows, plus component health reporting.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("login-svc")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanDiscovery)
//	defer span.End()
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("login-svc")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("login-svc"))
//	metrics.RecordAttempt(ctx, "oidc", "authorization_code", "ok", duration)
//
// Without an installed provider every span is a no-op and a nil *Metrics
// records nothing, so instrumented code needs no conditionals.
//
// Health checks:
//
//	health := observability.NewServiceHealth("login-svc", "1.0.0")
//	health.AddComponent(strat.CheckHealth(ctx))
package observability
