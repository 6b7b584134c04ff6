// Package observability provides OpenTelemetry tracing and metrics for
// configuration resolution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("envcheck"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanConfigResolve)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("envcheck"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("envcheck"))
//	metrics.RecordResolution(ctx, "env", observability.StatusOK, elapsed)
package observability
