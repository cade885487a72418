// Package observability provides OpenTelemetry metrics and tracing for
// pipeline runs.
//
// Exporters are optional. With no provider installed, StageMetrics and the
// span helpers record into the global noop providers.
//
// Setup:
//
//	shutdown, err := observability.Setup(ctx, observability.DefaultConfig("skelbench"))
//	defer shutdown(ctx)
//
// Stage metrics:
//
//	m, err := observability.NewStageMetrics(observability.Meter("skeletons"))
//	m.RecordItem(ctx, "worker")
//	m.RecordStageEnd(ctx, "farm", "ok", time.Since(start))
package observability
