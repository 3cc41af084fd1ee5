// Package telemetry provides router.Observer implementations that export
// resolution passes to Prometheus and OpenTelemetry.
//
// Observers are attached with router.WithObserver:
//
//	metrics := telemetry.Prometheus(telemetry.WithNamespace("myapp"))
//	tracing := telemetry.OpenTelemetry(telemetry.WithTracerName("myapp"))
//
//	r := router.New(table, adapter,
//	    router.WithObserver(telemetry.Multi(metrics, tracing)),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// The OpenTelemetry observer uses the global tracer provider unless one is
// given with WithTracer. Configure it in main() before creating routers.
package telemetry
