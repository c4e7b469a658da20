package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer returns a named tracer from the global provider. Without an exporter
// configured the global provider discards spans.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// NoopTracer is used by tests.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("test")
}
