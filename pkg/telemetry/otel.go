package telemetry

import (
	"context"
	"fmt"

	"github.com/vango-dev/navkit/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for navkit routers.
const defaultTracerName = "navkit"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "navkit").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Filter determines which passes to trace.
	// If nil, all passes are traced.
	Filter func(p router.Pass) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(p router.Pass) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer uses t instead of the global tracer provider.
func WithTracer(t trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = t
	}
}

// WithPassFilter sets a filter function for passes.
func WithPassFilter(filter func(p router.Pass) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(p router.Pass) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing is a router.Observer that records one span per resolution pass.
type Tracing struct {
	config OTelConfig
	tracer trace.Tracer
}

var _ router.Observer = (*Tracing)(nil)

// OpenTelemetry creates an observer that traces resolution passes.
//
// Spans are recorded after the fact with the pass's own start and end
// timestamps, so nested passes in a redirect chain appear as siblings.
// Each span carries:
//   - navkit.path: the resolved address
//   - navkit.route: the matched route name or pattern
//   - navkit.outcome: resolved, not_found, redirect or error
//   - navkit.redirects: hops followed so far in the chain
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{config: config, tracer: tracer}
}

// ObservePass implements router.Observer.
func (t *Tracing) ObservePass(p router.Pass) {
	if t.config.Filter != nil && !t.config.Filter(p) {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("navkit.path", p.Path),
		attribute.String("navkit.route", p.Route),
		attribute.String("navkit.outcome", string(p.Outcome)),
		attribute.Int("navkit.redirects", p.Redirects),
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(p)...)
	}

	// Passes are not tied to a request, so spans start from a fresh context.
	_, span := t.tracer.Start(
		context.Background(),
		spanName(p),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(p.Start),
	)

	if p.Err != nil {
		span.RecordError(p.Err)
		span.SetStatus(codes.Error, p.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(p.Start.Add(p.Duration)))
}

// spanName names a span after the route, falling back to the path.
func spanName(p router.Pass) string {
	if p.Route != "" {
		return fmt.Sprintf("navkit %s", p.Route)
	}
	return fmt.Sprintf("navkit %s", p.Path)
}
