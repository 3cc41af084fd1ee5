package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vango-dev/navkit/pkg/router"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingTracer keeps every span it starts.
type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{
		name:  name,
		start: cfg.Timestamp(),
		attrs: make(map[attribute.Key]attribute.Value),
	}
	for _, kv := range cfg.Attributes() {
		s.attrs[kv.Key] = kv.Value
	}
	t.spans = append(t.spans, s)
	return ctx, s
}

type recordedSpan struct {
	noop.Span
	name   string
	start  time.Time
	end    time.Time
	ended  bool
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) End(opts ...trace.SpanEndOption) {
	s.ended = true
	cfg := trace.NewSpanEndConfig(opts...)
	s.end = cfg.Timestamp()
}

func TestOpenTelemetryRecordsSpan(t *testing.T) {
	tracer := &recordingTracer{}
	obs := OpenTelemetry(
		WithTracer(tracer),
		WithAttributeExtractor(func(router.Pass) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	obs.ObservePass(router.Pass{
		Path:      "/items/1",
		Route:     "item",
		Outcome:   router.OutcomeResolved,
		Redirects: 2,
		Start:     start,
		Duration:  3 * time.Millisecond,
	})

	if len(tracer.spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(tracer.spans))
	}
	s := tracer.spans[0]
	if s.name != "navkit item" {
		t.Errorf("span name = %q, want %q", s.name, "navkit item")
	}
	wantAttrs := map[attribute.Key]string{
		"navkit.path":    "/items/1",
		"navkit.route":   "item",
		"navkit.outcome": "resolved",
		"test.attr":      "ok",
	}
	for k, want := range wantAttrs {
		if got := s.attrs[k].AsString(); got != want {
			t.Errorf("attribute %s = %q, want %q", k, got, want)
		}
	}
	if got := s.attrs["navkit.redirects"].AsInt64(); got != 2 {
		t.Errorf("navkit.redirects = %d, want 2", got)
	}
	if !s.start.Equal(start) || !s.end.Equal(start.Add(3*time.Millisecond)) {
		t.Errorf("span timestamps = %v..%v", s.start, s.end)
	}
	if !s.ended || s.status != codes.Ok {
		t.Errorf("span ended=%v status=%v, want ended Ok", s.ended, s.status)
	}
}

func TestOpenTelemetryRecordsError(t *testing.T) {
	tracer := &recordingTracer{}
	obs := OpenTelemetry(WithTracer(tracer))

	boom := errors.New("boom")
	obs.ObservePass(router.Pass{Path: "/a", Outcome: router.OutcomeError, Err: boom, Start: time.Now()})

	s := tracer.spans[0]
	if s.name != "navkit /a" {
		t.Errorf("span name = %q, want %q", s.name, "navkit /a")
	}
	if s.status != codes.Error {
		t.Errorf("status = %v, want Error", s.status)
	}
	if len(s.errs) != 1 || !errors.Is(s.errs[0], boom) {
		t.Errorf("recorded errors = %v, want [boom]", s.errs)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tracer := &recordingTracer{}
	obs := OpenTelemetry(
		WithTracer(tracer),
		WithPassFilter(func(p router.Pass) bool { return p.Outcome != router.OutcomeNotFound }),
	)

	obs.ObservePass(router.Pass{Path: "/nope", Outcome: router.OutcomeNotFound})
	if len(tracer.spans) != 0 {
		t.Errorf("filtered pass produced %d spans", len(tracer.spans))
	}
}

func TestOpenTelemetryGlobalProvider(t *testing.T) {
	// The default global provider is a no-op; observing must not panic.
	OpenTelemetry(WithTracerName("test")).ObservePass(router.Pass{Path: "/"})
}

func TestMulti(t *testing.T) {
	var a, b int
	obs := Multi(
		router.ObserverFunc(func(router.Pass) { a++ }),
		nil,
		router.ObserverFunc(func(router.Pass) { b++ }),
	)

	obs.ObservePass(router.Pass{})
	obs.ObservePass(router.Pass{})

	if a != 2 || b != 2 {
		t.Errorf("a = %d, b = %d; want 2, 2", a, b)
	}
}
