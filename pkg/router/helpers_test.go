package router

import (
	"io"
	"log/slog"
)

// fakeHost records the calls a Router makes on its host.
type fakeHost struct {
	added    int
	removed  int
	updates  int
	errors   []error
	onUpdate func()
}

func (h *fakeHost) AddController(Lifecycle)    { h.added++ }
func (h *fakeHost) RemoveController(Lifecycle) { h.removed++ }
func (h *fakeHost) ReportError(err error)      { h.errors = append(h.errors, err) }

func (h *fakeHost) RequestUpdate() {
	h.updates++
	if h.onUpdate != nil {
		h.onUpdate()
	}
}

// quietLogger discards router logs in tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// text returns a view factory rendering s.
func text(s string) func() View {
	return func() View { return s }
}

// redirectTo returns a redirect func to a literal path.
func redirectTo(path string) func() Ref {
	return func() Ref { return To(path) }
}

// passRecorder collects observed passes.
type passRecorder struct {
	passes []Pass
}

func (p *passRecorder) ObservePass(pass Pass) {
	p.passes = append(p.passes, pass)
}

func (p *passRecorder) count(o Outcome) int {
	n := 0
	for _, pass := range p.passes {
		if pass.Outcome == o {
			n++
		}
	}
	return n
}
