package router

import "time"

// Outcome classifies how a resolution pass ended.
type Outcome string

const (
	// OutcomeResolved means a renderable route became current.
	OutcomeResolved Outcome = "resolved"

	// OutcomeNotFound means the address matched no route.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeRedirect means the pass ended by navigating elsewhere.
	OutcomeRedirect Outcome = "redirect"

	// OutcomeError means the pass aborted with an error.
	OutcomeError Outcome = "error"
)

// Pass describes one completed resolution pass.
type Pass struct {
	// Path is the address that was resolved.
	Path string

	// Route is the matched route's name, or its pattern when unnamed.
	// Empty when nothing matched.
	Route string

	// Outcome is how the pass ended.
	Outcome Outcome

	// Redirects is the number of redirects followed so far in the chain.
	Redirects int

	// Start is when the pass began.
	Start time.Time

	// Duration is how long the pass took, excluding nested passes it
	// triggered.
	Duration time.Duration

	// Err is set when Outcome is OutcomeError.
	Err error
}

// Observer receives a record of every resolution pass. Implementations must
// not call back into the router.
type Observer interface {
	ObservePass(p Pass)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p Pass)

// ObservePass implements Observer.
func (f ObserverFunc) ObservePass(p Pass) {
	f(p)
}

// routeLabel names a route for logs and observers.
func routeLabel(r *Route) string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}
