package router

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/navkit/pkg/location"
)

// DefaultMaxRedirects bounds redirect chains and nested navigation.
const DefaultMaxRedirects = 20

// Host is the rendering component a Router is bound to.
type Host interface {
	// AddController registers c for the host's lifecycle notifications.
	AddController(c Lifecycle)

	// RemoveController unregisters c.
	RemoveController(c Lifecycle)

	// RequestUpdate asks the host to render again. The host reads the new
	// view through Router.Outlet.
	RequestUpdate()
}

// Lifecycle receives host lifecycle notifications.
type Lifecycle interface {
	HostConnected()
	HostDisconnected()
}

// ErrorReporter is implemented by hosts that want aborted resolution chains
// delivered to them. Each aborted chain is reported once.
type ErrorReporter interface {
	ReportError(err error)
}

// Router keeps a host's view in sync with the browser address.
//
// A Router is driven entirely by its host's event loop: Attach, Navigate and
// the adapter's change notifications all run a resolution pass synchronously
// on the calling goroutine. It is not safe for concurrent use.
type Router struct {
	table        *Table
	adapter      location.Adapter
	mode         Mode
	base         string
	maxRedirects int
	logger       *slog.Logger
	observer     Observer

	host        Host
	state       State
	unsubscribe func()

	current  *Match
	notFound bool
	missed   string
	err      error

	// redirects counts hops in the chain in progress. redirecting is set
	// while a redirect write is on the stack, so passes it triggers
	// synchronously keep the count. pending is the address the last
	// redirect wrote, for adapters that notify after Write returns.
	redirects   int
	redirecting bool
	pending     string

	// nesting counts active Attach/Navigate/notification chains on the
	// stack; chainErr collects the first error of the innermost one.
	nesting  int
	chainErr error
}

var _ Lifecycle = (*Router)(nil)

// New creates a router over table that reads and writes the address through
// adapter. The mode reported by Mode and used by Href follows the adapter:
// *location.Fragment is hash mode, anything else history mode.
func New(table *Table, adapter location.Adapter, opts ...Option) *Router {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Router{
		table:        table,
		adapter:      adapter,
		maxRedirects: o.maxRedirects,
		logger:       o.logger,
		observer:     o.observer,
	}
	switch a := adapter.(type) {
	case *location.Fragment:
		r.mode = ModeHash
	case *location.History:
		r.mode = ModeHistory
		r.base = a.Base()
	default:
		r.mode = ModeHistory
	}
	return r
}

// Attach binds the router to host: it registers with the host's lifecycle,
// subscribes to address changes and resolves the current address. The
// returned error is that of the initial resolution; the router stays
// attached either way.
func (r *Router) Attach(host Host) error {
	switch {
	case r.state == StateDetached:
		return ErrDetached
	case r.state.Attached():
		return ErrAttached
	}

	r.host = host
	r.state = StateAttachedUnresolved
	host.AddController(r)
	r.unsubscribe = r.adapter.Subscribe(r.handleChange)
	r.logger.Debug("router attached", "mode", r.mode.String(), "routes", r.table.Len())

	return r.chain(func() {
		r.record(r.pass())
	})
}

// Detach unsubscribes from address changes and unregisters from the host.
// A detached router never changes state again. Detach is idempotent.
func (r *Router) Detach() {
	if r.state == StateDetached {
		return
	}
	wasAttached := r.state.Attached()
	r.state = StateDetached

	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	if wasAttached && r.host != nil {
		r.host.RemoveController(r)
	}
	r.logger.Debug("router detached")
}

// HostConnected implements Lifecycle. Connection work happens in Attach.
func (r *Router) HostConnected() {}

// HostDisconnected implements Lifecycle by detaching.
func (r *Router) HostDisconnected() {
	r.Detach()
}

// Navigate moves to ref. Named refs are expanded against the route table;
// an unknown name or a missing parameter fails without navigating. On an
// attached router the resolution pass the write triggers, including any
// redirects, completes before Navigate returns, and its error is returned.
//
// On a detached router Navigate does nothing. Before Attach it only sets the
// address, which Attach then resolves.
func (r *Router) Navigate(ref Ref) error {
	if r.state == StateDetached {
		return nil
	}

	path, err := r.table.BuildPath(ref)
	if err != nil {
		r.logger.Warn("navigation rejected", "ref", ref.String(), "error", err)
		return err
	}

	if !r.state.Attached() {
		r.adapter.Write(path)
		return nil
	}
	return r.chain(func() {
		r.adapter.Write(path)
	})
}

// Outlet returns the current route's rendered view, or nil when no route
// has resolved yet.
func (r *Router) Outlet() View {
	if r.current == nil || r.current.Route.Render == nil {
		return nil
	}
	return r.current.Route.Render()
}

// Href returns the address-bar form of ref for use in links: "#/path" in
// hash mode and base+path in history mode.
func (r *Router) Href(ref Ref) (string, error) {
	path, err := r.table.BuildPath(ref)
	if err != nil {
		return "", err
	}
	if r.mode == ModeHash {
		return "#" + path, nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.base + path, nil
}

// State returns the lifecycle state.
func (r *Router) State() State { return r.state }

// Mode returns the address mode.
func (r *Router) Mode() Mode { return r.mode }

// Table returns the route table.
func (r *Router) Table() *Table { return r.table }

// Current returns the current match, or nil before the first resolution.
func (r *Router) Current() *Match { return r.current }

// Route returns the current route, or nil.
func (r *Router) Route() *Route {
	if r.current == nil {
		return nil
	}
	return r.current.Route
}

// Params returns the current path parameters.
func (r *Router) Params() Params {
	if r.current == nil {
		return nil
	}
	return r.current.Params
}

// Query returns the current query values.
func (r *Router) Query() Query {
	if r.current == nil {
		return nil
	}
	return r.current.Query
}

// NotFound reports whether the latest address matched no route. The
// previous route stays current so the host can keep showing it or render
// a not-found view.
func (r *Router) NotFound() bool { return r.notFound }

// MissedPath returns the address that matched nothing while NotFound is set.
func (r *Router) MissedPath() string { return r.missed }

// Err returns the error of the latest aborted resolution chain. It is
// cleared when a route resolves.
func (r *Router) Err() error { return r.err }

// handleChange is the adapter subscription callback.
func (r *Router) handleChange() {
	if !r.state.Attached() {
		return
	}
	if r.nesting > 0 {
		// A redirect or navigation already on the stack owns this pass.
		r.record(r.pass())
		return
	}
	// The error is kept in Err and reported to the host.
	r.chain(func() {
		r.record(r.pass())
	})
}

// chain runs fn as one resolution chain and returns the first error raised
// by any pass inside it. Chains nest when a host navigates while rendering;
// nesting deeper than the redirect bound is treated as a loop.
func (r *Router) chain(fn func()) error {
	if r.nesting > r.maxRedirects {
		err := fmt.Errorf("%w: navigation nested more than %d deep", ErrRedirectLoop, r.maxRedirects)
		r.err = err
		return err
	}

	saved, hop := r.chainErr, r.redirecting
	r.chainErr = nil
	r.redirecting = false
	r.nesting++
	// Restored on unwind too, so a host that recovers a panicking Render or
	// Redirect keeps a usable router.
	defer func() {
		r.nesting--
		r.chainErr, r.redirecting = saved, hop
	}()

	fn()

	err := r.chainErr
	if err != nil {
		r.err = err
		if r.nesting == 1 {
			r.report(err)
		}
	}
	return err
}

// record keeps the first error of the current chain.
func (r *Router) record(err error) {
	if err != nil && r.chainErr == nil {
		r.chainErr = err
	}
}

// pass performs one resolution pass over the current address.
func (r *Router) pass() error {
	if !r.state.Attached() {
		return nil
	}
	start := time.Now()
	path := r.adapter.Read()

	if !r.redirecting && (r.pending == "" || !sameAddress(path, r.pending)) {
		r.redirects = 0
	}
	r.pending = ""

	r.logger.Debug("resolving", "path", path)

	m, ok := r.table.Match(path)
	if !ok {
		r.notFound = true
		r.missed = path
		r.logger.Warn("no route matches", "path", path)
		r.observe(Pass{Path: path, Outcome: OutcomeNotFound, Redirects: r.redirects, Start: start})
		return nil
	}

	if !m.Route.IsRedirect() {
		r.current = m
		r.notFound = false
		r.missed = ""
		r.err = nil
		r.state = StateAttachedResolved
		r.logger.Info("route resolved", "path", path, "route", routeLabel(m.Route))
		r.observe(Pass{Path: path, Route: routeLabel(m.Route), Outcome: OutcomeResolved, Redirects: r.redirects, Start: start})
		if r.host != nil {
			r.host.RequestUpdate()
		}
		return nil
	}

	target, err := r.redirectTarget(path, m)
	if err != nil {
		r.logger.Error("resolution aborted", "path", path, "route", routeLabel(m.Route), "error", err)
		r.observe(Pass{Path: path, Route: routeLabel(m.Route), Outcome: OutcomeError, Redirects: r.redirects, Start: start, Err: err})
		r.redirects = 0
		return err
	}

	r.redirects++
	r.pending = target
	r.logger.Debug("redirecting", "from", path, "to", target, "hop", r.redirects)
	r.observe(Pass{Path: path, Route: routeLabel(m.Route), Outcome: OutcomeRedirect, Redirects: r.redirects, Start: start})
	r.writeRedirect(target)
	return nil
}

// writeRedirect writes target with the redirect flag set, so the pass the
// write triggers counts as the next hop of this chain.
func (r *Router) writeRedirect(target string) {
	hop := r.redirecting
	r.redirecting = true
	defer func() { r.redirecting = hop }()
	r.adapter.Write(target)
}

// redirectTarget evaluates a redirect route and checks the chain bound.
func (r *Router) redirectTarget(path string, m *Match) (string, error) {
	target, err := r.table.BuildPath(m.Route.Redirect())
	if err != nil {
		return "", fmt.Errorf("redirect from %q: %w", path, err)
	}
	if r.redirects >= r.maxRedirects {
		return "", fmt.Errorf("%w: more than %d redirects at %q", ErrRedirectLoop, r.maxRedirects, path)
	}
	if sameAddress(target, path) {
		return "", fmt.Errorf("%w: %q redirects to itself", ErrRedirectLoop, path)
	}
	return target, nil
}

func (r *Router) report(err error) {
	if rep, ok := r.host.(ErrorReporter); ok {
		rep.ReportError(err)
	}
}

func (r *Router) observe(p Pass) {
	if r.observer == nil {
		return
	}
	p.Duration = time.Since(p.Start)
	r.observer.ObservePass(p)
}

// sameAddress compares two route addresses, ignoring a missing leading
// slash, an empty query and any fragment.
func sameAddress(a, b string) bool {
	return normalizeAddress(a) == normalizeAddress(b)
}

func normalizeAddress(s string) string {
	s, _, _ = strings.Cut(s, "#")
	s = strings.TrimSuffix(s, "?")
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}
