package router

import "errors"

// Resolution and configuration errors. Returned errors wrap these, so test
// with errors.Is.
var (
	// ErrNoMatch is returned by Resolve when an address matches no route.
	// A Router reports the same condition through NotFound instead.
	ErrNoMatch = errors.New("no route matches")

	// ErrRedirectLoop is returned when a redirect chain exceeds the
	// configured bound or redirects to the address being resolved.
	ErrRedirectLoop = errors.New("redirect loop")

	// ErrUnknownRoute is returned when a Ref names a route absent from the table.
	ErrUnknownRoute = errors.New("unknown route name")

	// ErrMissingParam is returned when a Ref omits a parameter its pattern requires.
	ErrMissingParam = errors.New("missing route parameter")

	// ErrInvalidRef is returned for a Ref with neither a path nor a name.
	ErrInvalidRef = errors.New("invalid route ref")

	// ErrDuplicateRoute is returned by NewTable when two routes share a name.
	ErrDuplicateRoute = errors.New("duplicate route name")

	// ErrInvalidPattern is returned by NewTable for malformed parameter segments.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrInvalidMode is returned by ParseMode for unknown mode names.
	ErrInvalidMode = errors.New("invalid router mode")

	// ErrAttached is returned by Attach on a router that is already attached.
	ErrAttached = errors.New("router already attached")

	// ErrDetached is returned by Attach on a detached router.
	ErrDetached = errors.New("router detached")
)
