package router

import "maps"

// View is the rendered output of a route. The router never inspects it; the
// host decides how to display whatever its view factories return.
type View = any

// Params are the path parameters bound by a match, keyed by name without the
// leading ':'.
type Params map[string]string

// Query is the flat query-string mapping of an address.
type Query map[string]string

// Route defines one entry of a route table.
type Route struct {
	// Name optionally identifies the route for named navigation.
	// Non-empty names are unique within a table.
	Name string

	// Path is the pattern, e.g. "/items/:id". Segments starting with ':'
	// bind parameters; all others must match literally.
	Path string

	// Redirect, when set, makes this a redirect route. Resolving it never
	// makes it current; the returned Ref is navigated to instead.
	Redirect func() Ref

	// Render produces the view for the outlet. It is nil only on pure
	// redirect routes.
	Render func() View
}

// IsRedirect reports whether the route redirects.
func (r *Route) IsRedirect() bool {
	return r.Redirect != nil
}

// Ref is a navigation target: either a literal path or a reference to a
// named route with parameters and query values.
type Ref struct {
	// Path is used verbatim when non-empty.
	Path string

	// Name selects a route from the table when Path is empty.
	Name string

	// Params fill the named route's parameter segments.
	Params Params

	// Query is appended as a query string.
	Query Query
}

// To returns a Ref for a literal path.
func To(path string) Ref {
	return Ref{Path: path}
}

// Named returns a Ref for the route called name.
func Named(name string, params Params) Ref {
	return Ref{Name: name, Params: params}
}

// WithQuery returns a copy of the ref with the query values merged in.
func (r Ref) WithQuery(q Query) Ref {
	merged := make(Query, len(r.Query)+len(q))
	maps.Copy(merged, r.Query)
	maps.Copy(merged, q)
	r.Query = merged
	return r
}

// IsZero reports whether the ref names no target at all.
func (r Ref) IsZero() bool {
	return r.Path == "" && r.Name == ""
}

// String returns a readable form of the ref for logs and errors.
func (r Ref) String() string {
	if r.Path != "" {
		return r.Path
	}
	if r.Name != "" {
		return "@" + r.Name
	}
	return "<empty>"
}

// Match is the result of matching an address against a route table.
type Match struct {
	// Route is the matched table entry.
	Route *Route

	// Params are the bound path parameters.
	Params Params

	// Query is the parsed query string.
	Query Query
}

// Mode selects how the browser address is read and written.
type Mode int

const (
	// ModeHistory keeps the route in the address path and uses the
	// history stack. This is the default.
	ModeHistory Mode = iota

	// ModeHash keeps the route in the address fragment.
	ModeHash
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case ModeHash:
		return "hash"
	case ModeHistory:
		return "history"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration value into a Mode. The empty string
// selects ModeHistory; "path" and "fragment" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "history", "path":
		return ModeHistory, nil
	case "hash", "fragment":
		return ModeHash, nil
	default:
		return ModeHistory, ErrInvalidMode
	}
}

// State is the lifecycle state of a Router.
type State int

const (
	StateUnattached State = iota
	StateAttachedUnresolved
	StateAttachedResolved
	StateDetached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAttachedUnresolved:
		return "attached-unresolved"
	case StateAttachedResolved:
		return "attached-resolved"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Attached reports whether the state is one of the attached states.
func (s State) Attached() bool {
	return s == StateAttachedUnresolved || s == StateAttachedResolved
}
