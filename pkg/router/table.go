package router

import "fmt"

// Table is an ordered, immutable route table. Routes are matched in the
// order they were given; the first structural match wins.
type Table struct {
	routes   []Route
	patterns []pattern
	byName   map[string]int
}

// NewTable builds a table from routes. It fails when two routes share a
// non-empty name or a pattern has a malformed parameter segment.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes:   make([]Route, len(routes)),
		patterns: make([]pattern, len(routes)),
		byName:   make(map[string]int),
	}
	copy(t.routes, routes)

	for i := range t.routes {
		r := &t.routes[i]
		p, err := compilePattern(r.Path)
		if err != nil {
			return nil, err
		}
		t.patterns[i] = p

		if r.Name == "" {
			continue
		}
		if prev, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q used by %q and %q",
				ErrDuplicateRoute, r.Name, t.routes[prev].Path, r.Path)
		}
		t.byName[r.Name] = i
	}
	return t, nil
}

// MustTable is like NewTable but panics on error. It is meant for tables
// declared as package-level literals.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup returns the route called name.
func (t *Table) Lookup(name string) (*Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.routes[i], true
}

// Names returns the route names in table order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for i := range t.routes {
		if t.routes[i].Name != "" {
			names = append(names, t.routes[i].Name)
		}
	}
	return names
}

// Match resolves path against the table. See MatchRoutes.
func (t *Table) Match(path string) (*Match, bool) {
	rawPath, rawQuery := splitPathAndQuery(path)
	segs := SplitPath(rawPath)

	for i := range t.routes {
		params, ok := matchSegments(t.patterns[i].segments, segs)
		if !ok {
			continue
		}
		return &Match{
			Route:  &t.routes[i],
			Params: params,
			Query:  ParseQuery(rawQuery),
		}, true
	}
	return nil, false
}

// named returns the route called name and its compiled pattern.
func (t *Table) named(name string) (*Route, pattern, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, pattern{}, false
	}
	return &t.routes[i], t.patterns[i], true
}
