package location

import "strings"

// History is the path-mode adapter. The route lives in the address path,
// below an optional base prefix.
type History struct {
	win  Window
	base string
	sub  subscription
}

// NewHistory returns a path-mode adapter over w. base is stripped from
// addresses on read and prepended on write; "" and "/" mean no base.
func NewHistory(w Window, base string) *History {
	return &History{win: w, base: normalizeBase(base)}
}

// Base returns the normalized base prefix ("" when unset).
func (h *History) Base() string {
	return h.base
}

// Read returns the address path and query with the base stripped. The
// fragment is dropped.
func (h *History) Read() string {
	href, _ := SplitHref(h.win.Href())
	path, query, hasQuery := strings.Cut(href, "?")
	path = h.stripBase(path)
	if hasQuery && query != "" {
		return path + "?" + query
	}
	return path
}

// Write pushes a history entry for base+path and notifies the subscriber,
// since pushState raises no event of its own.
func (h *History) Write(path string) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	h.win.PushState(h.base + path)
	h.sub.notify()
}

// Subscribe registers fn for popstate events and for writes made through
// this adapter.
func (h *History) Subscribe(fn func()) func() {
	return h.sub.replace(fn, func(fn func()) func() {
		return h.win.AddEventListener(EventPopState, fn)
	})
}

// stripBase removes the base prefix when it ends on a segment boundary.
func (h *History) stripBase(path string) string {
	if path == "" {
		path = "/"
	}
	if h.base == "" {
		return path
	}
	rest, ok := strings.CutPrefix(path, h.base)
	if !ok {
		return path
	}
	if rest == "" {
		return "/"
	}
	if rest[0] != '/' {
		// "/app" must not strip "/application".
		return path
	}
	return rest
}

// normalizeBase makes base start with '/' and not end with one.
func normalizeBase(base string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}
