package router

import "fmt"

// Resolution is the outcome of resolving an address without a router.
type Resolution struct {
	// Match is the final, non-redirect match. Nil when resolution failed.
	Match *Match

	// Chain lists every address visited, starting with the input.
	Chain []string
}

// Redirects returns the number of redirects followed.
func (r *Resolution) Redirects() int {
	if len(r.Chain) == 0 {
		return 0
	}
	return len(r.Chain) - 1
}

// Resolve follows path through the table, including redirects, the same way
// a Router would, without touching any address. maxRedirects below 1 uses
// DefaultMaxRedirects. The partial chain is returned alongside errors.
func (t *Table) Resolve(path string, maxRedirects int) (*Resolution, error) {
	if maxRedirects < 1 {
		maxRedirects = DefaultMaxRedirects
	}
	res := &Resolution{Chain: []string{path}}

	for {
		m, ok := t.Match(path)
		if !ok {
			return res, fmt.Errorf("%w: %q", ErrNoMatch, path)
		}
		if !m.Route.IsRedirect() {
			res.Match = m
			return res, nil
		}

		target, err := t.BuildPath(m.Route.Redirect())
		if err != nil {
			return res, fmt.Errorf("redirect from %q: %w", path, err)
		}
		if res.Redirects() >= maxRedirects {
			return res, fmt.Errorf("%w: more than %d redirects at %q", ErrRedirectLoop, maxRedirects, path)
		}
		if sameAddress(target, path) {
			return res, fmt.Errorf("%w: %q redirects to itself", ErrRedirectLoop, path)
		}
		res.Chain = append(res.Chain, target)
		path = target
	}
}
