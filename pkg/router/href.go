package router

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/valyala/bytebufferpool"
)

// BuildPath converts a ref into a concrete path against t.
//
// A literal ref is returned verbatim. A named ref is looked up in the table
// and its parameter segments are filled by name from ref.Params (escaped as
// path segments); ref.Query is appended as a sorted query string. Extra
// params are ignored.
func (t *Table) BuildPath(ref Ref) (string, error) {
	if ref.Path != "" {
		return ref.Path, nil
	}
	if ref.Name == "" {
		return "", ErrInvalidRef
	}

	_, p, ok := t.named(ref.Name)
	if !ok {
		if s := t.closestName(ref.Name); s != "" {
			return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownRoute, ref.Name, s)
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, ref.Name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(p.segments) == 0 {
		buf.WriteByte('/')
	}
	for _, seg := range p.segments {
		buf.WriteByte('/')
		if !seg.isParam {
			buf.WriteString(seg.literal)
			continue
		}
		value, ok := ref.Params[seg.paramName]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q requires %q", ErrMissingParam, ref.Name, seg.paramName)
		}
		buf.WriteString(url.PathEscape(value))
	}

	if len(ref.Query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(encodeQuery(ref.Query))
	}
	return buf.String(), nil
}

// encodeQuery encodes q with keys in sorted order.
func encodeQuery(q Query) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(k))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(q[k]))
	}
	return buf.String()
}

// maxSuggestDistance bounds how different a name may be to be suggested.
const maxSuggestDistance = 3

// closestName returns the table name nearest to name, or "" if none is
// close enough to be a plausible typo.
func (t *Table) closestName(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range t.Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
