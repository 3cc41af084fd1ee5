package router

import (
	"net/url"
	"strings"
)

// MatchRoutes finds the first route in routes whose pattern matches path and
// returns it with the bound parameters and parsed query.
//
// The path is split at the first '?'. Path segments are compared one by one:
// literal segments must be equal (case-sensitive) and parameter segments
// match any non-empty segment. Routes whose segment count differs are
// skipped. Earlier routes win regardless of how specific later ones are.
//
// Routes with malformed patterns never match; build a Table to have them
// rejected up front.
func MatchRoutes(routes []Route, path string) (*Match, bool) {
	rawPath, rawQuery := splitPathAndQuery(path)
	segs := SplitPath(rawPath)

	for i := range routes {
		p, err := compilePattern(routes[i].Path)
		if err != nil {
			continue
		}
		params, ok := matchSegments(p.segments, segs)
		if !ok {
			continue
		}
		return &Match{
			Route:  &routes[i],
			Params: params,
			Query:  ParseQuery(rawQuery),
		}, true
	}
	return nil, false
}

// matchSegments compares a compiled pattern to path segments.
func matchSegments(pattern []segment, segs []string) (Params, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range pattern {
		value := segs[i]
		if !seg.isParam {
			if seg.literal != value {
				return nil, false
			}
			continue
		}
		if value == "" {
			return nil, false
		}
		params[seg.paramName] = decodeSegment(value)
	}
	return params, true
}

// decodeSegment percent-decodes a captured segment, keeping the raw text
// when it is not valid escaping.
func decodeSegment(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// splitPathAndQuery splits an address at the first '?'.
func splitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// ParseQuery parses a raw query string (without the leading '?') into a
// flat mapping. When a key repeats, the last occurrence wins. Malformed
// escapes are kept verbatim instead of failing the whole query.
func ParseQuery(raw string) Query {
	q := make(Query)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescapeQuery(key)
		if key == "" {
			continue
		}
		q[key] = unescapeQuery(value)
	}
	return q
}

func unescapeQuery(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}
