package router

import (
	"fmt"
	"strings"
)

// segment is one '/'-delimited piece of a route pattern.
type segment struct {
	// literal is the text a static segment must equal.
	literal string

	// isParam indicates a parameter segment (:id).
	isParam bool

	// paramName is the parameter name without the leading ':'.
	paramName string
}

// pattern is a compiled route path.
type pattern struct {
	raw      string
	segments []segment
}

// compilePattern splits a route path into segments and validates its
// parameter names.
func compilePattern(path string) (pattern, error) {
	parts := SplitPath(path)
	p := pattern{raw: path, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		if !strings.HasPrefix(part, ":") {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}
		name := part[1:]
		if name == "" {
			return pattern{}, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, path)
		}
		if _, dup := seen[name]; dup {
			return pattern{}, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, path, name)
		}
		seen[name] = struct{}{}
		p.segments = append(p.segments, segment{isParam: true, paramName: name})
	}
	return p, nil
}

// params lists the parameter names in pattern order.
func (p pattern) params() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.isParam {
			names = append(names, seg.paramName)
		}
	}
	return names
}

// SplitPath splits a path into its segments. One leading and one trailing
// slash are ignored, so "/" and "" both yield zero segments.
func SplitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
