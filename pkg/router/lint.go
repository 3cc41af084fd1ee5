package router

import (
	"errors"
	"fmt"
)

// IssueType categorizes a table lint finding.
type IssueType string

const (
	// IssueShadowedRoute marks a route that can never match because an
	// earlier route matches every address it would.
	// Example: "/items/:id" before "/items/new".
	IssueShadowedRoute IssueType = "SHADOWED_ROUTE"

	// IssueDeadRedirect marks a redirect whose target matches no route.
	IssueDeadRedirect IssueType = "DEAD_REDIRECT"

	// IssueRedirectCycle marks a redirect whose chain never ends.
	IssueRedirectCycle IssueType = "REDIRECT_CYCLE"
)

// Issue is a problem found by Lint. Tables with issues are still usable;
// the issues describe routes that will not behave the way they read.
type Issue struct {
	Type IssueType

	// Index is the position of the offending route in the table.
	Index int

	// Path is the offending route's pattern.
	Path string

	// Message is the human-readable description.
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: routes[%d] %s: %s", i.Type, i.Index, i.Path, i.Message)
}

// Lint checks the table for unreachable routes and redirects that cannot
// resolve. Redirect functions are called once each.
func (t *Table) Lint() []Issue {
	var issues []Issue
	issues = append(issues, t.lintShadowed()...)
	issues = append(issues, t.lintRedirects()...)
	return issues
}

func (t *Table) lintShadowed() []Issue {
	var issues []Issue
	for j := range t.patterns {
		for i := 0; i < j; i++ {
			if !covers(t.patterns[i], t.patterns[j]) {
				continue
			}
			issues = append(issues, Issue{
				Type:    IssueShadowedRoute,
				Index:   j,
				Path:    t.routes[j].Path,
				Message: fmt.Sprintf("never matches; routes[%d] %s matches first", i, t.routes[i].Path),
			})
			break
		}
	}
	return issues
}

// covers reports whether every address matching b also matches a.
func covers(a, b pattern) bool {
	if len(a.segments) != len(b.segments) {
		return false
	}
	for k, seg := range a.segments {
		if seg.isParam {
			continue
		}
		other := b.segments[k]
		if other.isParam || other.literal != seg.literal {
			return false
		}
	}
	return true
}

func (t *Table) lintRedirects() []Issue {
	var issues []Issue
	for i := range t.routes {
		r := &t.routes[i]
		if !r.IsRedirect() {
			continue
		}
		target, err := t.BuildPath(r.Redirect())
		if err != nil {
			// Reported when the redirect runs; nothing more to say here.
			continue
		}

		issue := Issue{Index: i, Path: r.Path}
		_, err = t.Resolve(target, DefaultMaxRedirects)
		switch {
		case sameAddress(target, r.Path):
			issue.Type = IssueRedirectCycle
			issue.Message = "redirects to itself"
		case errors.Is(err, ErrNoMatch):
			issue.Type = IssueDeadRedirect
			issue.Message = fmt.Sprintf("target %s matches no route", target)
		case errors.Is(err, ErrRedirectLoop):
			issue.Type = IssueRedirectCycle
			issue.Message = fmt.Sprintf("target %s redirects without end", target)
		default:
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}
