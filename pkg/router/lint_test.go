package router

import (
	"reflect"
	"testing"
)

func TestLint(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
		want   []IssueType
		index  []int
	}{
		{
			name: "clean",
			routes: []Route{
				{Path: "/", Redirect: redirectTo("/home")},
				{Name: "home", Path: "/home", Render: text("home")},
				{Path: "/items/new", Render: text("new")},
				{Path: "/items/:id", Render: text("item")},
			},
		},
		{
			name: "param shadows literal",
			routes: []Route{
				{Path: "/items/:id", Render: text("item")},
				{Path: "/items/new", Render: text("new")},
			},
			want:  []IssueType{IssueShadowedRoute},
			index: []int{1},
		},
		{
			name: "duplicate pattern",
			routes: []Route{
				{Path: "/a/:x", Render: text("1")},
				{Path: "/a/:y", Render: text("2")},
			},
			want:  []IssueType{IssueShadowedRoute},
			index: []int{1},
		},
		{
			name: "different lengths do not shadow",
			routes: []Route{
				{Path: "/:a", Render: text("1")},
				{Path: "/:a/:b", Render: text("2")},
			},
		},
		{
			name: "dead redirect",
			routes: []Route{
				{Path: "/old", Redirect: redirectTo("/gone")},
				{Path: "/new", Render: text("new")},
			},
			want:  []IssueType{IssueDeadRedirect},
			index: []int{0},
		},
		{
			name: "self redirect",
			routes: []Route{
				{Path: "/loop", Redirect: redirectTo("/loop")},
			},
			want:  []IssueType{IssueRedirectCycle},
			index: []int{0},
		},
		{
			name: "two hop cycle",
			routes: []Route{
				{Path: "/a", Redirect: redirectTo("/b")},
				{Path: "/b", Redirect: redirectTo("/a")},
			},
			want:  []IssueType{IssueRedirectCycle, IssueRedirectCycle},
			index: []int{0, 1},
		},
		{
			name: "unbuildable redirect is skipped",
			routes: []Route{
				{Path: "/x", Redirect: func() Ref { return Named("missing", nil) }},
				{Path: "/y", Render: text("y")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := MustTable(tt.routes...).Lint()

			var types []IssueType
			var index []int
			for _, issue := range issues {
				types = append(types, issue.Type)
				index = append(index, issue.Index)
			}
			if !reflect.DeepEqual(types, tt.want) || !reflect.DeepEqual(index, tt.index) {
				t.Errorf("Lint() = %v, want types %v at %v", issues, tt.want, tt.index)
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	issues := MustTable(
		Route{Path: "/items/:id", Render: text("item")},
		Route{Path: "/items/new", Render: text("new")},
	).Lint()
	if len(issues) != 1 {
		t.Fatalf("Lint() = %v, want one issue", issues)
	}
	want := "SHADOWED_ROUTE: routes[1] /items/new: never matches; routes[0] /items/:id matches first"
	if got := issues[0].String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
