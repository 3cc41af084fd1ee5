package router

import (
	"reflect"
	"testing"
)

func TestMatchFirstRouteWins(t *testing.T) {
	routes := []Route{
		{Path: "/a/:id"},
		{Path: "/a/b"},
	}

	m, ok := MatchRoutes(routes, "/a/b")
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Route != &routes[0] {
		t.Errorf("matched %q, want %q", m.Route.Path, "/a/:id")
	}
	if m.Params["id"] != "b" {
		t.Errorf("Params[id] = %q, want %q", m.Params["id"], "b")
	}
}

func TestMatch(t *testing.T) {
	routes := []Route{
		{Name: "root", Path: "/"},
		{Name: "home", Path: "/home"},
		{Name: "item", Path: "/items/:id"},
		{Name: "edit", Path: "/items/:id/edit"},
		{Name: "pair", Path: "/pair/:left/:right"},
		{Name: "gap", Path: "/gap/:id/end"},
	}

	tests := []struct {
		path       string
		wantRoute  string
		wantParams Params
		wantQuery  Query
	}{
		{"/", "root", Params{}, Query{}},
		{"", "root", Params{}, Query{}},
		{"/home", "home", Params{}, Query{}},
		{"/home/", "home", Params{}, Query{}},
		{"home", "home", Params{}, Query{}},
		{"/Home", "", nil, nil},
		{"/items/42", "item", Params{"id": "42"}, Query{}},
		{"/items/42/edit", "edit", Params{"id": "42"}, Query{}},
		{"/items", "", nil, nil},
		{"/items/42/edit/more", "", nil, nil},
		{"/pair/x/y", "pair", Params{"left": "x", "right": "y"}, Query{}},
		{"/gap//end", "", nil, nil},
		{"/items/a%20b", "item", Params{"id": "a b"}, Query{}},
		{"/items/bad%zz", "item", Params{"id": "bad%zz"}, Query{}},
		{"/items/7?tab=notes&sort=asc", "item", Params{"id": "7"}, Query{"tab": "notes", "sort": "asc"}},
		{"/?q=1", "root", Params{}, Query{"q": "1"}},
		{"/nowhere", "", nil, nil},
	}

	for _, tt := range tests {
		m, ok := MatchRoutes(routes, tt.path)
		if tt.wantRoute == "" {
			if ok {
				t.Errorf("MatchRoutes(%q) matched %q, want no match", tt.path, m.Route.Name)
			}
			continue
		}
		if !ok {
			t.Errorf("MatchRoutes(%q) = no match, want %q", tt.path, tt.wantRoute)
			continue
		}
		if m.Route.Name != tt.wantRoute {
			t.Errorf("MatchRoutes(%q) route = %q, want %q", tt.path, m.Route.Name, tt.wantRoute)
		}
		if !reflect.DeepEqual(m.Params, tt.wantParams) {
			t.Errorf("MatchRoutes(%q) params = %v, want %v", tt.path, m.Params, tt.wantParams)
		}
		if !reflect.DeepEqual(m.Query, tt.wantQuery) {
			t.Errorf("MatchRoutes(%q) query = %v, want %v", tt.path, m.Query, tt.wantQuery)
		}
	}
}

func TestMatchEmptyPatternIsRoot(t *testing.T) {
	routes := []Route{{Name: "blank", Path: ""}}

	if _, ok := MatchRoutes(routes, "/"); !ok {
		t.Error("empty pattern should match /")
	}
	if _, ok := MatchRoutes(routes, "/x"); ok {
		t.Error("empty pattern should not match /x")
	}
}

func TestMatchRootDoesNotMatchParam(t *testing.T) {
	routes := []Route{{Path: "/:id"}}
	if _, ok := MatchRoutes(routes, "/"); ok {
		t.Error("/ should not match /:id")
	}
}

func TestMatchSkipsMalformedPatterns(t *testing.T) {
	routes := []Route{
		{Name: "bad", Path: "/x/:"},
		{Name: "good", Path: "/x/:id"},
	}
	m, ok := MatchRoutes(routes, "/x/1")
	if !ok || m.Route.Name != "good" {
		t.Fatalf("MatchRoutes() = %v, %v; want good route", m, ok)
	}
}

func TestMatchIdempotent(t *testing.T) {
	table := MustTable(
		Route{Name: "item", Path: "/items/:id"},
		Route{Name: "list", Path: "/items"},
	)

	first, ok1 := table.Match("/items/9?x=1")
	second, ok2 := table.Match("/items/9?x=1")
	if !ok1 || !ok2 {
		t.Fatal("expected both passes to match")
	}
	if first.Route != second.Route {
		t.Error("route differs between passes")
	}
	if !reflect.DeepEqual(first.Params, second.Params) || !reflect.DeepEqual(first.Query, second.Query) {
		t.Errorf("bindings differ: %v/%v vs %v/%v", first.Params, first.Query, second.Params, second.Query)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"", Query{}},
		{"a=1", Query{"a": "1"}},
		{"a=1&b=2", Query{"a": "1", "b": "2"}},
		{"a=1&a=2&a=3", Query{"a": "3"}},
		{"flag", Query{"flag": ""}},
		{"a=&b=x", Query{"a": "", "b": "x"}},
		{"q=hello+world", Query{"q": "hello world"}},
		{"q=%41%42", Query{"q": "AB"}},
		{"q=%zz", Query{"q": "%zz"}},
		{"&&a=1&", Query{"a": "1"}},
		{"=novalue", Query{}},
		{"k=a=b", Query{"k": "a=b"}},
	}

	for _, tt := range tests {
		got := ParseQuery(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseQuery(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"//", nil},
		{"/a", []string{"a"}},
		{"a/b", []string{"a", "b"}},
		{"/a/b/", []string{"a", "b"}},
		{"/a//b", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		got := SplitPath(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
