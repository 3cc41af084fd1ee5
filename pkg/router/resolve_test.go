package router

import (
	"errors"
	"reflect"
	"testing"
)

func TestTableResolve(t *testing.T) {
	table := MustTable(
		Route{Path: "/", Redirect: redirectTo("/home")},
		Route{Name: "home", Path: "/home", Render: text("home")},
		Route{Path: "/old/:id", Redirect: func() Ref { return Named("item", Params{"id": "x"}) }},
		Route{Name: "item", Path: "/items/:id", Render: text("item")},
		Route{Path: "/a", Redirect: redirectTo("/b")},
		Route{Path: "/b", Redirect: redirectTo("/a")},
		Route{Path: "/self", Redirect: redirectTo("/self")},
		Route{Path: "/broken", Redirect: func() Ref { return Named("nope", nil) }},
		Route{Path: "/lost", Redirect: redirectTo("/nowhere")},
	)

	tests := []struct {
		path      string
		wantRoute string
		wantChain []string
		wantErr   error
	}{
		{"/home", "home", []string{"/home"}, nil},
		{"/", "home", []string{"/", "/home"}, nil},
		{"/old/1", "item", []string{"/old/1", "/items/x"}, nil},
		{"/nowhere", "", []string{"/nowhere"}, ErrNoMatch},
		{"/lost", "", []string{"/lost", "/nowhere"}, ErrNoMatch},
		{"/self", "", []string{"/self"}, ErrRedirectLoop},
		{"/broken", "", []string{"/broken"}, ErrUnknownRoute},
	}

	for _, tt := range tests {
		res, err := table.Resolve(tt.path, 0)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		} else if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.path, err)
			continue
		} else if res.Match.Route.Name != tt.wantRoute {
			t.Errorf("Resolve(%q) route = %q, want %q", tt.path, res.Match.Route.Name, tt.wantRoute)
		}
		if !reflect.DeepEqual(res.Chain, tt.wantChain) {
			t.Errorf("Resolve(%q) chain = %v, want %v", tt.path, res.Chain, tt.wantChain)
		}
	}
}

func TestTableResolveLoopBound(t *testing.T) {
	table := MustTable(
		Route{Path: "/a", Redirect: redirectTo("/b")},
		Route{Path: "/b", Redirect: redirectTo("/a")},
	)

	res, err := table.Resolve("/a", 5)
	if !errors.Is(err, ErrRedirectLoop) {
		t.Fatalf("Resolve() error = %v, want ErrRedirectLoop", err)
	}
	if res.Redirects() != 5 {
		t.Errorf("Redirects() = %d, want 5", res.Redirects())
	}
	if res.Match != nil {
		t.Error("Match should be nil after a loop")
	}
}
