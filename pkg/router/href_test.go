package router

import (
	"errors"
	"strings"
	"testing"
)

func hrefTable() *Table {
	return MustTable(
		Route{Name: "root", Path: "/"},
		Route{Name: "home", Path: "/home"},
		Route{Name: "item", Path: "/items/:id"},
		Route{Name: "pair", Path: "/pair/:left/:right"},
	)
}

func TestBuildPath(t *testing.T) {
	table := hrefTable()

	tests := []struct {
		name    string
		ref     Ref
		want    string
		wantErr error
	}{
		{"literal verbatim", To("/anything?x=1"), "/anything?x=1", nil},
		{"literal wins over name", Ref{Path: "/p", Name: "home"}, "/p", nil},
		{"root", Named("root", nil), "/", nil},
		{"static", Named("home", nil), "/home", nil},
		{"param", Named("item", Params{"id": "42"}), "/items/42", nil},
		{"two params", Named("pair", Params{"left": "a", "right": "b"}), "/pair/a/b", nil},
		{"extra params ignored", Named("item", Params{"id": "1", "x": "y"}), "/items/1", nil},
		{"escaped param", Named("item", Params{"id": "a b/c"}), "/items/a%20b%2Fc", nil},
		{"query sorted", Named("home", nil).WithQuery(Query{"z": "1", "a": "x y"}), "/home?a=x+y&z=1", nil},
		{"missing param", Named("item", nil), "", ErrMissingParam},
		{"empty param", Named("item", Params{"id": ""}), "", ErrMissingParam},
		{"unknown name", Named("nope", nil), "", ErrUnknownRoute},
		{"empty ref", Ref{}, "", ErrInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.BuildPath(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPathSuggestsName(t *testing.T) {
	_, err := hrefTable().BuildPath(Named("iten", Params{"id": "1"}))
	if !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("error = %v, want ErrUnknownRoute", err)
	}
	if !strings.Contains(err.Error(), `did you mean "item"?`) {
		t.Errorf("error %q has no suggestion", err)
	}

	_, err = hrefTable().BuildPath(Named("completely-different", nil))
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q suggests an unrelated name", err)
	}
}

func TestBuildPathRoundTrip(t *testing.T) {
	table := hrefTable()

	values := []string{"42", "hello world", "ünïcode", "a/b", "50%"}
	for _, v := range values {
		path, err := table.BuildPath(Named("item", Params{"id": v}))
		if err != nil {
			t.Fatalf("BuildPath(%q) error = %v", v, err)
		}
		m, ok := table.Match(path)
		if !ok {
			t.Fatalf("Match(%q) = no match", path)
		}
		if m.Route.Name != "item" {
			t.Errorf("Match(%q) route = %q, want item", path, m.Route.Name)
		}
		if m.Params["id"] != v {
			t.Errorf("round trip of %q gave %q", v, m.Params["id"])
		}
	}
}

func TestBuildPathQueryRoundTrip(t *testing.T) {
	table := hrefTable()
	q := Query{"q": "a&b=c", "page": "2"}

	path, err := table.BuildPath(Named("home", nil).WithQuery(q))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := table.Match(path)
	if !ok {
		t.Fatalf("Match(%q) = no match", path)
	}
	for k, v := range q {
		if m.Query[k] != v {
			t.Errorf("Query[%q] = %q, want %q", k, m.Query[k], v)
		}
	}
}
