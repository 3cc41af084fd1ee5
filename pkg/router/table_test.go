package router

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		routes  []Route
		wantErr error
	}{
		{
			name:   "empty",
			routes: nil,
		},
		{
			name: "unnamed routes may share a path",
			routes: []Route{
				{Path: "/a"},
				{Path: "/a"},
			},
		},
		{
			name: "duplicate name",
			routes: []Route{
				{Name: "home", Path: "/"},
				{Name: "home", Path: "/home"},
			},
			wantErr: ErrDuplicateRoute,
		},
		{
			name:    "unnamed parameter",
			routes:  []Route{{Path: "/items/:"}},
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "repeated parameter",
			routes:  []Route{{Path: "/:id/x/:id"}},
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.routes...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTable() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTable() error = %v", err)
			}
			if table.Len() != len(tt.routes) {
				t.Errorf("Len() = %d, want %d", table.Len(), len(tt.routes))
			}
		})
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTable() did not panic on a duplicate name")
		}
	}()
	MustTable(Route{Name: "x", Path: "/a"}, Route{Name: "x", Path: "/b"})
}

func TestTableLookupAndNames(t *testing.T) {
	table := MustTable(
		Route{Path: "/", Redirect: redirectTo("/home")},
		Route{Name: "home", Path: "/home"},
		Route{Name: "item", Path: "/items/:id"},
	)

	r, ok := table.Lookup("item")
	if !ok {
		t.Fatal("Lookup(item) not found")
	}
	if r.Path != "/items/:id" {
		t.Errorf("Lookup(item).Path = %q, want %q", r.Path, "/items/:id")
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	want := []string{"home", "item"}
	if got := table.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestTableRoutesIsCopy(t *testing.T) {
	table := MustTable(Route{Name: "home", Path: "/home"})

	routes := table.Routes()
	routes[0].Path = "/changed"

	m, ok := table.Match("/home")
	if !ok || m.Route.Path != "/home" {
		t.Error("mutating Routes() result changed the table")
	}
}

func TestTableIgnoresCallerMutation(t *testing.T) {
	routes := []Route{{Name: "home", Path: "/home"}}
	table := MustTable(routes...)
	routes[0].Path = "/other"

	if _, ok := table.Match("/home"); !ok {
		t.Error("table should keep its own copy of the routes")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeHistory, false},
		{"history", ModeHistory, false},
		{"path", ModeHistory, false},
		{"hash", ModeHash, false},
		{"fragment", ModeHash, false},
		{"HASH", ModeHistory, true},
		{"query", ModeHistory, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRefHelpers(t *testing.T) {
	ref := Named("item", Params{"id": "1"}).WithQuery(Query{"a": "1"}).WithQuery(Query{"b": "2"})
	if ref.Query["a"] != "1" || ref.Query["b"] != "2" {
		t.Errorf("WithQuery merged %v", ref.Query)
	}
	if ref.String() != "@item" {
		t.Errorf("String() = %q, want %q", ref.String(), "@item")
	}
	if To("/x").String() != "/x" {
		t.Errorf("To(/x).String() = %q", To("/x").String())
	}
	if !(Ref{}).IsZero() {
		t.Error("empty Ref should be zero")
	}
}
