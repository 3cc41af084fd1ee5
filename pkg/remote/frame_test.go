package remote

import (
	"testing"

	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/router"
)

type stubHost struct{}

func (stubHost) AddController(router.Lifecycle)    {}
func (stubHost) RemoveController(router.Lifecycle) {}
func (stubHost) RequestUpdate()                    {}

type label struct{ name string }

func (l label) String() string { return "label:" + l.name }

func TestRenderFrame(t *testing.T) {
	table := router.MustTable(
		router.Route{Name: "text", Path: "/text", Render: text("plain")},
		router.Route{Name: "html", Path: "/html", Render: func() router.View { return htmlView("<i>x</i>") }},
		router.Route{Path: "/stringer/:id", Render: func() router.View { return label{"s"} }},
		router.Route{Name: "number", Path: "/number", Render: func() router.View { return 42 }},
		router.Route{Name: "empty", Path: "/empty", Render: func() router.View { return nil }},
	)

	tests := []struct {
		href  string
		route string
		view  string
		html  string
	}{
		{"/#/text", "text", "plain", ""},
		{"/#/html", "html", "", "<i>x</i>"},
		{"/#/stringer/1", "/stringer/:id", "label:s", ""},
		{"/#/number", "number", "42", ""},
		{"/#/empty", "empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			r := router.New(table, location.NewFragment(location.NewMemory(tt.href)), router.WithLogger(quietLogger()))
			if err := r.Attach(stubHost{}); err != nil {
				t.Fatalf("Attach failed: %v", err)
			}

			f := renderFrame(r)
			if f.Type != FrameRender || f.Route != tt.route || f.View != tt.view || f.HTML != tt.html {
				t.Errorf("renderFrame = %+v, want route=%q view=%q html=%q", f, tt.route, tt.view, tt.html)
			}
		})
	}
}

func TestRenderFrame_NoRoute(t *testing.T) {
	table := router.MustTable(router.Route{Path: "/a", Render: text("a")})
	r := router.New(table, location.NewFragment(location.NewMemory("/#/b")), router.WithLogger(quietLogger()))
	_ = r.Attach(stubHost{})

	f := renderFrame(r)
	if f.Route != "" || f.Params != nil || f.View != "" {
		t.Errorf("renderFrame = %+v, want empty render", f)
	}
}

func TestFrame_String(t *testing.T) {
	tests := []struct {
		frame Frame
		want  string
	}{
		{Frame{Type: FrameHello, Href: "/#/a"}, "hello /#/a"},
		{Frame{Type: FrameNavigate, Path: "/b"}, "navigate /b"},
		{Frame{Type: FrameHash, Hash: "/c"}, "hash #/c"},
		{Frame{Type: FramePush, URL: "/app/d"}, "push /app/d"},
		{Frame{Type: FrameRender, Route: "item", Params: map[string]string{"b": "2", "a": "1"}}, "render item {a=1 b=2}"},
		{Frame{Type: FrameError, Code: "N002", Message: "loop"}, "error N002 loop"},
		{Frame{Type: FrameReady, Session: "x"}, "ready"},
	}

	for _, tt := range tests {
		if got := tt.frame.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
