package remote

import (
	"fmt"
	"sort"

	"github.com/vango-dev/navkit/pkg/router"
)

// FrameType identifies a JSON frame exchanged with the thin client.
type FrameType string

// Client to server.
const (
	// FrameHello is the first frame of a connection and carries the
	// client's initial address.
	FrameHello FrameType = "hello"

	// FrameHashChange reports a hashchange event with the new address.
	FrameHashChange FrameType = "hashchange"

	// FramePopState reports a popstate event with the new address.
	FramePopState FrameType = "popstate"

	// FrameNavigate asks the router to navigate to Path (a link click).
	FrameNavigate FrameType = "navigate"
)

// Server to client.
const (
	// FrameReady acknowledges hello with the session ID.
	FrameReady FrameType = "ready"

	// FrameHash sets the client's fragment.
	FrameHash FrameType = "hash"

	// FramePush pushes a history entry on the client.
	FramePush FrameType = "push"

	// FrameRender carries the current route and its rendered view.
	FrameRender FrameType = "render"

	// FrameNotFound reports an address that matched no route.
	FrameNotFound FrameType = "notfound"

	// FrameError reports an aborted resolution or a rejected frame.
	FrameError FrameType = "error"
)

// Frame is the JSON envelope of every message. Only the fields relevant to
// Type are set.
type Frame struct {
	Type FrameType `json:"type"`

	// Href is the full client address (path, query and fragment) for
	// hello, hashchange and popstate.
	Href string `json:"href,omitempty"`

	// Path is the navigation target of navigate and the unmatched address
	// of notfound.
	Path string `json:"path,omitempty"`

	// Hash is the fragment for hash frames, without '#'.
	Hash string `json:"hash,omitempty"`

	// URL is the history entry for push frames.
	URL string `json:"url,omitempty"`

	// Session is the session ID sent with ready.
	Session string `json:"session,omitempty"`

	// Route, Params, Query and View describe the current route in render
	// frames. HTML is set instead of View when the view renders markup.
	Route  string            `json:"route,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
	View   string            `json:"view,omitempty"`
	HTML   string            `json:"html,omitempty"`

	// Code and Message describe error frames.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// HTMLer is implemented by views that render trusted markup.
type HTMLer interface {
	HTML() string
}

// renderFrame describes the router's current route.
func renderFrame(r *router.Router) Frame {
	f := Frame{Type: FrameRender}
	route := r.Route()
	if route == nil {
		return f
	}
	f.Route = route.Name
	if f.Route == "" {
		f.Route = route.Path
	}
	f.Params = r.Params()
	f.Query = r.Query()

	switch v := r.Outlet().(type) {
	case nil:
	case HTMLer:
		f.HTML = v.HTML()
	case string:
		f.View = v
	case fmt.Stringer:
		f.View = v.String()
	default:
		f.View = fmt.Sprint(v)
	}
	return f
}

// String returns a compact description of the frame for logs.
func (f Frame) String() string {
	switch f.Type {
	case FrameHello, FrameHashChange, FramePopState:
		return fmt.Sprintf("%s %s", f.Type, f.Href)
	case FrameNavigate, FrameNotFound:
		return fmt.Sprintf("%s %s", f.Type, f.Path)
	case FrameHash:
		return fmt.Sprintf("hash #%s", f.Hash)
	case FramePush:
		return fmt.Sprintf("push %s", f.URL)
	case FrameRender:
		return fmt.Sprintf("render %s %s", f.Route, formatMap(f.Params))
	case FrameError:
		return fmt.Sprintf("error %s %s", f.Code, f.Message)
	default:
		return string(f.Type)
	}
}

func formatMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := "{"
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += k + "=" + m[k]
	}
	return s + "}"
}
