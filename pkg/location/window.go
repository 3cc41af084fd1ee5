package location

import "strings"

// Event identifies a browser navigation event.
type Event int

const (
	// EventHashChange fires when the address fragment changes.
	EventHashChange Event = iota

	// EventPopState fires when the user moves through the history stack
	// or edits the address.
	EventPopState
)

// String returns the DOM event name.
func (e Event) String() string {
	switch e {
	case EventHashChange:
		return "hashchange"
	case EventPopState:
		return "popstate"
	default:
		return "unknown"
	}
}

// Window is the browser navigation surface.
type Window interface {
	// Href returns the current address from the path onward:
	// path[?query][#fragment]. It never includes scheme or host.
	Href() string

	// SetHash sets the fragment (without '#'). Browsers raise hashchange
	// when the value actually changes.
	SetHash(fragment string)

	// PushState pushes a new history entry for url (path[?query]).
	// No event is raised.
	PushState(url string)

	// AddEventListener registers fn for ev and returns a function that
	// removes it.
	AddEventListener(ev Event, fn func()) (remove func())
}

// SplitHref splits an address into the part before '#' and the fragment.
func SplitHref(href string) (beforeHash, fragment string) {
	beforeHash, fragment, _ = strings.Cut(href, "#")
	return beforeHash, fragment
}
