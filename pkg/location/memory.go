package location

// Memory is an in-process Window backed by a history stack. Events are
// dispatched synchronously on the calling goroutine. Memory is not safe for
// concurrent use.
type Memory struct {
	entries   []string
	index     int
	listeners map[Event][]*listener
}

type listener struct {
	fn func()
}

var _ Window = (*Memory)(nil)

// NewMemory returns a window whose only history entry is href.
// An empty href starts at "/".
func NewMemory(href string) *Memory {
	if href == "" {
		href = "/"
	}
	return &Memory{
		entries:   []string{href},
		listeners: make(map[Event][]*listener),
	}
}

// Href returns the current address.
func (m *Memory) Href() string {
	return m.entries[m.index]
}

// SetHash navigates to the current document with a new fragment. Nothing
// happens when the fragment is unchanged.
func (m *Memory) SetHash(fragment string) {
	before, current := SplitHref(m.Href())
	if current == fragment {
		return
	}
	m.push(before + "#" + fragment)
	m.dispatch(EventPopState)
	m.dispatch(EventHashChange)
}

// PushState adds an entry for url without raising events.
func (m *Memory) PushState(url string) {
	m.push(url)
}

// ReplaceState overwrites the current entry without raising events.
func (m *Memory) ReplaceState(url string) {
	m.entries[m.index] = url
}

// Edit simulates the user typing href into the address bar. A new entry is
// pushed and popstate fires, followed by hashchange when the fragment changed.
func (m *Memory) Edit(href string) {
	_, oldFrag := SplitHref(m.Href())
	m.push(href)
	m.dispatch(EventPopState)
	if _, newFrag := SplitHref(href); newFrag != oldFrag {
		m.dispatch(EventHashChange)
	}
}

// Sync replaces the current entry with href and raises popstate, plus
// hashchange when the fragment changed. It mirrors an address change that
// happened elsewhere and reports false when href is already current.
func (m *Memory) Sync(href string) bool {
	if href == "" {
		href = "/"
	}
	if href == m.Href() {
		return false
	}
	_, oldFrag := SplitHref(m.Href())
	m.entries[m.index] = href
	m.dispatch(EventPopState)
	if _, newFrag := SplitHref(href); newFrag != oldFrag {
		m.dispatch(EventHashChange)
	}
	return true
}

// Back moves one entry back. It reports false at the start of history.
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward moves one entry forward. It reports false at the end of history.
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Go moves delta entries through history and raises popstate, plus
// hashchange when the fragment differs. Out-of-range moves do nothing.
func (m *Memory) Go(delta int) bool {
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		return false
	}
	_, oldFrag := SplitHref(m.Href())
	m.index = target
	m.dispatch(EventPopState)
	if _, newFrag := SplitHref(m.Href()); newFrag != oldFrag {
		m.dispatch(EventHashChange)
	}
	return true
}

// History returns a copy of the entries and the current index.
func (m *Memory) History() ([]string, int) {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out, m.index
}

// Listeners returns how many listeners are registered for ev.
func (m *Memory) Listeners(ev Event) int {
	return len(m.listeners[ev])
}

// AddEventListener registers fn for ev.
func (m *Memory) AddEventListener(ev Event, fn func()) func() {
	l := &listener{fn: fn}
	m.listeners[ev] = append(m.listeners[ev], l)
	return func() {
		list := m.listeners[ev]
		for i, existing := range list {
			if existing == l {
				m.listeners[ev] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// push truncates forward history and appends href.
func (m *Memory) push(href string) {
	m.entries = append(m.entries[:m.index+1], href)
	m.index = len(m.entries) - 1
}

// dispatch calls the listeners registered for ev when dispatch started.
func (m *Memory) dispatch(ev Event) {
	list := append([]*listener(nil), m.listeners[ev]...)
	for _, l := range list {
		if m.registered(ev, l) {
			l.fn()
		}
	}
}

func (m *Memory) registered(ev Event, l *listener) bool {
	for _, existing := range m.listeners[ev] {
		if existing == l {
			return true
		}
	}
	return false
}
