package location

// Fragment is the hash-mode adapter. The route lives after '#'.
type Fragment struct {
	win Window
	sub subscription
}

// NewFragment returns a hash-mode adapter over w.
func NewFragment(w Window) *Fragment {
	return &Fragment{win: w}
}

// Read returns the fragment, or "/" when there is none.
func (f *Fragment) Read() string {
	_, frag := SplitHref(f.win.Href())
	if frag == "" {
		return "/"
	}
	return frag
}

// Write sets the fragment. The window's hashchange event drives the
// notification, so writing the current value notifies nobody.
func (f *Fragment) Write(path string) {
	f.win.SetHash(path)
}

// Subscribe registers fn for hashchange events.
func (f *Fragment) Subscribe(fn func()) func() {
	return f.sub.replace(fn, func(fn func()) func() {
		return f.win.AddEventListener(EventHashChange, fn)
	})
}
