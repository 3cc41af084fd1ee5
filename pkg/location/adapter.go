package location

// Adapter reads and writes the route path of a Window and reports changes.
type Adapter interface {
	// Read returns the current route path, "/" at minimum.
	Read() string

	// Write navigates to path.
	Write(path string)

	// Subscribe registers fn to be called after every address change and
	// returns a function that unregisters it. An adapter holds at most one
	// subscription; subscribing again replaces the previous one.
	Subscribe(fn func()) (unsubscribe func())
}

// subscription tracks the single listener an adapter may hold.
type subscription struct {
	fn     func()
	remove func()
	gen    int
}

// replace installs fn, removing any previous registration. register is
// called to attach fn to the window and returns its remover.
func (s *subscription) replace(fn func(), register func(func()) func()) func() {
	s.clear()
	s.gen++
	gen := s.gen
	s.fn = fn
	s.remove = register(fn)
	return func() {
		if s.gen == gen {
			s.clear()
		}
	}
}

func (s *subscription) clear() {
	if s.remove != nil {
		s.remove()
	}
	s.fn = nil
	s.remove = nil
}

func (s *subscription) notify() {
	if s.fn != nil {
		s.fn()
	}
}
