// Package location reads and writes the navigable browser address.
//
// A Window is the browser navigation surface: the current address, the
// fragment, the history stack and the two change events browsers raise
// (hashchange and popstate). An Adapter narrows a Window to the three
// operations a router needs:
//
//	Read() string                       // current route path
//	Write(path string)                  // navigate
//	Subscribe(fn func()) (unsubscribe)  // change notifications
//
// Two adapters are provided. Fragment keeps the route after '#' and is
// notified by hashchange. History keeps the route in the path, strips an
// optional base prefix, and is notified by popstate; because pushState
// raises no event, History.Write notifies its subscriber itself.
//
// Memory is an in-process Window with a real history stack, used by tests,
// the terminal browser and anything else that has no browser at hand:
//
//	w := location.NewMemory("/")
//	a := location.NewFragment(w)
//	stop := a.Subscribe(func() { fmt.Println("now at", a.Read()) })
//	defer stop()
//	a.Write("/items/42")   // prints "now at /items/42"
//	w.Back()               // prints "now at /"
package location
