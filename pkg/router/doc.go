// Package router implements client-side navigation for single-page views.
//
// The router provides:
//   - An ordered, immutable route table with named routes
//   - Segment matching with ":param" bindings and query parsing
//   - Redirect routes with bounded redirect chains
//   - A controller bound to a host's lifecycle that keeps the host's view
//     in sync with the browser address
//
// # Route Table
//
// Routes are matched in table order and the first structural match wins;
// a later, more specific route never overrides an earlier one:
//
//	table := router.MustTable(
//	    router.Route{Path: "/", Redirect: func() router.Ref { return router.To("/home") }},
//	    router.Route{Name: "home", Path: "/home", Render: homeView},
//	    router.Route{Name: "item", Path: "/items/:id", Render: itemView},
//	)
//
//	m, ok := table.Match("/items/42?tab=notes")
//	// m.Params["id"] == "42", m.Query["tab"] == "notes"
//
// # Controller
//
// A Router reads and writes the address through a location.Adapter and
// notifies its Host when the current route changes:
//
//	r := router.New(table, location.NewFragment(win))
//	if err := r.Attach(host); err != nil {
//	    // the initial address redirected into a loop, etc.
//	}
//	...
//	view := r.Outlet()      // called by the host while rendering
//
//	err := r.Navigate(router.Named("item", router.Params{"id": "7"}))
//
// An address that matches nothing is not an error: the previous route stays
// current and NotFound reports true until something resolves.
package router
