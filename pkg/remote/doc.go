// Package remote drives a real browser's address bar from a server-side
// Router over a WebSocket.
//
// The browser loads a small thin client that reports address changes
// (hello, hashchange, popstate) and link clicks (navigate) as JSON frames.
// For every socket the server keeps a Session that mirrors the client
// address, implements location.Window for the router and router.Host for
// rendering, and sends back hash, push, render, notfound and error frames.
//
// All work for one session happens on that session's event loop goroutine,
// so routers never see concurrent calls.
//
//	srv := remote.New(func(w location.Window) (*router.Router, error) {
//	    return router.NewFromConfig(cfg, w)
//	}, nil)
//
//	r := chi.NewRouter()
//	r.Use(middleware.Logger)
//	r.Mount("/", srv.Handler())
//	http.ListenAndServe(":8080", r)
package remote
