package remote

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/router"
)

// ErrSessionClosed is returned when work is queued on a closed session.
var ErrSessionClosed = stderrors.New("remote: session closed")

// Session is one connected browser tab.
//
// It mirrors the client address in a location.Memory and is both the
// router's Window and its Host: address writes made by the router become
// hash and push frames, and renders become render frames. Every method
// other than Close, Dispatch, Done and Stats runs on the session's event
// loop.
type Session struct {
	ID string

	conn   *websocket.Conn
	server *Server
	logger *slog.Logger

	mem         *location.Memory
	router      *router.Router
	controllers []router.Lifecycle

	frames     chan Frame
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	writeMu    sync.Mutex

	// dirty is set by RequestUpdate and cleared when the render frame goes
	// out. notFound and missed are what the client was last told.
	dirty    bool
	notFound bool
	missed   string

	framesIn  atomic.Int64
	framesOut atomic.Int64
	Started   time.Time
}

var (
	_ location.Window      = (*Session)(nil)
	_ router.Host          = (*Session)(nil)
	_ router.ErrorReporter = (*Session)(nil)
)

func newSession(id string, conn *websocket.Conn, srv *Server, href string) *Session {
	return &Session{
		ID:         id,
		conn:       conn,
		server:     srv,
		logger:     srv.logger.With("session", id),
		mem:        location.NewMemory(href),
		frames:     make(chan Frame, srv.config.QueueSize),
		dispatchCh: make(chan func(), srv.config.QueueSize),
		done:       make(chan struct{}),
		Started:    time.Now(),
	}
}

// Router returns the session's router.
func (s *Session) Router() *router.Router { return s.router }

// Href implements location.Window.
func (s *Session) Href() string {
	return s.mem.Href()
}

// SetHash implements location.Window. The client is told first so frames
// stay in order when the mirror's events trigger further writes.
func (s *Session) SetHash(fragment string) {
	if _, current := location.SplitHref(s.mem.Href()); current == fragment {
		return
	}
	s.send(Frame{Type: FrameHash, Hash: fragment})
	s.mem.SetHash(fragment)
}

// PushState implements location.Window.
func (s *Session) PushState(url string) {
	s.send(Frame{Type: FramePush, URL: url})
	s.mem.PushState(url)
}

// AddEventListener implements location.Window.
func (s *Session) AddEventListener(ev location.Event, fn func()) func() {
	return s.mem.AddEventListener(ev, fn)
}

// AddController implements router.Host.
func (s *Session) AddController(c router.Lifecycle) {
	s.controllers = append(s.controllers, c)
	c.HostConnected()
}

// RemoveController implements router.Host.
func (s *Session) RemoveController(c router.Lifecycle) {
	for i, existing := range s.controllers {
		if existing == c {
			s.controllers = append(s.controllers[:i], s.controllers[i+1:]...)
			return
		}
	}
}

// RequestUpdate implements router.Host. The render frame is sent once the
// current frame has been handled.
func (s *Session) RequestUpdate() {
	s.dirty = true
}

// ReportError implements router.ErrorReporter.
func (s *Session) ReportError(err error) {
	s.sendError(err)
}

// Dispatch queues fn to run on the session's event loop. It is safe to call
// from any goroutine.
func (s *Session) Dispatch(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.dispatchCh <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()
	s.conn.Close()
}

// SessionStats is a snapshot of session counters.
type SessionStats struct {
	ID        string
	FramesIn  int64
	FramesOut int64
	Uptime    time.Duration
}

// Stats returns the session counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:        s.ID,
		FramesIn:  s.framesIn.Load(),
		FramesOut: s.framesOut.Load(),
		Uptime:    time.Since(s.Started),
	}
}

// start attaches the router and sends the initial frames. It runs before
// the event loop, so nothing else touches the session yet.
func (s *Session) start(r *router.Router) {
	s.router = r
	s.send(Frame{Type: FrameReady, Session: s.ID})
	s.safeExecute("attach", func() {
		if err := r.Attach(s); err != nil {
			s.logger.Warn("initial resolution failed", "href", s.mem.Href(), "error", err)
		}
	})
	s.safeExecute("render", s.flush)
}

// readLoop decodes client frames into the event loop until the connection
// fails or the session closes.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "error", err)
				s.server.metrics.WebSocketError("read")
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(msg, &f); err != nil {
			s.server.metrics.WebSocketError("decode")
			s.sendError(errors.New("N041").Wrap(err))
			continue
		}
		s.framesIn.Add(1)

		select {
		case s.frames <- f:
		case <-s.done:
			return
		}
	}
}

// run is the event loop. It returns when the session closes and then
// disconnects the router from the session.
func (s *Session) run() {
	defer s.shutdown()

	for {
		select {
		case f := <-s.frames:
			s.safeExecute("frame "+string(f.Type), func() { s.handle(f) })
			s.safeExecute("render", s.flush)
		case fn := <-s.dispatchCh:
			s.safeExecute("dispatch", fn)
			s.safeExecute("render", s.flush)
		case <-s.done:
			return
		}
	}
}

// handle applies one client frame.
func (s *Session) handle(f Frame) {
	s.logger.Debug("frame received", "frame", f.String())

	switch f.Type {
	case FrameHashChange, FramePopState:
		s.mem.Sync(f.Href)

	case FrameNavigate:
		err := s.router.Navigate(router.To(f.Path))
		// Aborted chains were already reported through ReportError.
		if err != nil && err != s.router.Err() {
			s.sendError(err)
		}

	default:
		s.sendError(errors.New("N041").Wrap(fmt.Errorf("unexpected %q frame", f.Type)))
	}
}

// safeExecute runs fn and recovers from panics in views, redirects and
// dispatched callbacks so one bad route does not take the session down.
// The client gets an internal error frame.
func (s *Session) safeExecute(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic recovered", "in", what, "panic", r)
			s.sendError(fmt.Errorf("%s panicked: %v", what, r))
		}
	}()
	fn()
}

// flush sends the render and not-found frames owed after a unit of work.
func (s *Session) flush() {
	if s.dirty {
		s.dirty = false
		s.send(renderFrame(s.router))
	}

	notFound := s.router.NotFound()
	missed := s.router.MissedPath()
	if notFound && (!s.notFound || missed != s.missed) {
		s.send(Frame{Type: FrameNotFound, Path: missed})
	}
	s.notFound, s.missed = notFound, missed
}

func (s *Session) shutdown() {
	s.Close()

	controllers := append([]router.Lifecycle(nil), s.controllers...)
	for _, c := range controllers {
		c.HostDisconnected()
	}
	s.controllers = nil

	s.server.unregister(s)
	s.server.metrics.SessionClosed()
	s.logger.Info("session closed",
		"frames_in", s.framesIn.Load(),
		"frames_out", s.framesOut.Load(),
		"uptime", time.Since(s.Started).Round(time.Millisecond))
}

func (s *Session) sendError(err error) {
	ne := errors.FromRouter(err)
	s.send(Frame{Type: FrameError, Code: ne.Code, Message: ne.Error()})
}

// send writes f to the client. Write failures close the session.
func (s *Session) send(f Frame) {
	if s.closed.Load() {
		return
	}
	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	err := s.conn.WriteJSON(f)
	s.writeMu.Unlock()

	if err != nil {
		s.logger.Warn("websocket write failed", "frame", f.String(), "error", err)
		s.server.metrics.WebSocketError("write")
		s.Close()
		return
	}
	s.framesOut.Add(1)
}
