package remote

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/navkit/internal/errors"
	"github.com/vango-dev/navkit/pkg/location"
	"github.com/vango-dev/navkit/pkg/router"
)

// Paths served by Handler.
const (
	WebSocketPath = "/_navkit/ws"
	ClientPath    = "/_navkit/client.js"
	HealthPath    = "/healthz"
)

//go:embed client.js
var clientJS []byte

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// RouterFactory builds the router for a new session. w is the session's
// mirror of the client address; the router must read and write through it.
type RouterFactory func(w location.Window) (*router.Router, error)

// Metrics receives session and transport counters. *telemetry.Metrics
// implements it.
type Metrics interface {
	SessionOpened()
	SessionClosed()
	WebSocketError(kind string)
}

type nopMetrics struct{}

func (nopMetrics) SessionOpened()        {}
func (nopMetrics) SessionClosed()        {}
func (nopMetrics) WebSocketError(string) {}

// Config configures a Server.
type Config struct {
	// Title is the page title of the served shell.
	Title string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the Origin header. Nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool

	// HandshakeTimeout bounds the wait for the hello frame.
	HandshakeTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// MaxMessageSize limits inbound frames.
	MaxMessageSize int64

	// QueueSize is the per-session buffer of frames and dispatched
	// callbacks.
	QueueSize int

	// Metrics receives session counters. Nil disables them.
	Metrics Metrics

	// Logger is the structured logger. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:            "navkit",
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		MaxMessageSize:   64 * 1024,
		QueueSize:        64,
	}
}

// Server accepts browser connections and runs one router per session.
type Server struct {
	factory  RouterFactory
	config   *Config
	upgrader websocket.Upgrader
	metrics  Metrics
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	wg       sync.WaitGroup
}

// New creates a server that builds routers with factory. A nil cfg uses
// DefaultConfig; zero fields of a non-nil cfg take their defaults.
func New(factory RouterFactory, cfg *Config) *Server {
	config := DefaultConfig()
	if cfg != nil {
		merged := *cfg
		applyDefaults(&merged, config)
		config = &merged
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var metrics Metrics = nopMetrics{}
	if config.Metrics != nil {
		metrics = config.Metrics
	}

	return &Server{
		factory: factory,
		config:  config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics:  metrics,
		logger:   logger.With("component", "remote"),
		sessions: make(map[string]*Session),
	}
}

func applyDefaults(c, d *Config) {
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
}

// Handler returns the HTTP handler: the WebSocket endpoint, the thin client
// script, a health check, and the page shell for every other GET so that
// history-mode deep links load.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(WebSocketPath, s.ServeWS)
	r.Get(ClientPath, s.serveClient)
	r.Get(HealthPath, s.serveHealth)
	r.Get("/*", s.servePage)
	return r
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	err := pageTemplate.Execute(w, map[string]string{
		"Title":  s.config.Title,
		"Client": ClientPath,
		"Socket": WebSocketPath,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) serveClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(clientJS)
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Len(),
	})
}

// ServeWS upgrades the request, waits for the client's hello frame and runs
// the session until the connection closes.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.WebSocketError("upgrade")
		return
	}

	conn.SetReadLimit(s.config.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(s.config.HandshakeTimeout))

	hello, err := readHello(conn)
	if err != nil {
		s.logger.Warn("handshake failed", "remote", r.RemoteAddr, "error", err)
		s.metrics.WebSocketError("handshake")
		rejectConn(conn, errors.New("N041").Wrap(err))
		return
	}
	conn.SetReadDeadline(time.Time{})

	session := newSession(uuid.NewString(), conn, s, hello.Href)
	rt, err := s.factory(session)
	if err != nil {
		s.logger.Error("router construction failed", "error", err)
		rejectConn(conn, errors.FromRouter(err))
		return
	}

	s.register(session)
	s.metrics.SessionOpened()
	session.logger.Info("session opened", "href", hello.Href, "remote", r.RemoteAddr)

	session.start(rt)
	go session.readLoop()
	session.run()
}

func readHello(conn *websocket.Conn) (Frame, error) {
	var hello Frame
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return hello, err
	}
	if err := json.Unmarshal(msg, &hello); err != nil {
		return hello, err
	}
	if hello.Type != FrameHello {
		return hello, errors.Newf(errors.CategoryRemote, "expected hello frame, got %q", hello.Type)
	}
	return hello, nil
}

// rejectConn sends a final error frame and closes conn.
func rejectConn(conn *websocket.Conn, ne *errors.NavError) {
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	conn.WriteJSON(Frame{Type: FrameError, Code: ne.Code, Message: ne.Error()})
	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ne.Message),
		time.Now().Add(time.Second),
	)
	conn.Close()
}

func (s *Server) register(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.wg.Add(1)
	s.mu.Unlock()
}

func (s *Server) unregister(session *Session) {
	s.mu.Lock()
	if _, ok := s.sessions[session.ID]; ok {
		delete(s.sessions, session.ID)
		s.wg.Done()
	}
	s.mu.Unlock()
}

// Session returns the live session with id, or nil.
func (s *Server) Session(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Len returns the number of live sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown closes every session and waits for their event loops to finish
// or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	live := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		live = append(live, session)
	}
	s.mu.RUnlock()

	for _, session := range live {
		session.Close()
	}

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		s.logger.Info("remote shutdown complete", "sessions", len(live))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
