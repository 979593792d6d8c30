// Package server hosts Loom applications over websockets. Each
// connection gets its own document and app; the document's operation
// stream is mirrored to the browser as binary frames, and browser
// events come back the same way.
package server

import (
	"context"
	_ "embed"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loomui/loom"
	"github.com/loomui/loom/internal/errors"
)

//go:embed client.js
var clientJS []byte

// AppFactory builds a fresh App for a new session. Apps are
// single-session; sharing one App across connections is a bug.
type AppFactory func() *loom.App

// Server accepts websocket sessions and runs one app per connection.
type Server struct {
	config   Config
	factory  AppFactory
	router   chi.Router
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a Server. factory is called once per accepted session.
func New(config Config, factory AppFactory) *Server {
	s := &Server{
		config:   config.withDefaults(),
		factory:  factory,
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/loom/client.js", s.handleClientJS)
	r.Get("/loom/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
	s.router = r

	return s
}

// Router exposes the HTTP handler, for embedding in a larger mux or
// for httptest.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.config.Logger.Info("listening", "addr", s.config.Addr)

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(bootstrapPage))
}

func (s *Server) handleClientJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(clientJS)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		s.mu.Unlock()
		s.config.Logger.Warn("session limit reached",
			"code", errors.CodeSessionLimit,
			"limit", s.config.MaxSessions)
		http.Error(w, "session limit reached", http.StatusServiceUnavailable)
		return
	}
	s.mu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.config.Logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.factory(), s.config)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.onClose = func() {
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
	}

	sess.Run()
}

// bootstrapPage is the minimal shell the thin client hydrates into.
const bootstrapPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Loom</title>
</head>
<body>
<script src="/loom/client.js"></script>
</body>
</html>
`
