// Package server runs blackjack tables for websocket clients. Every
// connection gets its own session with a private game and shoe.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/table"
)

const shutdownTimeout = 5 * time.Second

// Server represents the WebSocket server
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *log.Logger
	clock    quartz.Clock
	settings TableSettings

	seed      int64
	seedSet   bool
	sessionNo int

	mu          sync.RWMutex
	connections map[string]*Connection
}

// Option configures a Server
type Option func(*Server)

// WithConfig applies the server and table sections of cfg
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		s.addr = cfg.Server.Address
		s.settings = TableSettings{
			StartingBalance: cfg.Table.StartingBalance,
			DefaultBet:      cfg.Table.DefaultBet,
			BetStep:         cfg.Table.BetStep,
		}
		if cfg.Seed != nil {
			s.seed, s.seedSet = *cfg.Seed, true
		}
	}
}

// WithClock sets the clock used to stamp messages
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithSeed makes session shoes reproducible. Session n plays from a stream
// derived from seed and n.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.seed, s.seedSet = seed, true
	}
}

// NewServer creates a new WebSocket server
func NewServer(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: ":8080",
		upgrader: websocket.Upgrader{
			// Any origin may play; sessions hold no credentials
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
		clock:  quartz.NewReal(),
		settings: TableSettings{
			StartingBalance: blackjack.DefaultBalance,
			DefaultBet:      blackjack.DefaultBet,
			BetStep:         table.DefaultBetStep,
		},
		connections: make(map[string]*Connection),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	s.router = r

	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe serves until ctx is cancelled, then closes every session
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is cancelled
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", l.Addr().String())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Stop closes all connections
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.connections {
		_ = conn.Close()
	}
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) newSession() *Session {
	s.mu.Lock()
	n := s.sessionNo
	s.sessionNo++
	s.mu.Unlock()

	seed, _ := randutil.Seed(nil)
	if s.seedSet {
		seed = randutil.Derive(s.seed, n)
	}

	return newSession(uuid.New().String(), seed, s.settings, s.logger)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	session := s.newSession()
	client := newConnection(conn, session, s)

	s.mu.Lock()
	s.connections[session.ID] = client
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", session.ID, "seed", session.Seed, "total", total)

	// Queue the opened table before the read pump can change it
	client.sendState("")
	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, session.ID)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", session.ID, "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// requestLogger logs each HTTP request at debug level
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
