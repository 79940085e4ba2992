// Package server provides the HTTP server hosting the streaming gateway
// and the WebSocket session layer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/creastat/stream-gateway/pkg/config"
	"github.com/creastat/stream-gateway/pkg/gateway"
	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/session"
)

// Server owns the mux and the HTTP lifecycle.
type Server struct {
	cfg        config.Config
	gateway    *gateway.Gateway
	sessions   *session.Manager
	httpServer *http.Server
	log        logger.Logger
	mu         sync.Mutex
	running    bool
}

// New creates a server over the given handlers.
func New(cfg config.Config, gw *gateway.Gateway, sessions *session.Manager, log logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		gateway:  gw,
		sessions: sessions,
		log:      log,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /chat/completions", s.gateway)
	mux.HandleFunc("GET /ws/ai/{session_id}", s.sessions.HandleSession)
	mux.HandleFunc("GET /ws/health", s.sessions.HandleHealth)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start runs the server until ctx is canceled, then drains gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.running = true

	// WriteTimeout stays zero: SSE responses are long-lived streams and
	// must not be cut off by a server-side write deadline.
	s.httpServer = &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "address", s.cfg.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
