// Package mockapi is a self-contained stand-in for the process-events API
// and the directory API, so the hunt pipeline can run end to end without
// network access or credentials.
package mockapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/config"
)

// Server wraps the mock API HTTP server.
type Server struct {
	httpServer *http.Server
	store      *EventStore
	logger     *zap.Logger
}

// NewServer seeds the dataset and wires the handlers onto an http.Server.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	store := NewEventStore(cfg.Mock.EventCount)

	events := NewEventsHandler(store, cfg.Mock, logger)
	users := NewUsersHandler(logger)
	health := NewHealthHandler(store, logger)

	httpServer := &http.Server{
		Addr:              cfg.Mock.Addr,
		Handler:           NewRouter(events, users, health),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		store:      store,
		logger:     logger,
	}
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("mock api listening",
		zap.String("addr", s.httpServer.Addr),
		zap.Int("events", s.store.Len()))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("mock api shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
