// Package api exposes the chat pipeline over HTTP REST.
//
// Endpoints:
//
//	GET  /health     → provider availability snapshot
//	GET  /knowledge  → knowledge base statistics
//	POST /chat       → one chat turn
//	POST /upload     → document ingestion
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: recovery, request logging, CORS, rate limiting
//   - health.go, knowledge.go, chat.go, upload.go: endpoint handlers
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jarvis0/jarvis/internal/app"
	"github.com/jarvis0/jarvis/internal/log"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "0.0.0.0:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation against a cold local model can be slow.
	WriteTimeout = 300 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the chat backend.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	corsOrigins []string

	health    *HealthHandler
	knowledge *KnowledgeHandler
	chat      *ChatHandler
	upload    *UploadHandler
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(a *app.App, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	mux := http.NewServeMux()

	s := &Server{
		mux:         mux,
		logger:      logger,
		corsOrigins: a.Config.CORSOrigins,
		health:      NewHealthHandler(a.Status, logger),
		knowledge:   NewKnowledgeHandler(a.Store, a.Status, logger),
		chat:        NewChatHandler(a.Chat, logger),
		upload:      NewUploadHandler(a.Ingestor, logger),
	}

	s.health.RegisterRoutes(mux)
	s.knowledge.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.upload.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → CORS → rate limit → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
		corsMiddleware(s.corsOrigins),
		rateLimitMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
