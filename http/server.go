// Package http serves predictions over REST and WebSocket.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"namevibe/ml"
)

// Server exposes a loaded predictor over HTTP.
type Server struct {
	server    *http.Server
	predictor *ml.Predictor
	logger    *zap.Logger
	config    ServerConfig
}

// ServerConfig is the serve-mode configuration.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
}

// DefaultServerConfig returns the default serve-mode configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8080,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer wires the handlers and the middleware chain.
func NewServer(config ServerConfig, predictor *ml.Predictor, logger *zap.Logger) *Server {
	s := &Server{predictor: predictor, logger: logger, config: config}

	rest := http.NewServeMux()
	rest.HandleFunc("GET /api/health", s.handleHealth)
	rest.HandleFunc("GET /api/predict", s.handlePredict)
	rest.HandleFunc("GET /api/models", s.handleModels)

	// The websocket route bypasses the timeout middleware: live connections
	// are long-lived.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ws/predict", s.handleLivePredict)
	mux.Handle("/", TimeoutMiddleware(config.Timeout)(rest))

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
	)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           chain(mux),
		ReadHeaderTimeout: config.Timeout,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Start runs the server until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return s.server.Addr
}
