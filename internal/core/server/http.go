package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/config"
)

// HTTPServer manages the admin HTTP listener.
type HTTPServer struct {
	server *http.Server
	logger *zap.Logger
}

// NewHTTPServer wraps handler in an http.Server bound to the configured
// host and HTTP port.
func NewHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *zap.Logger) (*HTTPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout + cfg.RequestTimeout/2,
		},
		logger: logger,
	}, nil
}

// Start binds the listener and serves until Shutdown. A clean shutdown
// returns nil.
func (s *HTTPServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.server.Addr, err)
	}
	s.logger.Info("http server listening", zap.String("addr", listener.Addr().String()))
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, bounded by ctx and shutdownTimeout.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
