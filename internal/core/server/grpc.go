// Package server provides gRPC and HTTP server lifecycle management.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/config"
)

// shutdownTimeout bounds graceful stops before a forced stop.
const shutdownTimeout = 30 * time.Second

// GRPCServer manages gRPC server lifecycle.
type GRPCServer struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	config   *config.ServerConfig
	logger   *zap.Logger
}

// NewGRPCServer creates gRPC server with timeout and observability
// interceptors, the catalog service and the standard health service.
func NewGRPCServer(cfg *config.ServerConfig, service api.CatalogServer, logger *zap.Logger) (*GRPCServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			api.ObservabilityInterceptor(logger),
			api.TimeoutInterceptor(cfg.RequestTimeout),
		),
	}

	server := grpc.NewServer(opts...)
	api.RegisterCatalogServer(server, service)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(api.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &GRPCServer{
		server: server,
		health: healthServer,
		config: cfg,
		logger: logger,
	}, nil
}

// Start binds listener and serves gRPC requests.
// Context is provided for API consistency but Serve blocks until Shutdown is called.
func (s *GRPCServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.GRPCPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return s.Serve(listener)
}

// Serve serves gRPC requests on an existing listener.
func (s *GRPCServer) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("grpc server listening", zap.String("addr", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Shutdown marks the service not serving and gracefully stops the server
// within shutdownTimeout.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("shutdown cancelled by context: %w", ctx.Err())
	case <-time.After(shutdownTimeout):
		s.server.Stop()
		return fmt.Errorf("graceful shutdown timeout, forced stop")
	}
}
