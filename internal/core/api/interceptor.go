package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	grpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novaorizon_grpc_requests_total",
		Help: "gRPC requests by method and status code",
	}, []string{"method", "code"})

	grpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "novaorizon_grpc_request_duration_seconds",
		Help:    "gRPC request latency by method",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// TimeoutInterceptor bounds each request by timeout unless the caller's
// deadline is already sooner.
func TimeoutInterceptor(timeout time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if timeout <= 0 {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return handler(ctx, req)
	}
}

// ObservabilityInterceptor logs every request and records its outcome and
// latency in prometheus.
func ObservabilityInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		grpcRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
		grpcDuration.WithLabelValues(info.FullMethod).Observe(elapsed.Seconds())

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", elapsed),
		}
		if err != nil {
			logger.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("grpc request", fields...)
		}
		return resp, err
	}
}
