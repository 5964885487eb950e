package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/httpapi"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/server"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/rules"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC catalog service and the HTTP admin API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "listen host")
	serveCmd.Flags().Int("grpc-port", 50051, "gRPC server port")
	serveCmd.Flags().Int("http-port", 8080, "HTTP admin API port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openBackend(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	catalogSvc := catalog.NewService(store, logger)
	collectionSvc := collection.NewService(store, store, rules.NewEngine(logger), logger,
		collection.Options{ItemLimit: cfg.Collections.ItemLimit})

	service, err := api.NewCatalogService(catalogSvc, collectionSvc, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	grpcServer, err := server.NewGRPCServer(&cfg.Server, service, logger)
	if err != nil {
		return fmt.Errorf("failed to create grpc server: %w", err)
	}
	router := httpapi.NewRouter(httpapi.NewHandler(catalogSvc, collectionSvc, logger))
	httpServer, err := server.NewHTTPServer(&cfg.Server, router, logger)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	logger.Info("starting novaorizon",
		zap.String("version", Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("grpc_port", cfg.Server.GRPCPort),
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.Bool("document_store", cfg.Database.IsDocumentStore()),
	)

	errChan := make(chan error, 2)
	go func() { errChan <- grpcServer.Start(ctx) }()
	go func() { errChan <- httpServer.Start(ctx) }()

	var serveErr error
	select {
	case serveErr = <-errChan:
		logger.Error("server stopped", zap.Error(serveErr))
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
	}

	shutdownErr := errors.Join(
		httpServer.Shutdown(context.Background()),
		grpcServer.Shutdown(context.Background()),
	)
	return errors.Join(serveErr, shutdownErr)
}
