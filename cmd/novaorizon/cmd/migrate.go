package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/store/mongostore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations (or create indexes on MongoDB)",
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Database.IsDocumentStore() {
		store, err := mongostore.Connect(ctx, cfg.Database.URL, cfg.Database.Name, logger)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())
		if err := store.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to ensure indexes: %w", err)
		}
		logger.Info("indexes ensured", zap.String("database", cfg.Database.Name))
		return nil
	}

	database, err := db.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if cfg.Database.IsDocumentStore() {
		return fmt.Errorf("migrate status is not available for mongodb; run 'migrate up' to ensure indexes")
	}

	database, err := db.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	statuses, err := db.MigrateStatus(database)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tAPPLIED AT\tDURATION")
	for _, s := range statuses {
		status, appliedAt, duration := "pending", "-", "-"
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			duration = fmt.Sprintf("%dms", s.ExecutionMs)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, status, appliedAt, duration)
	}
	return w.Flush()
}
