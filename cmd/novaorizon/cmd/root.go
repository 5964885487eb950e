package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/config"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/logging"
)

var (
	configFile string

	// Populated by PersistentPreRunE for every subcommand.
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "novaorizon",
	Short: "Novaorizon catalog service",
	Long: `Novaorizon serves the seller catalog: category attribute inheritance,
attribute group trees and rule-based product collections.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		loaded, err := config.LoadConfig(configFile, cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logging.New(loaded.Log.Level, loaded.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		cfg, logger = loaded, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("db-url", "", "database connection URL (sqlite://path, postgres://... or mongodb://...)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}
