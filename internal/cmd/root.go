// Package cmd defines the command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/config"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"github.com/Sadisms/stack-radar/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "stackradar",
	Short:         "Stack Radar backend",
	Long:          "Stack Radar, the technology adoption tracker: API server, migrations and user management.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads settings, builds the logger and opens the database pool.
// Callers own the returned resources.
func bootstrap() (*config.Settings, *zap.Logger, *database.DB, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load settings: %w", err)
	}

	logCfg := logger.Config{Level: "info", Format: "console", Output: "stdout"}
	if settings.App.Debug {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	log, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := database.New(&settings.Database, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	return settings, log, db, nil
}
