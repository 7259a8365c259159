package main

import (
	"fmt"
	"os"

	"nexus-service/pkg/config"
	"nexus-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nexus-service",
		Short: "Personal productivity and wellness API",
		Long: `nexus-service stores each user's tasks, study plans, saved resources,
wellness logs and pomodoro sessions, and serves a dashboard plus coaching nudges.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

// bootstrap loads configuration and initializes the global logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.GetLogger(), nil
}
