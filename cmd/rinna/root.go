// Package main provides the entry point for the rinna CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heymumford/Rinna/internal/config"
	"github.com/heymumford/Rinna/internal/logging"
)

// NewRootCmd creates the root command for the rinna CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rinna",
		Short: "Auxiliary tooling for the Rinna project",
		Long: `The rinna CLI bundles the project's supporting utilities:
cross-language log forwarding, Swagger YAML/JSON synchronization,
C4 diagram generation, and configuration inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewLogsCmd())
	cmd.AddCommand(NewDiagramsCmd())
	cmd.AddCommand(NewSwaggerCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the shared logger. The
// --verbose flag overrides the configured level with debug.
func setup(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, logging.New(cfg.Logging), nil
}
