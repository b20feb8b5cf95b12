package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heymumford/Rinna/internal/logbridge"
)

// NewLogsCmd creates the logs command group.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Work with the project's unified log stream",
	}

	cmd.AddCommand(newLogsForwardCmd())
	return cmd
}

func newLogsForwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward [file...]",
		Short: "Forward foreign log lines into the unified stream",
		Long: `Forward reads log lines produced by the project's other language
stacks and re-emits them through the shared structured logger, keeping
level, component, and key=value fields.

Without arguments it reads from stdin; "-" also selects stdin.

Examples:
  java -jar rinna-core.jar 2>&1 | rinna logs forward --source java
  rinna logs forward --source go ~/.rinna/logs/rinna-api.log`,
		Args: cobra.ArbitraryArgs,
		RunE: runLogsForwardCmd,
	}

	cmd.Flags().StringP("source", "s", "external",
		"Source tag attached to every forwarded entry")
	return cmd
}

func runLogsForwardCmd(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	bridge := logbridge.NewBridge(logger, source)

	paths := args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	total := 0
	for _, path := range paths {
		count, err := bridge.ForwardFile(cmd.Context(), path)
		total += count
		if err != nil {
			return fmt.Errorf("forwarding %s failed after %d lines: %w", path, total, err)
		}
	}

	logger.WithField("lines", total).Debug("Forwarding complete")
	return nil
}
