package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heymumford/Rinna/internal/config"
)

// NewConfigCmd creates the config inspection command.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key]",
		Short: "Inspect the merged configuration",
		Long: `Config prints the effective configuration after merging
environment variables (RINNA_ prefix), the YAML config file, and the
coded defaults, in that priority order.

With a dotted key argument, only that value is printed.

Examples:
  rinna config
  rinna config reports.default_engine
  rinna config database.driver`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}

	if len(args) == 1 {
		key := args[0]
		if !config.IsSet(key) {
			return fmt.Errorf("unknown configuration key: %s", key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", config.Get(key))
		return nil
	}

	raw, err := yaml.Marshal(config.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(raw))
	return nil
}
