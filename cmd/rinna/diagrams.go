package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heymumford/Rinna/internal/diagrams"
)

// NewDiagramsCmd creates the C4 diagram generation command.
func NewDiagramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagrams",
		Short: "Generate C4 model diagrams of the Rinna system",
		Long: `Diagrams renders the project's C4 model (context, container,
component, code, and clean-architecture views) with Graphviz.

Examples:
  rinna diagrams
  rinna diagrams --type context --output svg
  rinna diagrams --type container --dir ./docs/diagrams`,
		Args: cobra.NoArgs,
		RunE: runDiagramsCmd,
	}

	cmd.Flags().StringP("type", "t", "all",
		"Diagram to generate (context, container, component, code, clean, all)")
	cmd.Flags().StringP("output", "o", "",
		"Output format (png, svg, dot); defaults to the configured format")
	cmd.Flags().StringP("dir", "d", "",
		"Output directory; defaults to the configured directory")
	return cmd
}

func runDiagramsCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if format, _ := cmd.Flags().GetString("output"); format != "" {
		cfg.Diagrams.Format = format
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Diagrams.OutputDir = dir
	}

	generator := diagrams.NewGenerator(cfg.Diagrams, logger)

	kind, _ := cmd.Flags().GetString("type")
	if kind == "all" {
		paths := generator.GenerateAll(cmd.Context())
		if len(paths) == 0 {
			return fmt.Errorf("no diagrams were generated")
		}
		for _, path := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	}

	path, err := generator.Generate(cmd.Context(), diagrams.Kind(kind))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
