package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabcast/tabcast/pkg/converter"
	"github.com/tabcast/tabcast/pkg/writer"
)

type PreviewArgs struct {
	*RootArgs

	SpreadsheetPath string
	RulesPath       string
}

func NewPreviewArgs(rootArgs *RootArgs) *PreviewArgs {
	return &PreviewArgs{
		RootArgs: rootArgs,
	}
}

func (pa *PreviewArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&pa.RulesPath, "rules", "r", "conversion_rules.json",
		"Path to the conversion rules file; absent files fall back to built-in defaults")

	err := cmd.MarkFlagFilename("rules", "json", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark rules flag: %w", err))
	}
}

// NewPreviewCmd creates the preview command: load and transform without
// writing, printing the document to stdout.
func NewPreviewCmd(pa *PreviewArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <spreadsheet>",
		Short: "Print the transformed document without writing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pa.SpreadsheetPath = args[0]

			return runPreview(cmd, pa)
		},
	}
	pa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runPreview(cmd *cobra.Command, pa *PreviewArgs) error {
	c := converter.New(pa.SpreadsheetPath, pa.RulesPath)

	doc, err := c.Preview()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	b, err := writer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	mustN(fmt.Fprint(cmd.OutOrStdout(), string(b)))

	return nil
}
