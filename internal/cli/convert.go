package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabcast/tabcast/pkg/converter"
	"github.com/tabcast/tabcast/pkg/rules"
)

const cmdExamples = `  # Convert a spreadsheet, with rules from conversion_rules.json if present:
  tabcast input_data.xlsx

  # Convert with an explicit rules file and output path:
  tabcast input_data.csv --rules my_rules.json -o output.json

  # Re-run the conversion whenever the spreadsheet or rules change:
  tabcast input_data.xlsx --watch

  # Write the built-in default rules file for editing:
  tabcast --write-rules

  # Inspect the transformed document without writing it:
  tabcast preview input_data.xlsx`

// ErrMissingSpreadsheet is returned when no spreadsheet path is supplied.
var ErrMissingSpreadsheet = errors.New("missing spreadsheet path")

type ConvertArgs struct {
	*RootArgs

	SpreadsheetPath string
	RulesPath       string
	OutputPath      string
	Watch           bool
	WriteRules      bool
}

func NewConvertArgs(rootArgs *RootArgs) *ConvertArgs {
	return &ConvertArgs{
		RootArgs: rootArgs,
	}
}

func (ca *ConvertArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ca.RulesPath, "rules", "r", "conversion_rules.json",
		"Path to the conversion rules file; absent files fall back to built-in defaults")
	cmd.Flags().StringVarP(&ca.OutputPath, "output", "o", "",
		fmt.Sprintf("Output path, defaults to %s in the working directory", converter.DefaultOutputName))
	cmd.Flags().BoolVarP(&ca.Watch, "watch", "w", false,
		"Watch the spreadsheet and rules file, re-running the conversion on change")
	cmd.Flags().BoolVar(&ca.WriteRules, "write-rules", false,
		"Write the built-in default rules to the --rules path and exit")

	err := cmd.MarkFlagFilename("rules", "json", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark rules flag: %w", err))
	}

	err = cmd.MarkFlagFilename("output", "json")
	if err != nil {
		panic(fmt.Errorf("mark output flag: %w", err))
	}
}

func NewConvertCmd(ca *ConvertArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert [spreadsheet]",
		Short:   "Default command, converts a spreadsheet to a JSON document",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ca.SpreadsheetPath = args[0]
			}

			return runConvert(cmd, ca)
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runConvert(cmd *cobra.Command, ca *ConvertArgs) error {
	if ca.WriteRules {
		// Exit early after writing the default rules file.
		return rules.WriteDefault(ca.RulesPath, false)
	}

	if ca.SpreadsheetPath == "" {
		return ErrMissingSpreadsheet
	}

	var opts []converter.Opt
	if ca.OutputPath != "" {
		opts = append(opts, converter.WithOutputPath(ca.OutputPath))
	}

	c := converter.New(ca.SpreadsheetPath, ca.RulesPath, opts...)

	err := c.Convert()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if ca.Watch {
		return c.Watch(cmd.Context())
	}

	return nil
}
