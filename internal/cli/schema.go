package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabcast/tabcast/pkg/rules"
)

// NewSchemaCmd creates the schema command, which prints the JSON schema
// that rules files are validated against.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for rules files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mustN(fmt.Fprint(cmd.OutOrStdout(), string(rules.SchemaJSON())))

			return nil
		},
	}
}
