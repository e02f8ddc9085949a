// Package cli - table.go implements the "screensplit table" command.
//
// The table command prints one line per server, joining the server's IPv6
// subnet and its pixel column range. It is also what the root command runs
// when no subcommand is given.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/screensplit/internal/report"
)

// NewTableCommand creates the "table" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the server / subnet / pixel range assignment table",
		Long: `Print the assignment table, one server per line, in server index order.

Examples:
  screensplit table
  screensplit table --servers 32 --width 3840
  screensplit table --format compose > networks.yml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.OutOrStdout())
		},
	}
}

// runTable resolves the plan and writes it in the selected format.
func runTable(w io.Writer) error {
	plan, err := resolvePlan()
	if err != nil {
		return err
	}
	log.WithField("format", formatName).Debug("writing report")
	return report.Write(w, plan, currentFormat())
}
