// Package cli - validate.go implements the "screensplit validate" command.
//
// The validate command resolves the layout and checks every invariant
// without printing the table. All violations are reported at once, which
// makes it convenient for checking a config file in CI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/screensplit/internal/layout"
	"github.com/shinji-kodama/screensplit/internal/report"
)

// NewValidateCommand creates the "validate" cobra command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the layout without printing the table",
		Long: `Check that the resolved layout satisfies every invariant:

  - the server count is a power of two and less than the screen width
  - the screen width is a multiple of the server count
  - the network is an IPv6 /64 without host bits

Exits with status 2 and lists every violation otherwise.

Examples:
  screensplit validate --config wall.yaml
  screensplit validate --servers 3`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout())
		},
	}
}

// validateJSON is the JSON output structure of the validate command.
type validateJSON struct {
	Valid        bool   `json:"valid"`
	Layout       string `json:"layout"`
	SubnetPrefix int    `json:"subnetPrefix"`
	ChunkWidth   int    `json:"chunkWidth"`
}

// runValidate resolves the plan and reports its summary.
func runValidate(w io.Writer) error {
	plan, err := resolvePlan()
	if err != nil {
		return err
	}
	printValidateResult(w, plan)
	return nil
}

// printValidateResult outputs the summary of a valid plan in text or JSON.
func printValidateResult(w io.Writer, plan *layout.Plan) {
	prefixBits := plan.Assignments[0].Subnet.Bits()

	if currentFormat() == report.FormatJSON {
		data, _ := json.MarshalIndent(validateJSON{
			Valid:        true,
			Layout:       plan.Layout.String(),
			SubnetPrefix: prefixBits,
			ChunkWidth:   plan.ChunkWidth,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintf(w, "Layout %s is valid: %d subnets of /%d, %d px per server\n",
		plan.Layout, len(plan.Assignments), prefixBits, plan.ChunkWidth)
}
