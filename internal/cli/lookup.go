// Package cli - lookup.go implements the "screensplit lookup" command.
//
// The lookup command answers "who draws this?" for a single pixel column
// or destination address. For an address inside the base network it also
// decodes the pixel carried in the lower 64 bits.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/netip"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/screensplit/internal/layout"
	"github.com/shinji-kodama/screensplit/internal/model"
	"github.com/shinji-kodama/screensplit/internal/pixel"
	"github.com/shinji-kodama/screensplit/internal/report"
)

// NewLookupCommand creates the "lookup" cobra command.
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <x | address>",
		Short: "Find the server owning a pixel column or IPv6 address",
		Long: `Find the server that owns a pixel column or a destination address.

A plain number is treated as an x coordinate. Anything else must be an
IPv6 address inside the base network; the pixel it carries is printed too,
with a warning when the routing server does not draw that pixel's column.
Negative numbers are always off screen and need a leading -- to be read
as an argument.

Examples:
  screensplit lookup 1000
  screensplit lookup 2000:42::3e8:10:ff00:0
  screensplit lookup -- -5`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.SetFlagErrorFunc(coordinateFlagError)
	return cmd
}

// lookupJSON is the JSON output structure of the lookup command.
type lookupJSON struct {
	Index  int        `json:"index"`
	Subnet string     `json:"subnet"`
	XStart int        `json:"xStart"`
	XEnd   int        `json:"xEnd"`
	Pixel  *pixelJSON `json:"pixel,omitempty"`
}

// pixelJSON describes the pixel decoded from an address. ColumnServer is
// the server owning the pixel's column, nil when the column is off screen.
type pixelJSON struct {
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Color        string `json:"color"`
	ColumnServer *int   `json:"columnServer"`
	Mismatch     bool   `json:"mismatch"`
}

// lookupResult is a resolved lookup. Pixel and Column are only set for
// address lookups; Column is nil when the decoded column is off screen.
type lookupResult struct {
	Server model.Assignment
	Pixel  *pixel.Pixel
	Column *model.Assignment
}

// Mismatch reports whether the address routes to a server that does not
// draw the pixel it carries.
func (r lookupResult) Mismatch() bool {
	return r.Pixel != nil && !r.Server.X.Contains(r.Pixel.X)
}

// runLookup resolves the plan and looks up target in it.
func runLookup(w io.Writer, target string) error {
	plan, err := resolvePlan()
	if err != nil {
		return err
	}

	res, err := lookup(plan, target)
	if err != nil {
		return model.WrapCLIError(model.ExitLookupFailed, fmt.Sprintf("lookup of %q failed", target), err)
	}
	log.WithField("server", res.Server.Index).Debug("lookup resolved")
	if res.Mismatch() {
		log.WithFields(logrus.Fields{
			"server": res.Server.Index,
			"x":      res.Pixel.X,
		}).Warn("address routes to a server that does not own the pixel's column")
	}

	printLookupResult(w, res)
	return nil
}

// lookup resolves a column or address to its assignment.
func lookup(plan *layout.Plan, target string) (lookupResult, error) {
	if x, err := strconv.Atoi(target); err == nil {
		a, err := plan.ForX(x)
		return lookupResult{Server: a}, err
	}

	addr, err := netip.ParseAddr(target)
	if err != nil {
		return lookupResult{}, fmt.Errorf("%q is neither a pixel column nor an IPv6 address", target)
	}
	a, err := plan.ForAddr(addr)
	if err != nil {
		return lookupResult{}, err
	}
	px, err := pixel.DecodeAddress(addr)
	if err != nil {
		return lookupResult{}, err
	}

	res := lookupResult{Server: a, Pixel: &px}
	if col, err := plan.ForX(px.X); err == nil {
		res.Column = &col
	}
	return res, nil
}

// printLookupResult outputs the assignment, and the decoded pixel if any,
// in text or JSON format.
func printLookupResult(w io.Writer, res lookupResult) {
	a := res.Server

	if currentFormat() == report.FormatJSON {
		out := lookupJSON{
			Index:  a.Index,
			Subnet: a.Subnet.String(),
			XStart: a.X.Start,
			XEnd:   a.X.End,
		}
		if res.Pixel != nil {
			out.Pixel = &pixelJSON{
				X:        res.Pixel.X,
				Y:        res.Pixel.Y,
				Color:    res.Pixel.Color.String(),
				Mismatch: res.Mismatch(),
			}
			if res.Column != nil {
				idx := res.Column.Index
				out.Pixel.ColumnServer = &idx
			}
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	fmt.Fprintln(w, a.String())
	if res.Pixel == nil {
		return
	}
	fmt.Fprintf(w, "Address carries pixel %s\n", res.Pixel)
	if !res.Mismatch() {
		return
	}
	if res.Column == nil {
		fmt.Fprintf(w, "Warning: column %d is off screen, server %d does not draw it\n", res.Pixel.X, a.Index)
		return
	}
	fmt.Fprintf(w, "Warning: column %d is drawn by server %d, not by server %d\n",
		res.Pixel.X, res.Column.Index, a.Index)
}
