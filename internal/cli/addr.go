// Package cli - addr.go implements the "screensplit addr" command.
//
// The addr command encodes one pixel into the pixelflut-v6 destination
// address inside the base network, which is handy for testing a server
// with a single ping or packet.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/screensplit/internal/model"
	"github.com/shinji-kodama/screensplit/internal/pixel"
	"github.com/shinji-kodama/screensplit/internal/report"
)

// NewAddrCommand creates the "addr" cobra command.
func NewAddrCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr <x> <y> [rrggbb]",
		Short: "Encode a pixel into its pixelflut-v6 destination address",
		Long: `Encode a pixel into the destination address that draws it.

The colour defaults to ffffff. The pixel must lie on the screen.

x is carried in the upper bits of the interface identifier, so the address
can fall into another server's subnet than the one owning the column. Both
servers are printed when that happens.

Examples:
  screensplit addr 100 200
  screensplit addr 1919 1079 ff8800`,

		Args: cobra.RangeArgs(2, 3),

		RunE: func(cmd *cobra.Command, args []string) error {
			color := "ffffff"
			if len(args) == 3 {
				color = args[2]
			}
			return runAddr(cmd.OutOrStdout(), args[0], args[1], color)
		},
	}
	cmd.SetFlagErrorFunc(coordinateFlagError)
	return cmd
}

// addrJSON is the JSON output structure of the addr command.
//
// Server owns the pixel's column. RoutedServer owns the subnet the address
// falls into; the two differ whenever the top bits of x do not match the
// server index.
type addrJSON struct {
	Address      string `json:"address"`
	Server       int    `json:"server"`
	Subnet       string `json:"subnet"`
	RoutedServer int    `json:"routedServer"`
	RoutedSubnet string `json:"routedSubnet"`
	Mismatch     bool   `json:"mismatch"`
}

// runAddr parses the pixel, encodes it and prints the result.
func runAddr(w io.Writer, xArg, yArg, colorArg string) error {
	px, err := parsePixel(xArg, yArg, colorArg)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid pixel", err)
	}

	plan, err := resolvePlan()
	if err != nil {
		return err
	}

	if px.Y < 0 || px.Y >= plan.Layout.Height {
		return model.NewCLIError(model.ExitLookupFailed,
			fmt.Sprintf("row %d outside screen (0-%d)", px.Y, plan.Layout.Height-1))
	}
	owner, err := plan.ForX(px.X)
	if err != nil {
		return model.WrapCLIError(model.ExitLookupFailed, "pixel not on screen", err)
	}

	addr, err := pixel.EncodeAddress(plan.Layout.Network, px)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode address", err)
	}
	routed, err := plan.ForAddr(addr)
	if err != nil {
		return model.WrapCLIError(model.ExitLookupFailed, "address not routable", err)
	}

	mismatch := !owner.Subnet.Contains(addr)
	if mismatch {
		log.WithFields(logrus.Fields{
			"address":      addr.String(),
			"server":       owner.Index,
			"routedServer": routed.Index,
		}).Warn("pixel address routes to a server that does not own its column")
	}

	if currentFormat() == report.FormatJSON {
		data, _ := json.MarshalIndent(addrJSON{
			Address:      addr.String(),
			Server:       owner.Index,
			Subnet:       owner.Subnet.String(),
			RoutedServer: routed.Index,
			RoutedSubnet: routed.Subnet.String(),
			Mismatch:     mismatch,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	if mismatch {
		fmt.Fprintf(w, "Pixel %s has address %s: column owned by server %d (%s) but the address routes to server %d (%s)\n",
			px, addr, owner.Index, owner.Subnet, routed.Index, routed.Subnet)
		return nil
	}
	fmt.Fprintf(w, "Pixel %s has address %s and is drawn by server %d\n", px, addr, owner.Index)
	return nil
}

// parsePixel converts the positional arguments into a Pixel.
func parsePixel(xArg, yArg, colorArg string) (pixel.Pixel, error) {
	x, err := strconv.Atoi(xArg)
	if err != nil {
		return pixel.Pixel{}, fmt.Errorf("invalid x %q: %w", xArg, err)
	}
	y, err := strconv.Atoi(yArg)
	if err != nil {
		return pixel.Pixel{}, fmt.Errorf("invalid y %q: %w", yArg, err)
	}
	c, err := pixel.ParseColor(colorArg)
	if err != nil {
		return pixel.Pixel{}, err
	}
	return pixel.Pixel{X: x, Y: y, Color: c}, nil
}
