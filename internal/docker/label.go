package docker

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// Label key constants define the Docker label keys used to describe a
// server slice on a network definition.
//
// All keys share the "screensplit." prefix to namespace them and avoid
// collisions with labels set by other tools (Docker Compose, etc.).
const (
	// LabelPrefix is the common prefix for all screensplit labels.
	LabelPrefix = "screensplit."

	// LabelManagedBy identifies definitions generated by screensplit.
	// Key: "screensplit.managed-by", Value: always "screensplit".
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelServerIndex stores the 0-based server index.
	LabelServerIndex = LabelPrefix + "server-index"

	// LabelSubnet stores the server's subnet in CIDR notation.
	LabelSubnet = LabelPrefix + "subnet"

	// LabelXStart stores the first pixel column of the slice.
	LabelXStart = LabelPrefix + "x-start"

	// LabelXEnd stores the last pixel column of the slice (inclusive).
	LabelXEnd = LabelPrefix + "x-end"

	// LabelScreen stores the screen geometry as "<width>x<height>".
	LabelScreen = LabelPrefix + "screen"
)

// ManagedByValue is the constant value for the LabelManagedBy label.
const ManagedByValue = "screensplit"

// BuildLabels constructs a label map describing one assignment of a layout.
// ParseLabels is its inverse.
func BuildLabels(l model.Layout, a model.Assignment) map[string]string {
	return map[string]string{
		LabelManagedBy:   ManagedByValue,
		LabelServerIndex: strconv.Itoa(a.Index),
		LabelSubnet:      a.Subnet.String(),
		LabelXStart:      strconv.Itoa(a.X.Start),
		LabelXEnd:        strconv.Itoa(a.X.End),
		LabelScreen:      fmt.Sprintf("%dx%d", l.Width, l.Height),
	}
}

// ParseLabels reconstructs an Assignment from a label map.
//
// All labels written by BuildLabels except the screen geometry are
// required. Missing labels are reported together in one error.
func ParseLabels(labels map[string]string) (*model.Assignment, error) {
	requiredKeys := []string{
		LabelManagedBy,
		LabelServerIndex,
		LabelSubnet,
		LabelXStart,
		LabelXEnd,
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := labels[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required labels: %s", strings.Join(missing, ", "))
	}

	if labels[LabelManagedBy] != ManagedByValue {
		return nil, fmt.Errorf(
			"label %s has unexpected value %q (expected %q)",
			LabelManagedBy, labels[LabelManagedBy], ManagedByValue,
		)
	}

	index, err := parseIntLabel(labels, LabelServerIndex)
	if err != nil {
		return nil, err
	}
	start, err := parseIntLabel(labels, LabelXStart)
	if err != nil {
		return nil, err
	}
	end, err := parseIntLabel(labels, LabelXEnd)
	if err != nil {
		return nil, err
	}

	prefix, err := netip.ParsePrefix(labels[LabelSubnet])
	if err != nil {
		return nil, fmt.Errorf("invalid label %s: %w", LabelSubnet, err)
	}

	return &model.Assignment{
		Index:  index,
		Subnet: prefix,
		X:      model.PixelRange{Start: start, End: end},
	}, nil
}

func parseIntLabel(labels map[string]string, key string) (int, error) {
	n, err := strconv.Atoi(labels[key])
	if err != nil {
		return 0, fmt.Errorf("invalid label %s=%q: %w", key, labels[key], err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid label %s=%q: negative value", key, labels[key])
	}
	return n, nil
}

// VerifyLabels checks that labels describe exactly assignment a. It is run
// on every generated definition so a label that cannot be traced back to its
// slice is never printed.
func VerifyLabels(labels map[string]string, a model.Assignment) error {
	got, err := ParseLabels(labels)
	if err != nil {
		return err
	}
	if *got != a {
		return fmt.Errorf("labels describe server %d (%s, x %d-%d), want server %d (%s, x %d-%d)",
			got.Index, got.Subnet, got.X.Start, got.X.End,
			a.Index, a.Subnet, a.X.Start, a.X.End)
	}
	return nil
}
