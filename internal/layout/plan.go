package layout

import (
	"fmt"
	"net/netip"

	"github.com/shinji-kodama/screensplit/internal/model"
	"github.com/shinji-kodama/screensplit/internal/pixel"
	"github.com/shinji-kodama/screensplit/internal/subnet"
)

// Plan is the complete assignment table derived from a validated layout.
//
// A Plan is immutable once built. Lookups never modify it, and building the
// same layout twice yields identical plans.
type Plan struct {
	// Layout is the configuration the plan was derived from.
	Layout model.Layout

	// ChunkWidth is the number of columns per server.
	ChunkWidth int

	// Assignments holds one entry per server, ordered by server index.
	Assignments []model.Assignment
}

// NewPlan validates l and derives the assignment table.
//
// Algorithm:
//  1. Validate every invariant; any violation aborts with no table.
//  2. Split the base network into l.Servers subnets.
//  3. Compute each server's pixel range from the fixed chunk width.
//  4. Pair subnet i with range i for every server index.
func NewPlan(l model.Layout) (*Plan, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}

	subnets, err := subnet.Split(l.Network, l.Servers)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s: %w", l.Network, err)
	}

	ranges := pixel.Ranges(l.Width, l.Servers)
	if len(ranges) != len(subnets) {
		return nil, fmt.Errorf("derived %d pixel ranges for %d subnets", len(ranges), len(subnets))
	}

	assignments := make([]model.Assignment, 0, l.Servers)
	for i := range subnets {
		assignments = append(assignments, model.Assignment{
			Index:  i,
			Subnet: subnets[i],
			X:      ranges[i],
		})
	}

	return &Plan{
		Layout:      l,
		ChunkWidth:  pixel.ChunkWidth(l.Width, l.Servers),
		Assignments: assignments,
	}, nil
}

// Subnets returns the subnet of every server in index order.
func (p *Plan) Subnets() []netip.Prefix {
	out := make([]netip.Prefix, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		out = append(out, a.Subnet)
	}
	return out
}

// ForX returns the assignment of the server drawing column x.
func (p *Plan) ForX(x int) (model.Assignment, error) {
	idx, ok := pixel.IndexForX(p.Layout.Width, p.Layout.Servers, x)
	if !ok {
		return model.Assignment{}, fmt.Errorf("column %d outside screen (0-%d)", x, p.Layout.Width-1)
	}
	return p.Assignments[idx], nil
}

// ForAddr returns the assignment of the server whose subnet contains addr.
func (p *Plan) ForAddr(addr netip.Addr) (model.Assignment, error) {
	idx := subnet.IndexOf(p.Subnets(), addr)
	if idx < 0 {
		return model.Assignment{}, fmt.Errorf("address %s outside %s", addr, p.Layout.Network)
	}
	return p.Assignments[idx], nil
}
