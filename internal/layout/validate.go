package layout

import (
	"errors"

	"github.com/shinji-kodama/screensplit/internal/model"
	"github.com/shinji-kodama/screensplit/internal/subnet"
)

// Check evaluates every layout invariant and returns the violations found,
// in a stable order (empty slice = valid layout).
//
// Checks performed:
//   - width, height and servers are positive and within MaxDimension
//   - servers is a power of two
//   - servers is strictly less than width
//   - width is a multiple of servers
//   - network is an IPv6 prefix with no host bits set
//   - network prefix length is exactly /64
//   - the derived subnet prefix fits in 128 bits
func Check(l model.Layout) []*model.ValidationError {
	var errs []*model.ValidationError

	if l.Width <= 0 || l.Width > model.MaxDimension {
		errs = append(errs, model.NewValidationError("width", model.ErrOutOfBounds,
			"%d not in 1-%d", l.Width, model.MaxDimension))
	}
	if l.Height <= 0 || l.Height > model.MaxDimension {
		errs = append(errs, model.NewValidationError("height", model.ErrOutOfBounds,
			"%d not in 1-%d", l.Height, model.MaxDimension))
	}

	countOK := true
	if l.Servers <= 0 {
		countOK = false
		errs = append(errs, model.NewValidationError("servers", model.ErrOutOfBounds,
			"%d servers, need at least one", l.Servers))
	} else if _, err := subnet.Bits(l.Servers); err != nil {
		countOK = false
		errs = append(errs, model.NewValidationError("servers", model.ErrNotPowerOfTwo,
			"%d servers, the count needs to be a power of two", l.Servers))
	}

	if l.Servers >= l.Width && l.Width > 0 {
		countOK = false
		errs = append(errs, model.NewValidationError("servers", model.ErrTooManyServers,
			"%d servers for a %d pixel wide screen, every server needs a whole vertical slice", l.Servers, l.Width))
	}

	if countOK && l.Width > 0 && l.Width%l.Servers != 0 {
		errs = append(errs, model.NewValidationError("width", model.ErrUnevenChunks,
			"%d pixels cannot be split into %d equal slices (%d remaining)", l.Width, l.Servers, l.Width%l.Servers))
	}

	errs = append(errs, checkNetwork(l)...)
	return errs
}

// checkNetwork validates the base network and the derived prefix length.
func checkNetwork(l model.Layout) []*model.ValidationError {
	n := l.Network
	if !n.IsValid() || !n.Addr().Is6() || n.Addr().Is4In6() {
		return []*model.ValidationError{model.NewValidationError("network", model.ErrNotIPv6,
			"%q is not an IPv6 network", n.String())}
	}

	var errs []*model.ValidationError
	if n.Masked() != n {
		errs = append(errs, model.NewValidationError("network", model.ErrHostBits,
			"%s has host bits set, did you mean %s", n, n.Masked()))
	}
	if n.Bits() != model.RequiredPrefixBits {
		errs = append(errs, model.NewValidationError("network", model.ErrPrefixLength,
			"%s needs to be a /%d", n, model.RequiredPrefixBits))
	}
	if bits, err := subnet.Bits(l.Servers); err == nil && n.Bits()+bits > 128 {
		errs = append(errs, model.NewValidationError("network", model.ErrPrefixOverflow,
			"%s cannot hold %d subnets", n, l.Servers))
	}
	return errs
}

// Validate returns nil for a valid layout, otherwise all violations joined
// into one error. Every violation stays reachable through errors.Is/As.
func Validate(l model.Layout) error {
	violations := Check(l)
	if len(violations) == 0 {
		return nil
	}
	errs := make([]error, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, v)
	}
	return errors.Join(errs...)
}
