package subnet

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net/netip"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// addrBits is the width of an IPv6 address.
const addrBits = 128

// Bits returns log2(count) for a power-of-two count.
//
// Returns an error wrapping model.ErrNotPowerOfTwo for zero, negative or
// non-power-of-two counts.
func Bits(count int) (int, error) {
	if count <= 0 || count&(count-1) != 0 {
		return 0, fmt.Errorf("%w: %d", model.ErrNotPowerOfTwo, count)
	}
	return bits.TrailingZeros(uint(count)), nil
}

// Split divides base into exactly count subnets of equal size and returns
// them in ascending address order.
//
// Algorithm:
//  1. bits = log2(count); count must be a power of two.
//  2. newBits = base.Bits() + bits; must not exceed 128.
//  3. subnet i starts at base + i<<(128-newBits).
//  4. The result length is checked against count before returning.
//
// A count of 1 yields the base network itself.
func Split(base netip.Prefix, count int) ([]netip.Prefix, error) {
	if !base.IsValid() || !base.Addr().Is6() {
		return nil, fmt.Errorf("%w: %s", model.ErrNotIPv6, base)
	}

	extra, err := Bits(count)
	if err != nil {
		return nil, err
	}

	newBits := base.Bits() + extra
	if newBits > addrBits {
		return nil, fmt.Errorf("%w: /%d split into %d subnets needs /%d",
			model.ErrPrefixOverflow, base.Bits(), count, newBits)
	}

	base = base.Masked()
	subnets := make([]netip.Prefix, 0, count)
	for i := 0; i < count; i++ {
		subnets = append(subnets, Nth(base, newBits, uint64(i)))
	}

	// Unreachable for validated input; kept so a broken enumeration can
	// never hand out a short or long table.
	if len(subnets) != count {
		return nil, fmt.Errorf("split of %s produced %d subnets, want %d", base, len(subnets), count)
	}
	return subnets, nil
}

// Nth returns the i-th subnet of length newBits inside base.
//
// The caller guarantees base.Bits() <= newBits <= 128 and that i fits in the
// newBits-base.Bits() index bits; higher bits of i would spill outside base.
func Nth(base netip.Prefix, newBits int, i uint64) netip.Prefix {
	raw := base.Masked().Addr().As16()
	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	// Offset i << shift as a 128-bit value (offHi, offLo).
	shift := uint(addrBits - newBits)
	var offHi, offLo uint64
	switch {
	case shift >= 64:
		offHi = i << (shift - 64)
	case shift == 0:
		offLo = i
	default:
		offHi = i >> (64 - shift)
		offLo = i << shift
	}

	var carry uint64
	lo, carry = bits.Add64(lo, offLo, 0)
	hi, _ = bits.Add64(hi, offHi, carry)

	var out [16]byte
	binary.BigEndian.PutUint64(out[:8], hi)
	binary.BigEndian.PutUint64(out[8:], lo)
	return netip.PrefixFrom(netip.AddrFrom16(out), newBits)
}

// IndexOf returns the position of the subnet containing addr, or -1 if no
// subnet in the list contains it.
func IndexOf(subnets []netip.Prefix, addr netip.Addr) int {
	for i, p := range subnets {
		if p.Contains(addr) {
			return i
		}
	}
	return -1
}
