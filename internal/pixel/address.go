package pixel

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net/netip"
	"strings"
)

// Color is a 24-bit RGB colour as carried in a pixel address.
type Color struct {
	R, G, B uint8
}

// String returns the colour as six lowercase hex digits ("ff8800").
func (c Color) String() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B})
}

// ParseColor parses "rrggbb", with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// Pixel is a coloured point on the screen.
type Pixel struct {
	X     int
	Y     int
	Color Color
}

// String returns "x,y #rrggbb".
func (p Pixel) String() string {
	return fmt.Sprintf("%d,%d #%s", p.X, p.Y, p.Color)
}

// EncodeAddress builds the destination address that draws p inside network.
// Only the upper 64 bits of network are used; the lower 64 carry the pixel.
func EncodeAddress(network netip.Prefix, p Pixel) (netip.Addr, error) {
	if !network.Addr().Is6() {
		return netip.Addr{}, fmt.Errorf("network %s is not IPv6", network)
	}
	if network.Bits() > 64 {
		return netip.Addr{}, fmt.Errorf("network %s is smaller than a /64", network)
	}
	if p.X < 0 || p.X > 0xffff || p.Y < 0 || p.Y > 0xffff {
		return netip.Addr{}, fmt.Errorf("pixel %d,%d outside 16-bit coordinate space", p.X, p.Y)
	}

	raw := network.Masked().Addr().As16()
	binary.BigEndian.PutUint16(raw[8:10], uint16(p.X))
	binary.BigEndian.PutUint16(raw[10:12], uint16(p.Y))
	raw[12] = p.Color.R
	raw[13] = p.Color.G
	raw[14] = p.Color.B
	raw[15] = 0
	return netip.AddrFrom16(raw), nil
}

// DecodeAddress extracts the pixel carried in the lower 64 bits of addr.
func DecodeAddress(addr netip.Addr) (Pixel, error) {
	if !addr.Is6() || addr.Is4In6() {
		return Pixel{}, fmt.Errorf("address %s is not IPv6", addr)
	}
	raw := addr.As16()
	return Pixel{
		X:     int(binary.BigEndian.Uint16(raw[8:10])),
		Y:     int(binary.BigEndian.Uint16(raw[10:12])),
		Color: Color{R: raw[12], G: raw[13], B: raw[14]},
	}, nil
}
