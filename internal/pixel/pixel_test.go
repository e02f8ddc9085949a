package pixel

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// TestRangeFor verifies the slice formula for the reference layout:
// 1920 columns across 16 servers gives 120 columns each.
func TestRangeFor(t *testing.T) {
	assert.Equal(t, 120, ChunkWidth(1920, 16))
	assert.Equal(t, model.PixelRange{Start: 0, End: 119}, RangeFor(1920, 16, 0))
	assert.Equal(t, model.PixelRange{Start: 120, End: 239}, RangeFor(1920, 16, 1))
	assert.Equal(t, model.PixelRange{Start: 1800, End: 1919}, RangeFor(1920, 16, 15))
}

// TestRanges_CoverScreen verifies that ranges are contiguous,
// non-overlapping and jointly cover [0, width-1] for several layouts.
func TestRanges_CoverScreen(t *testing.T) {
	layouts := []struct{ width, count int }{
		{1920, 1},
		{1920, 2},
		{1920, 16},
		{1920, 128},
		{1024, 512},
		{64, 32},
	}

	for _, l := range layouts {
		ranges := Ranges(l.width, l.count)
		require.Len(t, ranges, l.count)

		assert.Equal(t, 0, ranges[0].Start)
		assert.Equal(t, l.width-1, ranges[len(ranges)-1].End)

		covered := 0
		for i, r := range ranges {
			assert.Equal(t, l.width/l.count, r.Width())
			if i > 0 {
				assert.Equal(t, ranges[i-1].End+1, r.Start, "gap or overlap before server %d", i)
			}
			covered += r.Width()
		}
		assert.Equal(t, l.width, covered)
	}
}

// TestIndexForX verifies the column-to-server lookup, including the
// boundaries of a slice and columns off the screen.
func TestIndexForX(t *testing.T) {
	tests := []struct {
		x    int
		want int
		ok   bool
	}{
		{0, 0, true},
		{119, 0, true},
		{120, 1, true},
		{1919, 15, true},
		{1920, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := IndexForX(1920, 16, tt.x)
		assert.Equal(t, tt.ok, ok, "x=%d", tt.x)
		assert.Equal(t, tt.want, got, "x=%d", tt.x)
	}
}

// TestParseColor covers accepted and rejected colour strings.
func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0x88, B: 0x00}, c)
	assert.Equal(t, "ff8800", c.String())

	c, err = ParseColor("0A0B0C")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 10, G: 11, B: 12}, c)

	_, err = ParseColor("fff")
	assert.Error(t, err)

	_, err = ParseColor("gg0000")
	assert.Error(t, err)
}

// TestEncodeAddress verifies the pixelflut-v6 byte layout.
func TestEncodeAddress(t *testing.T) {
	network := netip.MustParsePrefix("2000:42::/64")
	p := Pixel{X: 1919, Y: 1079, Color: Color{R: 0xff, G: 0x88, B: 0x00}}

	addr, err := EncodeAddress(network, p)
	require.NoError(t, err)
	assert.Equal(t, "2000:42::77f:437:ff88:0", addr.String())
	assert.True(t, network.Contains(addr))

	decoded, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
	assert.Equal(t, "1919,1079 #ff8800", decoded.String())
}

// TestEncodeAddress_Errors covers networks and coordinates that cannot
// carry a pixel.
func TestEncodeAddress_Errors(t *testing.T) {
	_, err := EncodeAddress(netip.MustParsePrefix("10.0.0.0/8"), Pixel{})
	assert.Error(t, err)

	_, err = EncodeAddress(netip.MustParsePrefix("2000:42::/68"), Pixel{})
	assert.Error(t, err)

	_, err = EncodeAddress(netip.MustParsePrefix("2000:42::/64"), Pixel{X: 70000})
	assert.Error(t, err)

	_, err = DecodeAddress(netip.MustParseAddr("192.0.2.1"))
	assert.Error(t, err)
}
