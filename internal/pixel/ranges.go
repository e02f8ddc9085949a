package pixel

import "github.com/shinji-kodama/screensplit/internal/model"

// ChunkWidth returns the number of columns each of count servers receives.
// The caller validates that width is a positive multiple of count.
func ChunkWidth(width, count int) int {
	return width / count
}

// RangeFor returns the inclusive column range of server index.
func RangeFor(width, count, index int) model.PixelRange {
	chunk := ChunkWidth(width, count)
	return model.PixelRange{
		Start: index * chunk,
		End:   (index+1)*chunk - 1,
	}
}

// Ranges returns the ranges of all servers in index order. Consecutive
// ranges are adjacent and together cover [0, width-1].
func Ranges(width, count int) []model.PixelRange {
	ranges := make([]model.PixelRange, 0, count)
	for i := 0; i < count; i++ {
		ranges = append(ranges, RangeFor(width, count, i))
	}
	return ranges
}

// IndexForX returns the server owning column x. The second return value is
// false when x lies outside [0, width-1].
func IndexForX(width, count, x int) (int, bool) {
	if x < 0 || x >= width {
		return 0, false
	}
	return x / ChunkWidth(width, count), true
}
