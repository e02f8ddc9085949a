// Package pixel computes the vertical screen slices owned by each server
// and encodes pixels into pixelflut-v6 destination addresses.
//
// Slicing uses one fixed chunk width for every server:
//
//	chunk = width / count
//	start = index * chunk
//	end   = (index + 1) * chunk - 1
//
// The address codec places a pixel into the lower 64 bits of a /64:
//
//	bytes 8-9   x (big endian)
//	bytes 10-11 y (big endian)
//	bytes 12-14 red, green, blue
//	byte  15    zero
package pixel
