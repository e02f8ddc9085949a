// Package layout validates a screen/network layout and derives the
// assignment table from it.
//
// Validation runs before any derivation. A layout that passes Validate is
// guaranteed to produce exactly one subnet and one pixel range per server,
// so NewPlan either returns a complete table or an error, never a partial
// one.
package layout
