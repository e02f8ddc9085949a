// Package subnet splits an IPv6 base network into equal-sized subnets,
// one per server.
//
// The core algorithm is prefix extension:
//
//	bits      = log2(count)
//	newPrefix = basePrefix + bits
//	subnet[i] = base + i << (128 - newPrefix)
//
// Subnets are enumerated in ascending address order, so subnet i is always
// owned by server i. The arithmetic runs on the 128-bit address as two
// uint64 halves; no address is ever materialized outside the base network.
package subnet
