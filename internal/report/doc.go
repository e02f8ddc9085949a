// Package report renders an assignment plan for the console.
//
// The default text format prints one line per server in index order:
//
//	Server 0 has subnet 2000:42::/68 with x ranging from 0 to 119
//
// Structured formats (json, yaml) carry the same rows plus the layout.
// The compose and docker formats describe one IPv6 network per server
// subnet, for operators who wire the wall up with containers.
//
// Every format is rendered fully into memory before anything is written,
// so a rendering failure never leaves a truncated table on stdout.
package report
