// Package section defines the fixed-size parts of a snapshot archive: the
// 32-byte Header with its Flag, and the 32-byte IndexEntry written once per
// trace.
//
// A snapshot is laid out as:
//
//	+--------+-------------------+---------------+--------------+----------+
//	| Header | IndexEntry x N    | names payload | ts payload   | values   |
//	+--------+-------------------+---------------+--------------+----------+
//	0        32                  32+32N
//
// The option bits of the header are always little-endian; every other
// fixed-size field uses the byte order recorded in the flag.
package section
