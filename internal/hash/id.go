// Package hash derives the trace IDs stored in snapshot index entries.
package hash

import "github.com/cespare/xxhash/v2"

// TraceID returns the xxHash64 of a trace name.
func TraceID(name string) uint64 {
	return xxhash.Sum64String(name)
}
