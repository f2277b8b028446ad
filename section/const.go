package section

import (
	"math"

	"github.com/arloliu/wavepeek/format"
)

// Options bits (header bytes 0-1, always little-endian).
const (
	EndiannessMask    = 0x0002 // bit 1: 0=little, 1=big
	HashCollisionMask = 0x0004 // bit 2: two trace names share an ID
	ReservedBitsMask  = 0x0009 // bits 0 and 3 must be zero
	MagicNumberMask   = 0xFFF0 // bits 4-15

	MagicSnapshotV1Opt = 0xEC10 // version 1 snapshot
)

// Defaults written by NewFlag.
const (
	DefaultTimestampEncoding    = format.TypeDelta
	DefaultTimestampCompression = format.CompressionNone
	DefaultValueCompression     = format.CompressionZstd
	DefaultNamesCompression     = format.CompressionNone
)

// Section sizes and limits.
const (
	HeaderSize     = 32             // fixed header size in bytes
	IndexEntrySize = 32             // fixed index entry size in bytes
	IndexOffset    = HeaderSize     // the index directly follows the header
	MaxOffset      = math.MaxUint32 // largest payload offset or length
)
