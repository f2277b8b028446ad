// Package endian selects the byte order used by the fixed-size fields of a
// snapshot archive.
//
// Snapshots are written little-endian by default. The header records the order
// that was used, so a decoder picks the matching engine with ForFlag:
//
//	engine := endian.ForFlag(hdr.IsBigEndian())
//	count := engine.Uint32(buf[8:12])
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine reads, writes and appends fixed-size integers in one byte order.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the byte order of the host.
func Native() EndianEngine {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order.
func IsNative(engine EndianEngine) bool {
	return engine == Native()
}

// Little returns the little-endian engine.
func Little() EndianEngine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() EndianEngine {
	return binary.BigEndian
}

// ForFlag returns Big when bigEndian is set, otherwise Little.
func ForFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return Big()
	}

	return Little()
}

// IsBig reports whether engine writes the most significant byte first.
func IsBig(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x01
}
