package section

import (
	"fmt"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
)

// Flag holds the first five header bytes: option bits with the magic number, the
// timestamp encoding, and the payload compressions.
type Flag struct {
	// Options packs the magic number (bits 4-15), the byte order (bit 1) and the
	// hash collision marker (bit 2).
	Options uint16
	// Encoding holds the timestamp encoding in bits 0-3.
	Encoding uint8
	// Compression holds the timestamp codec in bits 0-3 and the value codec in
	// bits 4-7.
	Compression uint8
	// NamesCodec holds the names codec in bits 0-3.
	NamesCodec uint8
}

// NewFlag returns a little-endian flag with the default encodings.
func NewFlag() Flag {
	f := Flag{Options: MagicSnapshotV1Opt}
	f.SetTimestampEncoding(DefaultTimestampEncoding)
	f.SetTimestampCompression(DefaultTimestampCompression)
	f.SetValueCompression(DefaultValueCompression)
	f.SetNamesCompression(DefaultNamesCompression)

	return f
}

// MagicNumber returns the magic number bits of the options field.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsBigEndian reports whether the fixed-size fields after the options are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// SetBigEndian selects big-endian (true) or little-endian (false) fixed-size fields.
func (f *Flag) SetBigEndian(big bool) {
	if big {
		f.Options |= EndiannessMask
	} else {
		f.Options &^= EndiannessMask
	}
}

// EndianEngine returns the engine for the fixed-size fields after the options.
func (f Flag) EndianEngine() endian.EndianEngine {
	return endian.ForFlag(f.IsBigEndian())
}

// HasHashCollision reports whether two trace names hash to the same ID, in which
// case readers must resolve names from the names payload.
func (f Flag) HasHashCollision() bool {
	return f.Options&HashCollisionMask != 0
}

// SetHashCollision sets or clears the hash collision marker.
func (f *Flag) SetHashCollision(collided bool) {
	if collided {
		f.Options |= HashCollisionMask
	} else {
		f.Options &^= HashCollisionMask
	}
}

// TimestampEncoding returns the encoding of the timestamp payload.
func (f Flag) TimestampEncoding() format.EncodingType {
	return format.EncodingType(f.Encoding & 0x0F)
}

// SetTimestampEncoding sets the encoding of the timestamp payload.
func (f *Flag) SetTimestampEncoding(enc format.EncodingType) {
	f.Encoding = (f.Encoding &^ 0x0F) | (uint8(enc) & 0x0F)
}

// TimestampCompression returns the codec of the timestamp payload.
func (f Flag) TimestampCompression() format.CompressionType {
	return format.CompressionType(f.Compression & 0x0F)
}

// SetTimestampCompression sets the codec of the timestamp payload.
func (f *Flag) SetTimestampCompression(c format.CompressionType) {
	f.Compression = (f.Compression &^ 0x0F) | (uint8(c) & 0x0F)
}

// ValueCompression returns the codec of the value payload.
func (f Flag) ValueCompression() format.CompressionType {
	return format.CompressionType(f.Compression >> 4)
}

// SetValueCompression sets the codec of the value payload.
func (f *Flag) SetValueCompression(c format.CompressionType) {
	f.Compression = (f.Compression &^ 0xF0) | (uint8(c)&0x0F)<<4
}

// NamesCompression returns the codec of the names payload.
func (f Flag) NamesCompression() format.CompressionType {
	return format.CompressionType(f.NamesCodec & 0x0F)
}

// SetNamesCompression sets the codec of the names payload.
func (f *Flag) SetNamesCompression(c format.CompressionType) {
	f.NamesCodec = uint8(c) & 0x0F
}

// Validate checks the magic number, reserved bits and every encoding field.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicSnapshotV1Opt {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, f.MagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 || f.Encoding&0xF0 != 0 || f.NamesCodec&0xF0 != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}
	if !f.TimestampEncoding().Valid() {
		return fmt.Errorf("%w: timestamp encoding %d", errs.ErrInvalidHeaderFlags, f.TimestampEncoding())
	}
	for _, c := range []format.CompressionType{f.TimestampCompression(), f.ValueCompression(), f.NamesCompression()} {
		if !c.Valid() {
			return fmt.Errorf("%w: compression %d", errs.ErrInvalidHeaderFlags, c)
		}
	}

	return nil
}
