package section

import (
	"encoding/binary"

	"github.com/arloliu/wavepeek/errs"
)

// Header is the fixed 32-byte snapshot header.
//
// Layout:
//
//	0-1   options (little-endian)
//	2     timestamp encoding
//	3     timestamp / value compression
//	4     names compression
//	5-7   reserved
//	8-11  trace count
//	12-15 names payload offset
//	16-19 timestamp payload offset
//	20-23 value payload offset
//	24-31 unit time, 0 when unknown
//
// The index starts at IndexOffset and holds TraceCount entries. Each payload ends
// where the next one starts; the value payload runs to the end of the data.
type Header struct {
	Flag                   Flag
	TraceCount             uint32
	NamesPayloadOffset     uint32
	TimestampPayloadOffset uint32
	ValuePayloadOffset     uint32
	UnitTime               int64
}

// NewHeader returns a header with the default flag and no traces.
func NewHeader() *Header {
	return &Header{Flag: NewFlag()}
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.EndianEngine()

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.Encoding
	b[3] = h.Flag.Compression
	b[4] = h.Flag.NamesCodec
	engine.PutUint32(b[8:12], h.TraceCount)
	engine.PutUint32(b[12:16], h.NamesPayloadOffset)
	engine.PutUint32(b[16:20], h.TimestampPayloadOffset)
	engine.PutUint32(b[20:24], h.ValuePayloadOffset)
	engine.PutUint64(b[24:32], uint64(h.UnitTime)) //nolint:gosec

	return b
}

// Parse reads the header from exactly HeaderSize bytes and validates the flag.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag = Flag{
		Options:     binary.LittleEndian.Uint16(data[0:2]),
		Encoding:    data[2],
		Compression: data[3],
		NamesCodec:  data[4],
	}
	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if data[5] != 0 || data[6] != 0 || data[7] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.EndianEngine()
	h.TraceCount = engine.Uint32(data[8:12])
	h.NamesPayloadOffset = engine.Uint32(data[12:16])
	h.TimestampPayloadOffset = engine.Uint32(data[16:20])
	h.ValuePayloadOffset = engine.Uint32(data[20:24])
	h.UnitTime = int64(engine.Uint64(data[24:32])) //nolint:gosec

	return nil
}

// ValidateOffsets checks that the index and payloads are ordered and fit in a
// snapshot of size bytes.
func (h *Header) ValidateOffsets(size int) error {
	indexEnd := uint64(IndexOffset) + uint64(h.TraceCount)*IndexEntrySize
	names := uint64(h.NamesPayloadOffset)
	ts := uint64(h.TimestampPayloadOffset)
	vals := uint64(h.ValuePayloadOffset)

	if names != indexEnd || ts < names || vals < ts || vals > uint64(size) { //nolint:gosec
		return errs.ErrInvalidIndexOffset
	}

	return nil
}

// ParseHeader parses the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
