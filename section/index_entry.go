package section

import (
	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
)

// IndexEntry locates one trace inside the decompressed timestamp and value
// payloads.
//
// Layout:
//
//	0-7   trace ID (xxHash64 of the name)
//	8-11  bit width
//	12-15 sample count
//	16-19 timestamp offset
//	20-23 timestamp length
//	24-27 value offset
//	28-31 value length
type IndexEntry struct {
	TraceID         uint64
	BitWidth        uint32
	Count           uint32
	TimestampOffset uint32
	TimestampLength uint32
	ValueOffset     uint32
	ValueLength     uint32
}

// AppendTo appends the serialized entry to buf.
func (e IndexEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.TraceID)
	buf = engine.AppendUint32(buf, e.BitWidth)
	buf = engine.AppendUint32(buf, e.Count)
	buf = engine.AppendUint32(buf, e.TimestampOffset)
	buf = engine.AppendUint32(buf, e.TimestampLength)
	buf = engine.AppendUint32(buf, e.ValueOffset)

	return engine.AppendUint32(buf, e.ValueLength)
}

// Bytes serializes the entry.
func (e IndexEntry) Bytes(engine endian.EndianEngine) []byte {
	return e.AppendTo(make([]byte, 0, IndexEntrySize), engine)
}

// TimestampRange returns the entry's slice bounds in the timestamp payload.
func (e IndexEntry) TimestampRange() (int, int) {
	return int(e.TimestampOffset), int(e.TimestampOffset) + int(e.TimestampLength)
}

// ValueRange returns the entry's slice bounds in the value payload.
func (e IndexEntry) ValueRange() (int, int) {
	return int(e.ValueOffset), int(e.ValueOffset) + int(e.ValueLength)
}

// ParseIndexEntry reads one entry from the start of data.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return IndexEntry{
		TraceID:         engine.Uint64(data[0:8]),
		BitWidth:        engine.Uint32(data[8:12]),
		Count:           engine.Uint32(data[12:16]),
		TimestampOffset: engine.Uint32(data[16:20]),
		TimestampLength: engine.Uint32(data[20:24]),
		ValueOffset:     engine.Uint32(data[24:28]),
		ValueLength:     engine.Uint32(data[28:32]),
	}, nil
}
