package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/errs"
)

func TestIndexEntry_RoundTrip(t *testing.T) {
	entry := IndexEntry{
		TraceID:         0x0123456789abcdef,
		BitWidth:        8,
		Count:           42,
		TimestampOffset: 100,
		TimestampLength: 50,
		ValueOffset:     7,
		ValueLength:     84,
	}

	for _, engine := range []endian.EndianEngine{endian.Little(), endian.Big()} {
		data := entry.Bytes(engine)
		require.Len(t, data, IndexEntrySize)

		parsed, err := ParseIndexEntry(data, engine)
		require.NoError(t, err)
		require.Equal(t, entry, parsed)
	}

	start, end := entry.TimestampRange()
	require.Equal(t, 100, start)
	require.Equal(t, 150, end)
	start, end = entry.ValueRange()
	require.Equal(t, 7, start)
	require.Equal(t, 91, end)
}

func TestIndexEntry_AppendTo(t *testing.T) {
	engine := endian.Little()
	a := IndexEntry{TraceID: 1, Count: 2}
	b := IndexEntry{TraceID: 3, Count: 4}

	buf := a.AppendTo(nil, engine)
	buf = b.AppendTo(buf, engine)
	require.Len(t, buf, 2*IndexEntrySize)

	got, err := ParseIndexEntry(buf[IndexEntrySize:], engine)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestParseIndexEntry_Short(t *testing.T) {
	_, err := ParseIndexEntry(make([]byte, IndexEntrySize-1), endian.Little())
	require.ErrorIs(t, err, errs.ErrInvalidIndexEntrySize)
}
