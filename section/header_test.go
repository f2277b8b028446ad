package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
)

func sampleHeader(big bool) *Header {
	h := NewHeader()
	h.Flag.SetBigEndian(big)
	h.Flag.SetValueCompression(format.CompressionLZ4)
	h.Flag.SetNamesCompression(format.CompressionS2)
	h.TraceCount = 3
	h.NamesPayloadOffset = IndexOffset + 3*IndexEntrySize
	h.TimestampPayloadOffset = h.NamesPayloadOffset + 12
	h.ValuePayloadOffset = h.TimestampPayloadOffset + 40
	h.UnitTime = 5

	return h
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		original := sampleHeader(big)
		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, *original, parsed)
	}
}

func TestHeader_OptionsAlwaysLittleEndian(t *testing.T) {
	data := sampleHeader(true).Bytes()

	require.Equal(t, byte(0x12), data[0], "magic low byte with the big-endian bit")
	require.Equal(t, byte(0xEC), data[1])
	require.Equal(t, byte(format.CompressionS2), data[4], "names codec byte")
	require.Equal(t, []byte{0, 0, 0, 3}, data[8:12])
}

func TestHeader_ParseErrors(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	var h Header
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)

	data := sampleHeader(false).Bytes()
	data[1] = 0xAB
	_, err = ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)

	data = sampleHeader(false).Bytes()
	data[6] = 1
	_, err = ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
}

func TestHeader_ValidateOffsets(t *testing.T) {
	h := sampleHeader(false)
	size := int(h.ValuePayloadOffset) + 10

	require.NoError(t, h.ValidateOffsets(size))
	require.NoError(t, h.ValidateOffsets(int(h.ValuePayloadOffset)))
	require.ErrorIs(t, h.ValidateOffsets(int(h.ValuePayloadOffset)-1), errs.ErrInvalidIndexOffset)

	bad := *h
	bad.NamesPayloadOffset++
	require.ErrorIs(t, bad.ValidateOffsets(size), errs.ErrInvalidIndexOffset)

	bad = *h
	bad.TimestampPayloadOffset = bad.ValuePayloadOffset + 1
	require.ErrorIs(t, bad.ValidateOffsets(size), errs.ErrInvalidIndexOffset)

	bad = *h
	bad.TraceCount = 1 << 30
	require.ErrorIs(t, bad.ValidateOffsets(size), errs.ErrInvalidIndexOffset)
}
