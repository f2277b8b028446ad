package archive

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/format"
	"github.com/arloliu/wavepeek/section"
	"github.com/arloliu/wavepeek/trace"
)

func fixtureTraces() []*trace.Trace {
	clk := trace.New("clk", 1)
	for i := range int64(20) {
		clk.StoreSample(trace.Int(i%2), i*5)
	}

	sel := trace.New("sel", 2)
	sel.StoreSample(trace.Int(0), 0)
	sel.StoreSample(trace.Int(3), 35)
	sel.StoreSample(trace.Int(3), 35)
	sel.StoreSample(trace.Int(-1), 90)

	state := trace.New("state", 8)
	state.StoreSample(trace.Str("idle"), -10)
	state.StoreSample(trace.Str("busy"), 40)
	state.StoreSample(trace.Float(2.5), 41)

	empty := trace.New("empty", 4)

	return []*trace.Trace{clk, sel, state, empty}
}

func requireSameTraces(t *testing.T, want, got []*trace.Trace) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Name(), got[i].Name())
		require.Equal(t, want[i].BitWidth(), got[i].BitWidth())
		require.Equal(t, want[i].Samples(), got[i].Samples(), want[i].Name())
	}
}

func TestRoundTrip_AllLayouts(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	encodings := []format.EncodingType{format.TypeRaw, format.TypeDelta}

	for _, ct := range compressions {
		for _, enc := range encodings {
			for _, big := range []bool{false, true} {
				t.Run(fmt.Sprintf("%s/%s/big=%v", ct, enc, big), func(t *testing.T) {
					opts := []EncoderOption{WithCompression(ct), WithTimestampEncoding(enc), WithUnitTime(5)}
					if big {
						opts = append(opts, WithBigEndian())
					}
					want := fixtureTraces()

					data, err := Encode(want, opts...)
					require.NoError(t, err)

					dec, err := NewDecoder(data)
					require.NoError(t, err)
					require.Equal(t, 4, dec.Len())
					require.Equal(t, int64(5), dec.UnitTime())
					require.Equal(t, []string{"clk", "sel", "state", "empty"}, dec.Names())
					require.Equal(t, big, dec.Header().Flag.IsBigEndian())
					require.Equal(t, enc, dec.Header().Flag.TimestampEncoding())

					got, err := dec.Traces()
					require.NoError(t, err)
					requireSameTraces(t, want, got)
				})
			}
		}
	}
}

func TestDecoder_Trace(t *testing.T) {
	data, err := Encode(fixtureTraces())
	require.NoError(t, err)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.False(t, dec.HasHashCollision())

	sel, err := dec.Trace("sel")
	require.NoError(t, err)
	v, err := sel.Value(50)
	require.NoError(t, err)
	require.Equal(t, trace.Int(3), v)

	_, err = dec.Trace("missing")
	require.ErrorIs(t, err, errs.ErrTraceNotFound)
	_, err = dec.TraceAt(9)
	require.ErrorIs(t, err, errs.ErrTraceNotFound)
}

func TestDecoder_HashCollisionFallback(t *testing.T) {
	data, err := Encode(fixtureTraces())
	require.NoError(t, err)

	h, err := section.ParseHeader(data)
	require.NoError(t, err)
	h.Flag.SetHashCollision(true)
	copy(data, h.Bytes())

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.True(t, dec.HasHashCollision())

	state, err := dec.Trace("state")
	require.NoError(t, err)
	require.Equal(t, 3, state.Len())
}

func TestEncoder_Stats(t *testing.T) {
	enc, err := NewEncoder(WithValueCompression(format.CompressionS2))
	require.NoError(t, err)
	for _, tr := range fixtureTraces() {
		require.NoError(t, enc.Add(tr))
	}
	require.Equal(t, 4, enc.Len())

	_, err = enc.Finish()
	require.NoError(t, err)

	stats := enc.Stats()
	require.Len(t, stats, 3)
	require.Equal(t, "names", stats[0].Payload)
	require.Equal(t, "timestamps", stats[1].Payload)
	require.Equal(t, "values", stats[2].Payload)
	require.Equal(t, format.CompressionS2, stats[2].Algorithm)
	require.Positive(t, stats[1].OriginalSize)
}

func TestEncoder_SetUnitTime(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	enc.SetUnitTime(7)

	data, err := enc.Finish()
	require.NoError(t, err)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, int64(7), dec.UnitTime())
	require.Zero(t, dec.Len())
}

func TestEncoder_Errors(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	require.ErrorIs(t, enc.Add(nil), errs.ErrNilTrace)
	require.ErrorIs(t, enc.Add(trace.New("", 1)), errs.ErrInvalidTraceName)

	require.NoError(t, enc.Add(trace.New("a", 1)))
	require.ErrorIs(t, enc.Add(trace.New("a", 1)), errs.ErrDuplicateTraceName)

	bad := trace.New("bad", 1)
	bad.StoreSample(trace.Value{}, 0)
	require.ErrorIs(t, enc.Add(bad), errs.ErrUnsupportedValue)

	_, err = enc.Finish()
	require.NoError(t, err)
	_, err = enc.Finish()
	require.ErrorIs(t, err, errs.ErrEncoderFinished)
	require.ErrorIs(t, enc.Add(trace.New("b", 1)), errs.ErrEncoderFinished)

	_, err = Encode([]*trace.Trace{trace.New("x", 1), trace.New("x", 1)})
	require.ErrorIs(t, err, errs.ErrDuplicateTraceName)
}

func TestEncoder_InvalidOptions(t *testing.T) {
	tests := []EncoderOption{
		WithCompression(format.CompressionType(0)),
		WithTimestampCompression(format.CompressionType(7)),
		WithValueCompression(format.CompressionType(7)),
		WithNamesCompression(format.CompressionType(7)),
		WithTimestampEncoding(format.EncodingType(3)),
		WithUnitTime(-1),
	}
	for i, opt := range tests {
		_, err := NewEncoder(opt)
		require.Error(t, err, "option %d", i)
	}
}

func TestDecoder_Corrupt(t *testing.T) {
	data, err := Encode(fixtureTraces(), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	_, err = NewDecoder(data[:10])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	bad := append([]byte(nil), data...)
	bad[1] = 0x00
	_, err = NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)

	h, err := section.ParseHeader(data)
	require.NoError(t, err)
	_, err = NewDecoder(data[:h.ValuePayloadOffset-1])
	require.ErrorIs(t, err, errs.ErrInvalidIndexOffset)

	bad = append([]byte(nil), data...)
	bad[h.NamesPayloadOffset] = 0xff
	_, err = NewDecoder(bad)
	require.ErrorIs(t, err, errs.ErrInvalidNamesPayload)

	truncated := data[:len(data)-3]
	dec, err := NewDecoder(truncated)
	if err == nil {
		_, err = dec.Traces()
	}
	require.ErrorIs(t, err, errs.ErrInvalidValuePayload)
}

func TestDecode(t *testing.T) {
	want := fixtureTraces()
	data, err := Encode(want, WithTimestampCompression(format.CompressionZstd))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	requireSameTraces(t, want, got)
}

func TestDecoder_SampleCountBounds(t *testing.T) {
	data, err := Encode(fixtureTraces(),
		WithCompression(format.CompressionNone), WithTimestampEncoding(format.TypeRaw))
	require.NoError(t, err)

	countOff := section.IndexOffset + 12
	tests := []struct {
		name    string
		count   uint32
		wantErr error
	}{
		{"beyond timestamp bytes", 0xFFFFFFF0, errs.ErrInvalidTimestampPayload},
		{"beyond value bytes", 30, errs.ErrInvalidValuePayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := append([]byte(nil), data...)
			binary.LittleEndian.PutUint32(bad[countOff:], tt.count)

			_, err := NewDecoder(bad)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecoder_OwnsPayloads(t *testing.T) {
	want := fixtureTraces()
	data, err := Encode(want, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	dec, err := NewDecoder(data)
	require.NoError(t, err)

	h := dec.Header()
	clear(data[h.TimestampPayloadOffset:])

	got, err := dec.Traces()
	require.NoError(t, err)
	requireSameTraces(t, want, got)
}
