package compress

import (
	"bytes"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// clockPayload resembles a delta-encoded timestamp column: mostly zero bytes.
func clockPayload(n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i += 64 {
		out[i] = byte(i / 64)
	}

	return out
}

func randomPayload(n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(42))
	_, _ = rng.Read(out)

	return out
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"tiny":     []byte("x"),
		"text":     bytes.Repeat([]byte("clk sel out "), 50),
		"clock":    clockPayload(8192),
		"random":   randomPayload(4096),
		"one-byte": {0},
	}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		for name, data := range payloads {
			t.Run(fmt.Sprintf("%s/%s", ct, name), func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				got, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, data, got)
			})
		}
	}
}

func TestCodecs_EmptyPayload(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err, ct.String())
		got, err := codec.Decompress(packed)
		require.NoError(t, err, ct.String())
		require.Empty(t, got, ct.String())
	}
}

func TestCodecs_CompressRegularData(t *testing.T) {
	data := clockPayload(16384)
	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(packed), len(data)/4, ct.String())
	}
}

func TestCodecs_InvalidData(t *testing.T) {
	tests := []struct {
		ct   format.CompressionType
		data []byte
	}{
		{format.CompressionZstd, []byte("definitely not a zstd frame")},
		{format.CompressionS2, []byte{0xff, 0xff, 0xff}},
		{format.CompressionLZ4, []byte{0x08, 'a'}},
		{format.CompressionLZ4, []byte{0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			codec, err := GetCodec(tt.ct)
			require.NoError(t, err)

			_, err = codec.Decompress(tt.data)
			require.Error(t, err)
		})
	}
}

func TestLZ4_StoresIncompressiblePayload(t *testing.T) {
	data := randomPayload(512)

	packed, err := NewLZ4Compressor().Compress(data)
	require.NoError(t, err)
	require.Equal(t, len(data)+2, len(packed), "uvarint header plus the raw bytes")

	got, err := NewLZ4Compressor().Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestCodecs_Concurrent(t *testing.T) {
	data := clockPayload(4096)

	var wg sync.WaitGroup
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					packed, err := codec.Compress(data)
					if !assert.NoError(t, err) {
						return
					}
					got, err := codec.Decompress(packed)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, data, got)
				}
			}()
		}
	}
	wg.Wait()
}

func TestCompressWithStats(t *testing.T) {
	data := clockPayload(4096)

	packed, stats, err := CompressWithStats(format.CompressionS2, "timestamps", data)
	require.NoError(t, err)
	require.Equal(t, "timestamps", stats.Payload)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, len(data), stats.OriginalSize)
	require.Equal(t, len(packed), stats.CompressedSize)
	require.Greater(t, stats.SpaceSavings(), 50.0)

	_, _, err = CompressWithStats(format.CompressionType(9), "values", data)
	require.Error(t, err)
}

func TestStats_Ratio(t *testing.T) {
	require.Zero(t, Stats{}.Ratio())
	require.Zero(t, Stats{}.SpaceSavings())

	s := Stats{OriginalSize: 200, CompressedSize: 50}
	require.InDelta(t, 0.25, s.Ratio(), 1e-12)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-12)
}
