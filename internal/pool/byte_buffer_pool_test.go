package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.MustWrite([]byte("wave"))
	require.NoError(t, bb.WriteByte('-'))
	n, err := bb.Write([]byte("peek"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.Equal(t, []byte("wave-peek"), bb.Bytes())
	require.Equal(t, 9, bb.Len())

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(9), written)
	require.Equal(t, "wave-peek", out.String())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("data"))
	capBefore := bb.Cap()

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		fill     int
		request  int
		minAfter int
	}{
		{"enough room", 64, 10, 20, 64},
		{"small buffer grows by default size", 16, 16, 1, 16 + PayloadBufferDefaultSize},
		{"large request wins", 16, 16, 3 * PayloadBufferDefaultSize, 16 + 3*PayloadBufferDefaultSize},
		{"large buffer grows by quarter", 8 * PayloadBufferDefaultSize, 8 * PayloadBufferDefaultSize, 1, 10 * PayloadBufferDefaultSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(tt.initial)
			bb.MustWrite(make([]byte, tt.fill))

			bb.Grow(tt.request)
			require.GreaterOrEqual(t, bb.Cap(), tt.minAfter)
			require.Equal(t, tt.fill, bb.Len(), "grow keeps content")
			require.GreaterOrEqual(t, bb.Cap()-bb.Len(), tt.request)
		})
	}
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWrite([]byte("abc"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	big := NewByteBuffer(128)
	p.Put(big)
	p.Put(nil)
}

func TestPayloadPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				bb := GetPayloadBuffer()
				bb.MustWrite([]byte("sample"))
				assert.Equal(t, 6, bb.Len())
				PutPayloadBuffer(bb)
			}
		}()
	}
	wg.Wait()
}
