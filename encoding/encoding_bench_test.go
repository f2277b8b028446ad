package encoding

import (
	"testing"

	"github.com/arloliu/wavepeek/endian"
	"github.com/arloliu/wavepeek/trace"
)

func clockTimes(n int) []int64 {
	tss := make([]int64, n)
	for i := range tss {
		tss[i] = int64(i) * 5
	}

	return tss
}

func BenchmarkTimestampDeltaEncoder(b *testing.B) {
	tss := clockTimes(4096)
	b.ReportAllocs()
	for b.Loop() {
		enc := NewTimestampDeltaEncoder()
		enc.WriteSlice(tss)
		enc.Finish()
	}
}

func BenchmarkTimestampDeltaDecoder(b *testing.B) {
	tss := clockTimes(4096)
	enc := NewTimestampDeltaEncoder()
	enc.WriteSlice(tss)
	data := append([]byte(nil), enc.Bytes()...)
	enc.Finish()

	dec := NewTimestampDeltaDecoder()
	b.ResetTimer()
	for b.Loop() {
		for range dec.All(data, len(tss)) {
		}
	}
}

func BenchmarkValueEncoder(b *testing.B) {
	values := make([]trace.Value, 4096)
	for i := range values {
		values[i] = trace.Int(int64(i % 2))
	}

	b.ReportAllocs()
	for b.Loop() {
		enc := NewValueEncoder(endian.Little())
		enc.WriteSlice(values)
		enc.Finish()
	}
}
