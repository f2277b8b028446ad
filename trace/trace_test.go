package trace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/errs"
)

func intTrace(pairs ...int64) *Trace {
	tr := New("", 0)
	for i := 0; i+1 < len(pairs); i += 2 {
		tr.StoreSample(Int(pairs[i+1]), pairs[i])
	}

	return tr
}

func TestTrace_EmptyQueries(t *testing.T) {
	tr := New("sig", 8)

	_, err := tr.StartTime()
	require.ErrorIs(t, err, errs.ErrEmptyTrace)
	require.Contains(t, err.Error(), "sig")

	_, err = tr.StopTime()
	require.ErrorIs(t, err, errs.ErrEmptyTrace)

	_, err = tr.Value(10)
	require.ErrorIs(t, err, errs.ErrEmptyTrace)

	_, err = tr.ExtendDuration(0, 10)
	require.ErrorIs(t, err, errs.ErrEmptyTrace)
}

func TestTrace_Value(t *testing.T) {
	tr := intTrace(10, 1, 20, 2, 30, 3)

	tests := []struct {
		name string
		time int64
		want int64
	}{
		{"before first sample holds first", 0, 1},
		{"at first sample", 10, 1},
		{"between samples", 15, 1},
		{"at middle sample", 20, 2},
		{"at last sample", 30, 3},
		{"after last sample holds last", 100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tr.Value(tt.time)
			require.NoError(t, err)
			require.Equal(t, Int(tt.want), v)
		})
	}
}

func TestTrace_ValueAtBounds(t *testing.T) {
	traces := []*Trace{
		intTrace(0, 7),
		intTrace(0, 0, 10, 5, 20, 3, 30, 0),
		intTrace(3, 1, 3, 2, 9, 4, 9, 5),
	}
	for _, tr := range traces {
		start, err := tr.StartTime()
		require.NoError(t, err)
		stop, err := tr.StopTime()
		require.NoError(t, err)

		first, err := tr.Value(start)
		require.NoError(t, err)
		last, err := tr.Value(stop)
		require.NoError(t, err)

		require.Equal(t, tr.At(tr.Len()-1).Value, last)
		// with same-time samples at the start the later sample wins
		idx := tr.Index(start) - 1
		require.Equal(t, tr.At(idx).Value, first)
	}

	single := intTrace(0, 0, 10, 5)
	v, err := single.Value(0)
	require.NoError(t, err)
	require.Equal(t, single.At(0).Value, v)
}

func TestTrace_Index(t *testing.T) {
	tr := intTrace(0, 0, 5, 1, 5, 2, 10, 3)

	require.Equal(t, 0, tr.Index(-1))
	require.Equal(t, 1, tr.Index(0))
	require.Equal(t, 1, tr.Index(4))
	require.Equal(t, 3, tr.Index(5))
	require.Equal(t, 4, tr.Index(10))
	require.Equal(t, 4, tr.Index(99))
}

func TestTrace_InsertSample(t *testing.T) {
	tr := intTrace(0, 0, 10, 1)

	tr.InsertSample(Sample{Time: 5, Value: Int(9)})
	tr.InsertSample(Sample{Time: 10, Value: Int(8)})
	tr.InsertSample(Sample{Time: -5, Value: Int(7)})

	require.Equal(t, []Sample{
		{-5, Int(7)}, {0, Int(0)}, {5, Int(9)}, {10, Int(1)}, {10, Int(8)},
	}, tr.Samples())

	v, err := tr.Value(10)
	require.NoError(t, err)
	require.Equal(t, Int(8), v, "later same-time sample wins")
}

func TestTrace_FromSamplesSorts(t *testing.T) {
	tr := FromSamples(Sample{10, Int(1)}, Sample{0, Int(0)}, Sample{10, Int(2)})

	require.Equal(t, []Sample{{0, Int(0)}, {10, Int(1)}, {10, Int(2)}}, tr.Samples())
}

func TestTrace_Delay(t *testing.T) {
	tr := New("data", 8)
	tr.StoreSample(Int(1), 0)
	tr.StoreSample(Int(2), 4)

	d := tr.Delay(3)

	require.Equal(t, "data", d.Name())
	require.Equal(t, 8, d.BitWidth())
	require.Equal(t, []Sample{{3, Int(1)}, {7, Int(2)}}, d.Samples())
	require.Equal(t, []Sample{{0, Int(1)}, {4, Int(2)}}, tr.Samples(), "operand untouched")
}

func TestTrace_ExtendDuration(t *testing.T) {
	tr := intTrace(5, 1, 10, 2)

	ext, err := tr.ExtendDuration(0, 20)
	require.NoError(t, err)
	require.Equal(t, []Sample{{0, Int(1)}, {5, Int(1)}, {10, Int(2)}, {20, Int(2)}}, ext.Samples())
	require.Equal(t, 2, tr.Len())

	same, err := tr.ExtendDuration(6, 8)
	require.NoError(t, err)
	require.Equal(t, tr.Samples(), same.Samples())
}

func TestTrace_CollapseRepeats(t *testing.T) {
	tr := intTrace(0, 0, 0, 1, 2, 1, 4, 1, 4, 2, 6, 3)

	times := tr.CollapseTimeRepeats()
	require.Equal(t, []Sample{{0, Int(1)}, {2, Int(1)}, {4, Int(2)}, {6, Int(3)}}, times.Samples())

	values := times.CollapseValueRepeats()
	require.Equal(t, []Sample{{0, Int(1)}, {4, Int(2)}, {6, Int(3)}}, values.Samples())
}

func TestTrace_SampleTimes(t *testing.T) {
	tr := intTrace(0, 0, 5, 1, 10, 2, 15, 3)

	require.Equal(t, []int64{5, 10}, tr.SampleTimes(1, 10))
	require.Empty(t, tr.SampleTimes(20, 30))
}

func TestTrace_CloneIsIndependent(t *testing.T) {
	tr := intTrace(0, 1)
	c := tr.WithName("copy")
	c.StoreSample(Int(2), 5)

	require.Equal(t, 1, tr.Len())
	require.Equal(t, "", tr.Name())
	require.Equal(t, "copy", c.Name())
}

func TestTrace_AllStopsEarly(t *testing.T) {
	tr := intTrace(0, 0, 1, 1, 2, 2)

	var seen []int64
	for s := range tr.All() {
		seen = append(seen, s.Time)
		if s.Time == 1 {
			break
		}
	}
	require.Equal(t, []int64{0, 1}, seen)
}

func TestTrace_ClearKeepsMetadata(t *testing.T) {
	tr := New("bus", 4)
	tr.StoreSample(Int(3), 0)
	tr.Clear()

	require.Equal(t, 0, tr.Len())
	require.Equal(t, "bus", tr.Name())
	require.Equal(t, 4, tr.BitWidth())
}

func TestTrace_TrigTimes(t *testing.T) {
	tr := intTrace(0, 0, 3, 1, 4, 0, 8, 2)

	require.Equal(t, []int64{3, 8}, tr.TrigTimes())
	require.Nil(t, intTrace(0, 0).TrigTimes())
}
