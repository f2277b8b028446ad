package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/trace"
)

func fixture() (*trace.Trace, *trace.Trace) {
	a := trace.New("a", 1)
	a.StoreSample(trace.Int(0), 0)
	a.StoreSample(trace.Int(1), 2)
	a.StoreSample(trace.Int(0), 4)

	b := trace.New("b", 4)
	b.StoreSample(trace.Str("idle"), 1)
	b.StoreSample(trace.Str("busy"), 3)

	return a, b
}

func times(tbl *Table) []int64 {
	out := make([]int64, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = r.Time
	}

	return out
}

func TestExport(t *testing.T) {
	a, b := fixture()
	cols := append(FromTraces(a, b), Column{Name: "c"})

	tbl, err := Export(cols)
	require.NoError(t, err)
	require.Equal(t, []string{"Time", "a", "b", "c"}, tbl.Header)
	require.Equal(t, []Row{
		{Time: 0, Values: []string{"0", "idle", ""}},
		{Time: 1, Values: []string{"0", "idle", ""}},
		{Time: 2, Values: []string{"1", "idle", ""}},
		{Time: 3, Values: []string{"1", "busy", ""}},
		{Time: 4, Values: []string{"0", "busy", ""}},
	}, tbl.Rows)
}

func TestExport_Options(t *testing.T) {
	a, b := fixture()

	tests := []struct {
		name string
		opts []Option
		want []int64
	}{
		{"step grid", []Option{WithStep(3)}, []int64{0, 1, 2, 3, 4}},
		{"bounds", []Option{WithStart(1), WithStop(3)}, []int64{1, 2, 3}},
		{"bounds outside samples", []Option{WithStart(-2), WithStop(6)}, []int64{-2, 0, 1, 2, 3, 4, 6}},
		{"bounded step", []Option{WithStart(5), WithStop(9), WithStep(2)}, []int64{5, 7, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Export(FromTraces(a, b), tt.opts...)
			require.NoError(t, err)
			require.Equal(t, tt.want, times(tbl))
		})
	}
}

func TestExport_StepOnly(t *testing.T) {
	a, _ := fixture()

	tbl, err := Export(FromTraces(a), WithStep(3))
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 3, 4}, times(tbl))
}

func TestExport_Formatter(t *testing.T) {
	a, _ := fixture()

	hex := func(v trace.Value) string {
		n, _ := v.AsInt()
		return fmt.Sprintf("0x%02x", n)
	}
	tbl, err := Export(FromTraces(a), WithFormatter(hex))
	require.NoError(t, err)
	require.Equal(t, []string{"0x00"}, tbl.Rows[0].Values)
	require.Equal(t, []string{"0x01"}, tbl.Rows[1].Values)
}

func TestExport_Placeholders(t *testing.T) {
	a, _ := fixture()
	empty := trace.New("empty", 1)

	tbl, err := Export(FromTraces(a, empty, nil))
	require.NoError(t, err)
	require.Equal(t, []string{"Time", "a", "empty", ""}, tbl.Header)
	for _, row := range tbl.Rows {
		require.Equal(t, Placeholder, row.Values[1])
		require.Equal(t, Placeholder, row.Values[2])
	}
}

func TestExport_Errors(t *testing.T) {
	a, _ := fixture()

	_, err := Export(nil)
	require.ErrorIs(t, err, errs.ErrNoTraces)

	_, err = Export([]Column{{Name: "x"}}, WithStart(0))
	require.ErrorIs(t, err, errs.ErrNoTraces)

	_, err = Export(FromTraces(a), WithStep(-1))
	require.ErrorIs(t, err, errs.ErrInvalidStep)

	_, err = Export(FromTraces(a), WithStart(5), WithStop(1))
	require.ErrorIs(t, err, errs.ErrInvalidWindow)
}

func TestExport_ExplicitBoundsWithoutTraces(t *testing.T) {
	tbl, err := Export([]Column{{Name: "x"}}, WithStart(0), WithStop(2), WithStep(1))
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2}, times(tbl))
	require.Equal(t, []string{Placeholder}, tbl.Rows[0].Values)
}

func TestTable_WriteText(t *testing.T) {
	a, b := fixture()
	tbl, err := Export(append(FromTraces(a, b), Column{Name: "c"}))
	require.NoError(t, err)

	want := strings.Join([]string{
		"Time  a  b     c",
		"----  -  ----  -",
		"   0  0  idle",
		"   1  0  idle",
		"   2  1  idle",
		"   3  1  busy",
		"   4  0  busy",
		"",
	}, "\n")
	require.Equal(t, want, tbl.String())
}

func TestTable_WriteTextWideRunes(t *testing.T) {
	s := trace.New("state", 8)
	s.StoreSample(trace.Str("待機"), 0)
	s.StoreSample(trace.Str("run"), 10)

	tbl, err := Export(FromTraces(s))
	require.NoError(t, err)

	want := strings.Join([]string{
		"Time  state",
		"----  -----",
		"   0  待機",
		"  10  run",
		"",
	}, "\n")
	require.Equal(t, want, tbl.String())
}

func TestTable_WriteTextEmpty(t *testing.T) {
	require.Empty(t, (&Table{}).String())
}
