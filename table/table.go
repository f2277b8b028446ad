package table

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/trace"
)

// Placeholder is the cell text for columns without a trace or without samples.
const Placeholder = ""

// TimeHeader is the header of the leading time column.
const TimeHeader = "Time"

// Column names one table column and the trace it reads from. A nil Trace keeps
// the column in place and fills it with Placeholder.
type Column struct {
	Name  string
	Trace *trace.Trace
}

// FromTraces builds one column per trace, named after the trace.
func FromTraces(traces ...*trace.Trace) []Column {
	cols := make([]Column, len(traces))
	for i, tr := range traces {
		cols[i].Trace = tr
		if tr != nil {
			cols[i].Name = tr.Name()
		}
	}

	return cols
}

// Row is the value of every column at one time.
type Row struct {
	Time   int64
	Values []string
}

// Table is the exported snapshot. Header starts with TimeHeader followed by the
// column names; every Row has one value per column.
type Table struct {
	Header []string
	Rows   []Row
}

// Export samples every column at the union of their sample times.
//
// The time set holds every sample time within [start, stop] of every column, the
// two bounds themselves and, when a step is set, the grid start, start+step, ...
// up to stop. Bounds default to the earliest start and latest stop of the
// non-empty columns.
//
// Parameters:
//   - cols: columns in display order; nil or empty traces render as Placeholder
//   - opts: WithStart, WithStop, WithStep, WithFormatter
//
// Returns:
//   - *Table: header and ascending rows
//   - error: ErrNoTraces when bounds must be derived but no column has samples,
//     ErrInvalidWindow or ErrInvalidStep for bad options
func Export(cols []Column, opts ...Option) (*Table, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	start, stop, err := bounds(cols, cfg)
	if err != nil {
		return nil, err
	}

	times := map[int64]struct{}{start: {}, stop: {}}
	for _, col := range cols {
		if col.Trace == nil {
			continue
		}
		for _, tm := range col.Trace.SampleTimes(start, stop) {
			times[tm] = struct{}{}
		}
	}
	if cfg.step > 0 {
		for tm := start; tm <= stop; tm += cfg.step {
			times[tm] = struct{}{}
		}
	}

	tbl := &Table{Header: make([]string, 0, len(cols)+1)}
	tbl.Header = append(tbl.Header, TimeHeader)
	for _, col := range cols {
		tbl.Header = append(tbl.Header, col.Name)
	}

	sorted := slices.Sorted(maps.Keys(times))
	tbl.Rows = make([]Row, 0, len(sorted))
	for _, tm := range sorted {
		row := Row{Time: tm, Values: make([]string, len(cols))}
		for i, col := range cols {
			row.Values[i] = cell(col.Trace, tm, cfg.format)
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

func cell(tr *trace.Trace, tm int64, format Formatter) string {
	if tr == nil {
		return Placeholder
	}
	v, err := tr.Value(tm)
	if err != nil {
		return Placeholder
	}

	return format(v)
}

func bounds(cols []Column, cfg *config) (int64, int64, error) {
	var (
		first, last int64
		found       bool
	)
	for _, col := range cols {
		if col.Trace == nil || col.Trace.Len() == 0 {
			continue
		}
		s, _ := col.Trace.StartTime()
		e, _ := col.Trace.StopTime()
		if !found {
			first, last, found = s, e, true
			continue
		}
		first, last = min(first, s), max(last, e)
	}

	if (cfg.start == nil || cfg.stop == nil) && !found {
		return 0, 0, errs.ErrNoTraces
	}
	if cfg.start != nil {
		first = *cfg.start
	}
	if cfg.stop != nil {
		last = *cfg.stop
	}
	if first > last {
		return 0, 0, fmt.Errorf("%w: [%d, %d]", errs.ErrInvalidWindow, first, last)
	}

	return first, last, nil
}
