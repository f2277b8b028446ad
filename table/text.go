package table

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// WriteText renders the table as aligned plain text: a header line, a dashed rule
// and one line per row. Columns whose cells are all numbers are right-aligned,
// the rest left-aligned. Widths are measured in terminal cells so wide runes line
// up.
func (t *Table) WriteText(w io.Writer) error {
	grid := t.cells()
	if len(grid) == 0 {
		return nil
	}

	ncol := len(grid[0])
	widths := make([]int, ncol)
	numeric := make([]bool, ncol)
	for c := range ncol {
		numeric[c] = true
		for r, line := range grid {
			widths[c] = max(widths[c], runewidth.StringWidth(line[c]))
			if r > 0 && !isNumber(line[c]) {
				numeric[c] = false
			}
		}
	}

	var buf bytes.Buffer
	for r, line := range grid {
		writeLine(&buf, line, widths, numeric)
		if r == 0 {
			rule := make([]string, ncol)
			for c, wd := range widths {
				rule[c] = strings.Repeat("-", wd)
			}
			writeLine(&buf, rule, widths, numeric)
		}
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// String returns the WriteText rendering.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.WriteText(&sb)

	return sb.String()
}

func (t *Table) cells() [][]string {
	if len(t.Header) == 0 {
		return nil
	}

	grid := make([][]string, 0, len(t.Rows)+1)
	grid = append(grid, t.Header)
	for _, row := range t.Rows {
		line := make([]string, 0, len(row.Values)+1)
		line = append(line, strconv.FormatInt(row.Time, 10))
		line = append(line, row.Values...)
		grid = append(grid, line)
	}

	return grid
}

func writeLine(buf *bytes.Buffer, line []string, widths []int, numeric []bool) {
	var sb strings.Builder
	for c, text := range line {
		if c > 0 {
			sb.WriteString(columnGap)
		}
		if numeric[c] {
			sb.WriteString(runewidth.FillLeft(text, widths[c]))
		} else {
			sb.WriteString(runewidth.FillRight(text, widths[c]))
		}
	}
	buf.WriteString(strings.TrimRight(sb.String(), " "))
	buf.WriteByte('\n')
}

func isNumber(s string) bool {
	if s == Placeholder {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}
