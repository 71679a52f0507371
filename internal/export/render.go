package export

import (
	"fmt"
	"strings"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/summary"
)

// RenderMonthly formats a monthly summary as a fixed-width text table for
// stdout. Null cells render as "-".
func RenderMonthly(m *summary.Monthly) string {
	widths := make([]int, len(m.Columns)+1)
	widths[0] = len("Month")
	for i, col := range m.Columns {
		widths[i+1] = len(col)
	}
	cells := make([][]string, len(m.Rows))
	for ri, row := range m.Rows {
		line := make([]string, len(m.Columns)+1)
		line[0] = row.Month
		for ci, col := range m.Columns {
			if v, ok := row.Values[col]; ok {
				line[ci+1] = fmt.Sprintf("%.1f", v)
			} else {
				line[ci+1] = "-"
			}
			if len(line[ci+1]) > widths[ci+1] {
				widths[ci+1] = len(line[ci+1])
			}
		}
		cells[ri] = line
	}

	var b strings.Builder
	writeRow := func(line []string) {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteByte('\n')
	}
	header := append([]string{"Month"}, m.Columns...)
	writeRow(header)
	for _, line := range cells {
		writeRow(line)
	}
	return b.String()
}
