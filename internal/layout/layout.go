// =============================================================================
// DTSX Flat File Exporter - Layout Calculator
// =============================================================================
//
// This module turns the ordered column list of a flat file connection manager
// into fixed-width byte ranges.
//
// OFFSET RULES:
//   - The first field starts at offset 1.
//   - end = start + width - 1
//   - The next field starts at end + 1 (no gap, no overlap).
//   - A width of 0 gives end = start - 1, and the next field starts at the
//     same offset as the empty one.
//
// ROW NUMBERING:
//   The header is line 1 of the exported file, so the first column is
//   numbered 2, the second 3, and so on.
//
// =============================================================================

package layout

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/dtsx2csv/internal/dtsx"
	"github.com/ginjaninja78/dtsx2csv/internal/types"
)

// firstRowIndex is the number of the line holding the first column.
const firstRowIndex = 2

// Calculate computes the layout rows of the columns, in input order.
// Type codes are translated with dtsx.HumanType.
func Calculate(columns []types.Column) []types.LayoutRow {
	rows := make([]types.LayoutRow, 0, len(columns))
	cursor := 1

	for i, col := range columns {
		width := ParseWidth(col.Width)
		start := cursor
		end := start + width - 1

		rows = append(rows, types.LayoutRow{
			Index:     i + firstRowIndex,
			Start:     start,
			End:       end,
			Name:      col.Name,
			TypeLabel: dtsx.HumanType(col.DataType),
			Width:     width,
		})

		cursor = end + 1
	}

	return rows
}

// ParseWidth reads a DTS:ColumnWidth value leniently.
//
// Leading whitespace and an optional sign are accepted, then the longest run
// of decimal digits is used and anything after it is ignored ("12px" is 12).
// Text without leading digits, or a value too large for an int, yields 0.
func ParseWidth(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}
