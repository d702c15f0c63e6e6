// =============================================================================
// DTSX Flat File Exporter - Row Serializer
// =============================================================================
//
// This module renders the layout rows of one connection manager as the text
// of its .csv file.
//
// OUTPUT FORMAT:
//   #;Start;End;FieldName;FieldType;FieldSize
//   2;1;13;Title;Unicode string [DT_WSTR];13
//   3;14;19;Gender;Unicode string [DT_WSTR];6
//
// KNOWN LIMITATION:
//   Values are written verbatim, without quoting. A field name containing a
//   semicolon produces a row with an extra column.
//
// =============================================================================

package csvwriter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/dtsx2csv/internal/types"
)

const (
	// Header is the first line of every exported file.
	Header = "#;Start;End;FieldName;FieldType;FieldSize"

	// Delimiter separates the fields of a line.
	Delimiter = ";"

	// LineSeparator terminates every line, the last one included.
	LineSeparator = "\n"
)

// Serialize returns the header line followed by one line per row.
func Serialize(rows []types.LayoutRow) string {
	var b strings.Builder

	b.WriteString(Header)
	b.WriteString(LineSeparator)

	for _, row := range rows {
		b.WriteString(FormatRow(row))
		b.WriteString(LineSeparator)
	}

	return b.String()
}

// FormatRow renders a single row, without line separator.
func FormatRow(row types.LayoutRow) string {
	return strings.Join([]string{
		strconv.Itoa(row.Index),
		strconv.Itoa(row.Start),
		strconv.Itoa(row.End),
		row.Name,
		row.TypeLabel,
		strconv.Itoa(row.Width),
	}, Delimiter)
}
