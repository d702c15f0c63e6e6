// =============================================================================
// DTSX Flat File Exporter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - dtsx
//   - layout
//   - csvwriter
//   - xlsxwriter
//   - exporter
//
// =============================================================================

package types

// =============================================================================
// PACKAGE DECLARATIONS
// =============================================================================

// Column is one DTS:FlatFileColumn declaration, as read from the package.
// Values are kept as they appear in the source; conversion happens in the
// layout and translation stages.
type Column struct {
	// Name is the DTS:ObjectName attribute (the field name).
	Name string

	// DataType is the DTS:DataType attribute, a string-encoded numeric code.
	DataType string

	// Width is the DTS:ColumnWidth attribute, a string-encoded integer.
	Width string

	// Missing lists the attributes that were absent on the node and were
	// substituted with an empty value.
	Missing []string
}

// =============================================================================
// DERIVED LAYOUT
// =============================================================================

// LayoutRow is one line of the exported layout description.
type LayoutRow struct {
	// Index is the line number in the exported file. The header occupies
	// line 1, so the first column is 2.
	Index int

	// Start is the 1-based offset of the first character of the field.
	Start int

	// End is the offset of the last character (Start + Width - 1).
	End int

	// Name is the field name.
	Name string

	// TypeLabel is the human readable data type.
	TypeLabel string

	// Width is the declared column width.
	Width int
}
