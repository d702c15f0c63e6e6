// =============================================================================
// DTSX Flat File Exporter - Workbook Writer
// =============================================================================
//
// This module writes the layout rows of a connection manager to an XLSX
// workbook, for teams whose technical documentation lives in spreadsheets.
// The sheet holds exactly the same cells as the .csv file: the header on row
// 1 and one column per field, numbers stored as numbers.
//
// SHEET NAMING:
//   Excel limits sheet names to 31 characters and forbids : \ / ? * [ ]
//   The connection manager name is cleaned up to fit.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/dtsx2csv/internal/types"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// maxSheetNameLength is the Excel limit for sheet names.
const maxSheetNameLength = 31

// defaultSheetName is used when nothing is left of the requested name.
const defaultSheetName = "Layout"

// headerCells mirrors csvwriter.Header.
var headerCells = []interface{}{"#", "Start", "End", "FieldName", "FieldType", "FieldSize"}

// =============================================================================
// WRITING
// =============================================================================

// Write saves the rows to a new workbook at path, overwriting any existing
// file. The single sheet is named after sheetName.
func Write(path, sheetName string, rows []types.LayoutRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(sheetName)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	header := headerCells
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		values := []interface{}{row.Index, row.Start, row.End, row.Name, row.TypeLabel, row.Width}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Field names and type labels are the wide columns.
	if err := f.SetColWidth(sheet, "D", "E", 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// SheetName cleans name up into a valid Excel sheet name.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)

	// Excel also rejects names starting or ending with an apostrophe.
	name = strings.Trim(name, "' ")

	for utf8.RuneCountInString(name) > maxSheetNameLength {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}

	if name == "" {
		return defaultSheetName
	}

	return name
}
