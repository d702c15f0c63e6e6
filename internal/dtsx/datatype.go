package dtsx

import "strings"

// UndefinedType is the label of any code missing from the table.
const UndefinedType = "undefined"

// typeLabels maps SSIS DataType codes to readable labels. The list is not
// exhaustive; see the Microsoft.SqlServer.Dts.Runtime.Wrapper.DataType
// enumeration for the other codes.
var typeLabels = []struct {
	code  string
	label string
}{
	{"4", "float [DT_R4]"},
	{"19", "four-byte unsigned integer [DT_UI4]"},
	{"129", "string [DT_STR]"},
	{"130", "Unicode string [DT_WSTR]"},
}

// HumanType returns the label of a DataType code. The code is trimmed and
// then compared as a string, so "0130" is undefined.
func HumanType(code string) string {
	code = strings.TrimSpace(code)

	for _, t := range typeLabels {
		if t.code == code {
			return t.label
		}
	}

	return UndefinedType
}
