package csvwriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/dtsx2csv/internal/types"
)

func TestSerializeHeaderOnly(t *testing.T) {
	assert.Equal(t, "#;Start;End;FieldName;FieldType;FieldSize\n", Serialize(nil))
}

func TestSerialize(t *testing.T) {
	rows := []types.LayoutRow{
		{Index: 2, Start: 1, End: 13, Name: "Title", TypeLabel: "Unicode string [DT_WSTR]", Width: 13},
		{Index: 3, Start: 14, End: 19, Name: "Gender", TypeLabel: "Unicode string [DT_WSTR]", Width: 6},
	}

	want := "#;Start;End;FieldName;FieldType;FieldSize\n" +
		"2;1;13;Title;Unicode string [DT_WSTR];13\n" +
		"3;14;19;Gender;Unicode string [DT_WSTR];6\n"
	assert.Equal(t, want, Serialize(rows))
}

func TestFormatRowZeroWidth(t *testing.T) {
	row := types.LayoutRow{Index: 4, Start: 20, End: 19, Name: "Filler", TypeLabel: "undefined", Width: 0}
	assert.Equal(t, "4;20;19;Filler;undefined;0", FormatRow(row))
}

func TestFormatRowDoesNotQuote(t *testing.T) {
	row := types.LayoutRow{Index: 2, Start: 1, End: 1, Name: `a;"b"`, TypeLabel: "string [DT_STR]", Width: 1}

	line := FormatRow(row)
	assert.Equal(t, `2;1;1;a;"b";string [DT_STR];1`, line)
	assert.Len(t, strings.Split(line, Delimiter), 7)
}
