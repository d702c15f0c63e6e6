// =============================================================================
// DTSX Flat File Exporter - Column Extractor
// =============================================================================
//
// The columns of a flat file connection manager live deep inside its
// DTS:ObjectData subtree. The manager is serialized back to text and loaded
// as an independent fragment, so that the //DTS:FlatFileColumn query only
// sees the columns of that manager.
//
// =============================================================================

package dtsx

import (
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/ginjaninja78/dtsx2csv/internal/types"
)

var flatFileColumnsExpr = xpath.MustCompile("//DTS:FlatFileColumn")

// Attribute names read from a DTS:FlatFileColumn element.
const (
	AttrObjectName  = "ObjectName"
	AttrDataType    = "DataType"
	AttrColumnWidth = "ColumnWidth"
)

// ExtractColumns returns the flat file columns of cm, in document order.
// Zero columns is a valid result.
//
// Missing attributes do not fail the extraction: the value is left empty and
// the qualified attribute name is recorded in Column.Missing.
func ExtractColumns(cm *ConnectionManager) ([]types.Column, error) {
	fragment, err := LoadFragment(cm.node.OutputXML(true), cm.source+"#"+cm.Name)
	if err != nil {
		return nil, err
	}

	nodes := xmlquery.QuerySelectorAll(fragment.root, flatFileColumnsExpr)

	columns := make([]types.Column, 0, len(nodes))
	for _, n := range nodes {
		var col types.Column
		var ok bool

		if col.Name, ok = attribute(n, AttrObjectName); !ok {
			col.Missing = append(col.Missing, NamespacePrefix+":"+AttrObjectName)
		}
		if col.DataType, ok = attribute(n, AttrDataType); !ok {
			col.Missing = append(col.Missing, NamespacePrefix+":"+AttrDataType)
		}
		if col.Width, ok = attribute(n, AttrColumnWidth); !ok {
			col.Missing = append(col.Missing, NamespacePrefix+":"+AttrColumnWidth)
		}

		columns = append(columns, col)
	}

	return columns, nil
}
