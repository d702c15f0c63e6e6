// =============================================================================
// DTSX Flat File Exporter - Connection Manager Scanner
// =============================================================================
//
// A package declares its connections under DTS:ConnectionManagers. Only the
// managers created as "FLATFILE" describe a file layout, so the scanner keeps
// those and ignores every other kind (OLEDB, ADO.NET, SMTP, ...).
//
// =============================================================================

package dtsx

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// FlatFileCreationName is the lower-cased DTS:CreationName of a flat file
// connection manager.
const FlatFileCreationName = "flatfile"

var connectionManagersExpr = xpath.MustCompile("//DTS:ConnectionManagers/DTS:ConnectionManager")

// ConnectionManager is one DTS:ConnectionManager declaration of a package.
type ConnectionManager struct {
	// Name is the DTS:ObjectName attribute. It names the output file.
	Name string

	// HasName is false when DTS:ObjectName is absent.
	HasName bool

	// CreationName is the DTS:CreationName attribute (the manager kind).
	CreationName string

	node   *xmlquery.Node
	source string
}

// IsFlatFile reports whether the manager is of the flat file kind.
func (cm *ConnectionManager) IsFlatFile() bool {
	return IsFlatFile(cm.CreationName)
}

// IsFlatFile compares a creation name with "flatfile", ignoring case.
// No trimming is done: " FLATFILE" does not match.
func IsFlatFile(creationName string) bool {
	return strings.ToLower(creationName) == FlatFileCreationName
}

// ScanConnectionManagers returns every connection manager of the document,
// in document order. Managers without DTS:CreationName get an empty one.
func ScanConnectionManagers(doc *Document) []*ConnectionManager {
	nodes := xmlquery.QuerySelectorAll(doc.root, connectionManagersExpr)

	managers := make([]*ConnectionManager, 0, len(nodes))
	for _, n := range nodes {
		name, hasName := attribute(n, "ObjectName")
		creationName, _ := attribute(n, "CreationName")

		managers = append(managers, &ConnectionManager{
			Name:         name,
			HasName:      hasName,
			CreationName: creationName,
			node:         n,
			source:       doc.source,
		})
	}

	return managers
}

// ScanFlatFileManagers returns the flat file connection managers of the
// document, in document order.
func ScanFlatFileManagers(doc *Document) []*ConnectionManager {
	var flatFiles []*ConnectionManager
	for _, cm := range ScanConnectionManagers(doc) {
		if cm.IsFlatFile() {
			flatFiles = append(flatFiles, cm)
		}
	}

	return flatFiles
}
