// =============================================================================
// DTSX Flat File Exporter - Document Loader
// =============================================================================
//
// This module turns the raw text of an SSIS package (a .dtsx file) into a
// queryable XML tree. It is also used to re-parse a single connection manager
// subtree, which no longer carries the xmlns:DTS declaration of the package
// root once it has been serialized on its own.
//
// NAMESPACE HANDLING:
//   Every element and attribute of interest is qualified with the DTS prefix.
//   The XML decoder refuses an undeclared prefix, so text that does not declare
//   it is wrapped in a synthetic root element binding DTS to its URI:
//
//     <?xml version="1.0" standalone="yes"?>
//     <root xmlns:DTS="www.microsoft.com/SqlServer/Dts">...fragment...</root>
//
// =============================================================================

package dtsx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// NamespacePrefix is the prefix used by SSIS for all package elements.
	NamespacePrefix = "DTS"

	// NamespaceURI is the URI bound to NamespacePrefix.
	NamespaceURI = "www.microsoft.com/SqlServer/Dts"
)

// utf8BOM is stripped before any inspection of the text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// =============================================================================
// ERRORS
// =============================================================================

// ErrMalformedXML matches any ParseError through errors.Is.
var ErrMalformedXML = errors.New("malformed XML")

// ParseError reports text that is not well-formed XML, even after the
// namespace wrapping. It is fatal for the file being processed only.
type ParseError struct {
	// Source identifies what was being parsed (a file path, or a file path
	// plus the connection manager name for re-parsed subtrees).
	Source string

	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Source, ErrMalformedXML, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedXML.
func (e *ParseError) Is(target error) bool { return target == ErrMalformedXML }

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a parsed package, or a parsed fragment of one.
type Document struct {
	root   *xmlquery.Node
	source string
}

// Source returns the label the document was loaded with.
func (d *Document) Source() string { return d.source }

// =============================================================================
// LOADING
// =============================================================================

// Load parses the whole content of a package file.
//
// A document that declares the DTS prefix itself is parsed as is. Anything
// else goes through the same wrapping as a fragment, after its XML
// declaration has been removed.
func Load(data []byte, source string) (*Document, error) {
	text := string(bytes.TrimPrefix(data, utf8BOM))

	if declaresNamespace(text) {
		return parse(text, source)
	}

	return wrapAndParse(stripDeclaration(text), source)
}

// LoadFragment parses XML text lacking its own xmlns:DTS declaration, such as
// a serialized connection manager node.
func LoadFragment(fragment, source string) (*Document, error) {
	return wrapAndParse(fragment, source)
}

// wrapAndParse places the fragment inside a root element that binds the DTS
// prefix, then parses the result.
func wrapAndParse(fragment, source string) (*Document, error) {
	var b strings.Builder
	b.Grow(len(fragment) + 128)

	b.WriteString(`<?xml version="1.0" standalone="yes"?>`)
	b.WriteString(`<root xmlns:` + NamespacePrefix + `="` + NamespaceURI + `">`)
	b.WriteString(fragment)
	b.WriteString(`</root>`)

	return parse(b.String(), source)
}

func parse(text, source string) (*Document, error) {
	root, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	return &Document{root: root, source: source}, nil
}

// declaresNamespace reports whether the text binds the DTS prefix anywhere.
func declaresNamespace(text string) bool {
	return strings.Contains(text, "xmlns:"+NamespacePrefix+"=")
}

// stripDeclaration removes a leading <?xml ...?> declaration, which cannot
// appear inside the synthetic root.
func stripDeclaration(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "<?xml") {
		return text
	}

	end := strings.Index(trimmed, "?>")
	if end < 0 {
		return text
	}

	return trimmed[end+len("?>"):]
}

// attribute returns the value of a DTS-qualified attribute of n.
// The boolean is false when the attribute is absent.
func attribute(n *xmlquery.Node, local string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Name.Local != local {
			continue
		}
		if attr.Name.Space == NamespacePrefix || attr.NamespaceURI == NamespaceURI {
			return attr.Value, true
		}
	}

	return "", false
}
