package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"

	"github.com/ginjaninja78/dtsx2csv/internal/exporter"
)

// Page is the content of the HTML report.
type Page struct {
	// RunID identifies the export run.
	RunID string

	// Dir is the directory the packages were read from.
	Dir string

	// Results are the outcomes of the run, in processing order.
	Results []exporter.Result
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Flat file layouts</title>
<style>
body{font-size:1em;margin:10px auto;padding-top:10px;width:80%;}
pre{background-color:LightGray;padding:10px;width:75%;line-height:1.5em;border-radius:10px;}
.failure{color:red;}
.success{color:green;}
.warning{color:darkorange;}
</style>
</head>
<body>
`

const pageFoot = `<hr/>
<footer>Process finished</footer>
</body>
</html>
`

// HTML renders the report as a standalone HTML page.
func HTML(page Page) ([]byte, error) {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAttribute()))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(page)), &body); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(pageHead)
	out.Write(body.Bytes())
	out.WriteString(pageFoot)

	return out.Bytes(), nil
}

// Markdown renders the report as Markdown, with {.success} and {.failure}
// heading attributes.
func Markdown(page Page) string {
	var b strings.Builder

	b.WriteString("# Export flat file connection managers to .csv files\n\n")
	if page.RunID != "" {
		fmt.Fprintf(&b, "Run %s on %s.\n\n", codeSpan(page.RunID), codeSpan(page.Dir))
	}

	for _, r := range page.Results {
		fmt.Fprintf(&b, "## Process %s\n\n", codeSpan(filepath.Base(r.FilePath)))

		if r.Error != nil {
			fmt.Fprintf(&b, "### Failed: %s {.failure}\n\n", codeSpan(r.Error.Error()))
			continue
		}
		if len(r.Managers) == 0 {
			b.WriteString("No flat file connection manager.\n\n")
			continue
		}

		for _, m := range r.Managers {
			fmt.Fprintf(&b, "### Export specification for flat file %s\n\n", codeSpan(m.Name))

			switch {
			case m.Error != nil:
				fmt.Fprintf(&b, "#### Failed: %s {.failure}\n\n", codeSpan(m.Error.Error()))
			case m.OutputFile != "":
				fmt.Fprintf(&b, "#### Create %s {.success}\n\n", codeSpan(m.OutputFile))
			default:
				b.WriteString("#### Computed, not written {.success}\n\n")
			}

			for _, warning := range m.Warnings {
				fmt.Fprintf(&b, "- %s\n", codeSpan(warning))
			}
			if len(m.Warnings) > 0 {
				b.WriteString("\n")
			}

			if m.Content != "" {
				fence := codeFence(m.Content)
				fmt.Fprintf(&b, "%stext\n%s%s\n\n", fence, m.Content, fence)
			}
		}
	}

	return b.String()
}

// codeSpan wraps s in a code span that survives backticks inside s.
func codeSpan(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	delim := strings.Repeat("`", longestRun(s, '`')+1)

	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}

	return delim + s + delim
}

// codeFence returns a fence longer than any backtick run of content.
func codeFence(content string) string {
	n := longestRun(content, '`') + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

func longestRun(s string, c rune) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == c {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
