// =============================================================================
// DTSX Flat File Exporter - Report Module
// =============================================================================
//
// This module renders the results of an export run for humans. It only
// consumes exporter.Result values; nothing here takes part in the export.
//
// RENDERINGS:
//   - Console: one line per connection manager, green on success and red on
//     failure, followed by a summary.
//   - HTML: a standalone page with the generated
//     content of every file.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/ginjaninja78/dtsx2csv/internal/exporter"
)

// =============================================================================
// TOTALS
// =============================================================================

// Totals summarizes a run.
type Totals struct {
	Files          int
	FailedFiles    int
	Exported       int
	FailedManagers int
	Warnings       int
}

// Summarize counts files, managers and warnings over results.
func Summarize(results []exporter.Result) Totals {
	totals := Totals{Files: len(results)}

	for _, r := range results {
		if r.Error != nil {
			totals.FailedFiles++
			continue
		}
		for _, m := range r.Managers {
			totals.Warnings += len(m.Warnings)
			if m.Error != nil {
				totals.FailedManagers++
			} else {
				totals.Exported++
			}
		}
	}

	return totals
}

// =============================================================================
// CONSOLE RENDERING
// =============================================================================

// NoInput prints the message shown when no package was found in dir.
func NoInput(w io.Writer, dir, pattern string) {
	fmt.Fprintf(w, "There is no %s file in the %s folder.\n", pattern, dir)
	fmt.Fprintln(w, "Nothing to do.")
}

// Console prints the outcome of every file and manager, then the totals.
// colorOutput enables ANSI colours.
func Console(w io.Writer, results []exporter.Result, colorOutput bool) {
	green := painter(color.FgGreen, colorOutput)
	red := painter(color.FgRed, colorOutput)
	yellow := painter(color.FgYellow, colorOutput)

	for _, r := range results {
		fmt.Fprintf(w, "Process %s\n", filepath.Base(r.FilePath))

		if r.Error != nil {
			fmt.Fprintf(w, "  %s %v\n", red("✗"), r.Error)
			continue
		}
		if len(r.Managers) == 0 {
			fmt.Fprintln(w, "  no flat file connection manager")
			continue
		}

		for _, m := range r.Managers {
			switch {
			case m.Error != nil:
				fmt.Fprintf(w, "  %s [%s] %v\n", red("✗"), m.Name, m.Error)
			case m.OutputFile != "":
				fmt.Fprintf(w, "  %s [%s] -> %s (%d columns)\n", green("✓"), m.Name, m.OutputFile, len(m.Rows))
			default:
				fmt.Fprintf(w, "  %s [%s] %d columns (not written)\n", green("✓"), m.Name, len(m.Rows))
			}

			for _, warning := range m.Warnings {
				fmt.Fprintf(w, "    %s %s\n", yellow("!"), warning)
			}
		}
	}

	totals := Summarize(results)
	fmt.Fprintln(w, "\n=== Export Complete ===")
	fmt.Fprintf(w, "Files:           %d\n", totals.Files)
	fmt.Fprintf(w, "Failed files:    %d\n", totals.FailedFiles)
	fmt.Fprintf(w, "Exported:        %d\n", totals.Exported)
	fmt.Fprintf(w, "Failed managers: %d\n", totals.FailedManagers)
	fmt.Fprintf(w, "Warnings:        %d\n", totals.Warnings)
}

// painter returns a function colouring its argument, or leaving it as is.
func painter(attr color.Attribute, enabled bool) func(string) string {
	if !enabled {
		return func(s string) string { return s }
	}

	c := color.New(attr)
	c.EnableColor()
	return func(s string) string { return c.Sprint(s) }
}
