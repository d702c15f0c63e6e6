// =============================================================================
// DTSX Flat File Exporter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the dtsx2csv CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   dtsx2csv export        - Export the flat file layouts of every .dtsx file
//   dtsx2csv inspect FILE  - Print the layouts of one package
//   dtsx2csv version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Extraction pipeline, reporting, configuration
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/dtsx2csv/cmd"
)

func main() {
	cmd.Execute()
}
