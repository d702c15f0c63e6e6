// =============================================================================
// DTSX Flat File Exporter - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which prints the layouts of a
// single package without writing anything.
//
// COMMAND USAGE:
//   dtsx2csv inspect Package.dtsx
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dtsx2csv/internal/csvwriter"
	"github.com/ginjaninja78/dtsx2csv/internal/dtsx"
	"github.com/ginjaninja78/dtsx2csv/internal/layout"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the flat file layouts of one package",
	Long: `The inspect command prints, for every flat file connection manager of the
package, the content its .csv file would have. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// runInspect loads one package and prints each of its layouts.
func runInspect(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read package: %w", err)
	}

	doc, err := dtsx.Load(data, path)
	if err != nil {
		return err
	}

	managers := dtsx.ScanFlatFileManagers(doc)
	if len(managers) == 0 {
		fmt.Fprintf(out, "No flat file connection manager in %s\n", path)
		return nil
	}

	for i, cm := range managers {
		if i > 0 {
			fmt.Fprintln(out)
		}

		columns, err := dtsx.ExtractColumns(cm)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "== %s ==\n", cm.Name)
		fmt.Fprint(out, csvwriter.Serialize(layout.Calculate(columns)))
	}

	return nil
}
