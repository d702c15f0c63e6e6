// =============================================================================
// DTSX Flat File Exporter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (dtsx2csv)
//   ├── exportCmd (dtsx2csv export)
//   ├── inspectCmd (dtsx2csv inspect)
//   └── versionCmd (dtsx2csv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dtsx2csv/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "dtsx2csv",
	Short: "Export SSIS flat file connection manager layouts to .csv files",
	Long: `dtsx2csv documents the flat file layouts declared in SSIS packages.

Visual Studio lets you describe the columns of a flat file connection manager
(name, type, width) but offers no way to export that description. dtsx2csv
reads the .dtsx package, finds every flat file connection manager and writes
one {ObjectName}.csv file per manager:

  #;Start;End;FieldName;FieldType;FieldSize
  2;1;13;Title;Unicode string [DT_WSTR];13
  3;14;19;Gender;Unicode string [DT_WSTR];6

Getting the package: the bin\Development folder of an SSIS project holds a
.ispac file, which is a zip archive. Unzip it and copy Package.dtsx next to
where dtsx2csv runs (or point input_dir at it).

Example Usage:
  dtsx2csv export                       # Export every .dtsx of the current directory
  dtsx2csv export --report report.html  # Also write an HTML report
  dtsx2csv inspect Package.dtsx         # Print the layouts without writing files`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the configuration file. The default file is optional.
func loadConfig() (*config.Config, error) {
	explicit := rootCmd.PersistentFlags().Changed("config")

	cfg, err := config.Load(cfgFile, explicit)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
