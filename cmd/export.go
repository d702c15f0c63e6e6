// =============================================================================
// DTSX Flat File Exporter - Export Command
// =============================================================================
//
// This file defines the 'export' command, the batch run over every package of
// the input directory.
//
// COMMAND USAGE:
//   dtsx2csv export [flags]
//
// FLAGS:
//   --input-dir   : Directory scanned for packages (overrides input_dir)
//   --output-dir  : Directory receiving the .csv files (overrides output_dir)
//   --report      : Write an HTML report to this path (overrides report_file)
//   --xlsx        : Also write an .xlsx workbook per manager
//   --dry-run     : Compute and report, write nothing
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover packages in the input directory
//   3. Process each package in turn (a failing one does not stop the batch)
//   4. Print the console report
//   5. Write the HTML report and the summary log when enabled
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/dtsx2csv/internal/config"
	"github.com/ginjaninja78/dtsx2csv/internal/exporter"
	"github.com/ginjaninja78/dtsx2csv/internal/logger"
	"github.com/ginjaninja78/dtsx2csv/internal/report"
	"github.com/ginjaninja78/dtsx2csv/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputDir   string
	outputDir  string
	reportFile string
	xlsxExport bool
	dryRun     bool
)

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the flat file layouts of every package",
	Long: `The export command scans the input directory for .dtsx packages and writes
one {ObjectName}.csv file per flat file connection manager found.

Packages are processed one after the other. A malformed package is reported
and skipped; the others are still exported. An existing file with the same
name is overwritten.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyExportFlags(cmd, cfg)

		return runExport(cfg, dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory scanned for .dtsx packages")
	exportCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory receiving the exported files")
	exportCmd.Flags().StringVar(&reportFile, "report", "", "Write an HTML report to this path")
	exportCmd.Flags().BoolVar(&xlsxExport, "xlsx", false, "Also write an .xlsx workbook per connection manager")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and report without writing any file")
}

// applyExportFlags lets explicitly given flags win over the configuration.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("input-dir") {
		cfg.InputDir = inputDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("report") {
		cfg.ReportFile = reportFile
	}
	if flags.Changed("xlsx") {
		cfg.XLSXExport = xlsxExport
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runExport runs the batch. Only configuration and discovery problems are
// returned as errors; per-file failures are part of the report.
func runExport(cfg *config.Config, dry bool, out, logOut io.Writer) error {
	startTime := time.Now()
	runID := utils.NewRunID()
	log := logger.NewConsoleLogger(logOut, cfg.LogLevel)

	log.Debug("Run %s, input %s, output %s", runID, cfg.InputDir, cfg.OutputDir)

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir)

	inputFiles, err := files.DiscoverInputFiles(cfg.InputPattern)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		report.NoInput(out, absPath(cfg.InputDir), cfg.InputPattern)
		return nil
	}

	log.Info("Found %d file(s) to process", len(inputFiles))

	if !dry {
		if err := files.EnsureOutputDir(); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 2: PROCESS FILES
	// =========================================================================

	exp := exporter.New(exporter.Options{
		OutputDir: cfg.OutputDir,
		XLSX:      cfg.XLSXExport,
		DryRun:    dry,
	}, log)

	results := exp.RunAll(inputFiles)

	// =========================================================================
	// STEP 3: REPORT
	// =========================================================================

	report.Console(out, results, logger.IsTerminal(out))

	if cfg.ReportFile != "" {
		page, err := report.HTML(report.Page{
			RunID:   runID.String(),
			Dir:     absPath(cfg.InputDir),
			Results: results,
		})
		if err != nil {
			log.Error("Failed to render report: %v", err)
		} else if err := os.WriteFile(cfg.ReportFile, page, 0644); err != nil {
			log.Error("Failed to write report %s: %v", cfg.ReportFile, err)
		} else {
			log.Info("Wrote report to %s", cfg.ReportFile)
		}
	}

	if cfg.SummaryLog && !dry {
		summary := buildSummary(results)
		summary.RunID = runID
		summary.StartTime = startTime
		summary.EndTime = time.Now()

		path, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			log.Error("Failed to write summary log: %v", err)
		} else {
			log.Info("Wrote summary log to %s", path)
		}
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildSummary converts results to the summary log structure.
func buildSummary(results []exporter.Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{TotalFiles: len(results)}

	for _, r := range results {
		input := filepath.Base(r.FilePath)

		if r.Error != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    input,
				ErrorMessage: r.Error.Error(),
			})
			continue
		}

		for _, m := range r.Managers {
			if m.Error != nil {
				summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
					InputFile:         input,
					ConnectionManager: m.Name,
					ErrorMessage:      m.Error.Error(),
				})
				continue
			}
			summary.ExportedFiles = append(summary.ExportedFiles, utils.ExportedFileInfo{
				InputFile:         input,
				ConnectionManager: m.Name,
				OutputFile:        m.OutputFile,
				Columns:           len(m.Rows),
				Warnings:          len(m.Warnings),
			})
		}
	}

	return summary
}

func absPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
