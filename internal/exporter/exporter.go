// =============================================================================
// DTSX Flat File Exporter - Exporter Module
// =============================================================================
//
// This module contains the export pipeline for a single package file, from
// XML loading to the written .csv files.
//
// EXPORT PIPELINE:
//   1. Load the package into an XML tree
//   2. Scan the flat file connection managers
//   3. For each of them:
//      a. Extract its columns
//      b. Compute the fixed-width layout
//      c. Serialize the rows
//      d. Write {ObjectName}.csv (and {ObjectName}.xlsx when enabled)
//
// FAILURE ISOLATION:
//   A malformed package fails that file only. A manager that cannot be
//   written fails that manager only. Every failure ends up in the Result, so
//   the presentation layer can report it.
//
// =============================================================================

package exporter

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/dtsx2csv/internal/csvwriter"
	"github.com/ginjaninja78/dtsx2csv/internal/dtsx"
	"github.com/ginjaninja78/dtsx2csv/internal/layout"
	"github.com/ginjaninja78/dtsx2csv/internal/types"
	"github.com/ginjaninja78/dtsx2csv/internal/xlsxwriter"
	"github.com/ginjaninja78/dtsx2csv/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result represents the outcome of processing a single package file.
type Result struct {
	// FilePath is the path to the package that was processed.
	FilePath string

	// Managers holds one entry per flat file connection manager, in document
	// order. Other kinds of managers never appear here.
	Managers []ManagerResult

	// Error is set when the file itself could not be processed (unreadable,
	// malformed XML). Managers is empty in that case.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Success reports whether the file and all its managers were exported.
func (r Result) Success() bool {
	if r.Error != nil {
		return false
	}
	for _, m := range r.Managers {
		if m.Error != nil {
			return false
		}
	}
	return true
}

// ManagerResult is the outcome of exporting one flat file connection manager.
type ManagerResult struct {
	// Name is the DTS:ObjectName of the manager.
	Name string

	// OutputFile is the path of the written .csv file. Empty on failure and
	// in dry-run mode.
	OutputFile string

	// XLSXFile is the path of the written workbook, when enabled.
	XLSXFile string

	// Content is the serialized .csv text.
	Content string

	// Rows are the computed layout rows.
	Rows []types.LayoutRow

	// Warnings lists recoverable defects, such as missing column attributes.
	Warnings []string

	// Error is set when the manager could not be exported.
	Error error
}

// ProcessingStats contains statistics about the processing of a file.
type ProcessingStats struct {
	// ConnectionManagers is the number of connection managers of any kind.
	ConnectionManagers int

	// FlatFileManagers is the number of flat file connection managers.
	FlatFileManagers int

	// Columns is the total number of exported columns.
	Columns int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// EXPORTER STRUCTURE
// =============================================================================

// Options controls where and how layouts are written.
type Options struct {
	// OutputDir receives the exported files.
	OutputDir string

	// XLSX also writes each layout as {ObjectName}.xlsx.
	XLSX bool

	// DryRun computes everything but writes nothing.
	DryRun bool
}

// Logger is the logging interface used by the exporter.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Exporter runs the export pipeline over package files.
type Exporter struct {
	options Options
	files   *utils.FileManager
	logger  Logger
}

// New creates a new Exporter. A nil logger discards all messages.
func New(options Options, logger Logger) *Exporter {
	if logger == nil {
		logger = nopLogger{}
	}

	return &Exporter{
		options: options,
		files:   utils.NewFileManager("", options.OutputDir),
		logger:  logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// RunAll processes the files one after the other. A failing file never stops
// the batch.
func (e *Exporter) RunAll(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, e.Run(path))
	}
	return results
}

// Run reads and processes a single package file.
func (e *Exporter) Run(path string) Result {
	e.logger.Info("Processing file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Error("Failed to read %s: %v", path, err)
		return Result{FilePath: path, Error: fmt.Errorf("failed to read package: %w", err)}
	}

	return e.Process(data, path)
}

// Process runs the pipeline over the content of a package. source labels the
// content in results and errors.
func (e *Exporter) Process(data []byte, source string) Result {
	startTime := time.Now()
	result := Result{FilePath: source}

	// =========================================================================
	// STEP 1: LOAD THE PACKAGE
	// =========================================================================

	doc, err := dtsx.Load(data, source)
	if err != nil {
		e.logger.Error("Failed to load %s: %v", source, err)
		result.Error = fmt.Errorf("failed to load package: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: SCAN FLAT FILE CONNECTION MANAGERS
	// =========================================================================

	all := dtsx.ScanConnectionManagers(doc)
	result.Stats.ConnectionManagers = len(all)

	for _, cm := range all {
		if !cm.IsFlatFile() {
			e.logger.Debug("Skipping connection manager %q of kind %q", cm.Name, cm.CreationName)
			continue
		}

		result.Stats.FlatFileManagers++

		// =====================================================================
		// STEP 3: EXPORT EACH MANAGER
		// =====================================================================

		managerResult := e.exportManager(cm)
		result.Stats.Columns += len(managerResult.Rows)
		result.Managers = append(result.Managers, managerResult)
	}

	if result.Stats.FlatFileManagers == 0 {
		e.logger.Info("No flat file connection manager in %s", source)
	}

	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// exportManager extracts, lays out, serializes and writes one manager.
func (e *Exporter) exportManager(cm *dtsx.ConnectionManager) ManagerResult {
	mr := ManagerResult{Name: cm.Name}

	columns, err := dtsx.ExtractColumns(cm)
	if err != nil {
		e.logger.Error("Failed to extract columns of %q: %v", cm.Name, err)
		mr.Error = fmt.Errorf("failed to extract columns: %w", err)
		return mr
	}

	for i, col := range columns {
		if len(col.Missing) == 0 {
			continue
		}
		warning := fmt.Sprintf("column %d (%q): missing %s, empty value used",
			i+1, col.Name, strings.Join(col.Missing, ", "))
		e.logger.Warn("%s: %s", cm.Name, warning)
		mr.Warnings = append(mr.Warnings, warning)
	}

	mr.Rows = layout.Calculate(columns)
	mr.Content = csvwriter.Serialize(mr.Rows)
	e.logger.Debug("Computed %d layout rows for %q", len(mr.Rows), cm.Name)

	baseName, err := outputBaseName(cm)
	if err != nil {
		e.logger.Error("Cannot export connection manager: %v", err)
		mr.Error = err
		return mr
	}

	if e.options.DryRun {
		e.logger.Info("Dry run: would create %s", e.files.OutputPath(baseName+".csv"))
		return mr
	}

	// =========================================================================
	// STEP 4: WRITE OUTPUT FILES
	// =========================================================================

	outputPath, err := e.files.WriteOutputFile(baseName+".csv", mr.Content)
	if err != nil {
		e.logger.Error("Failed to write output for %q: %v", cm.Name, err)
		mr.Error = fmt.Errorf("failed to write output: %w", err)
		return mr
	}
	mr.OutputFile = outputPath
	e.logger.Info("Created %s", outputPath)

	if e.options.XLSX {
		xlsxPath := e.files.OutputPath(baseName + ".xlsx")
		if err := xlsxwriter.Write(xlsxPath, cm.Name, mr.Rows); err != nil {
			e.logger.Error("Failed to write workbook for %q: %v", cm.Name, err)
			mr.Error = fmt.Errorf("failed to write workbook: %w", err)
			return mr
		}
		mr.XLSXFile = xlsxPath
		e.logger.Info("Created %s", xlsxPath)
	}

	return mr
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// outputBaseName returns the file name, without extension, of the files
// written for cm. Names that would escape the output directory are refused.
func outputBaseName(cm *dtsx.ConnectionManager) (string, error) {
	if !cm.HasName {
		return "", fmt.Errorf("connection manager has no DTS:ObjectName")
	}

	name := cm.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("connection manager name %q is not a valid file name", name)
	}

	return name, nil
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// nopLogger discards every message.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
