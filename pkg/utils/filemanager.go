// =============================================================================
// DTSX Flat File Exporter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the exporter:
//   - Package discovery
//   - Output persistence (full overwrite, last write wins)
//   - Run summary log generation
//   - Directory management
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the exporter.
type FileManager struct {
	// InputDir is the directory scanned for packages.
	InputDir string

	// OutputDir is the directory where exported files are written.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files of the input directory matching the
// pattern, sorted by name.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files (e.g., "*.dtsx").
//              If empty, defaults to "*.dtsx".
//
// RETURNS:
//   - A slice of file paths. Directories are skipped.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.dtsx"
	}

	files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// OUTPUT PERSISTENCE
// =============================================================================

// OutputPath returns the path of an output file in the output directory.
func (fm *FileManager) OutputPath(fileName string) string {
	return filepath.Join(fm.OutputDir, fileName)
}

// WriteOutputFile writes content to fileName in the output directory,
// replacing any previous file of that name.
//
// RETURNS:
//   - The path to the written file.
//   - An error if the file cannot be created or written.
func (fm *FileManager) WriteOutputFile(fileName, content string) (string, error) {
	path := fm.OutputPath(fileName)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about an export run.
type ProcessingSummary struct {
	RunID           uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	FailedFiles     int
	ExportedFiles   []ExportedFileInfo
	FailedFilesList []FailedFileInfo
}

// ExportedFileInfo describes one file written for a connection manager.
type ExportedFileInfo struct {
	InputFile         string
	ConnectionManager string
	OutputFile        string
	Columns           int
	Warnings          int
}

// FailedFileInfo describes an input file or connection manager that failed.
type FailedFileInfo struct {
	InputFile         string
	ConnectionManager string
	ErrorMessage      string
}

// NewRunID returns a fresh identifier for an export run.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// SummaryFileName returns the file name of the summary log of a run.
func SummaryFileName(summary ProcessingSummary) string {
	return fmt.Sprintf("export_summary_%s_%s.txt",
		summary.StartTime.Format("20060102_150405"),
		strings.SplitN(summary.RunID.String(), "-", 2)[0])
}

// WriteSummaryLog writes a run summary to a text file in outputDir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	summaryPath := filepath.Join(outputDir, SummaryFileName(summary))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "DTSX Flat File Exporter - Run Summary\n"+
		"Run ID:       %s\n"+
		"Started:      %s\n"+
		"Finished:     %s\n"+
		"Duration:     %s\n"+
		"Input files:  %d\n"+
		"Failed files: %d\n"+
		"Exported:     %d\n"+
		"================================================================================\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime),
		summary.TotalFiles,
		summary.FailedFiles,
		len(summary.ExportedFiles))

	if len(summary.ExportedFiles) > 0 {
		writer.WriteString("\nEXPORTED\n")
		for _, info := range summary.ExportedFiles {
			fmt.Fprintf(writer, "  %s [%s] -> %s (%d columns", info.InputFile, info.ConnectionManager, info.OutputFile, info.Columns)
			if info.Warnings > 0 {
				fmt.Fprintf(writer, ", %d warnings", info.Warnings)
			}
			writer.WriteString(")\n")
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("\nFAILED\n")
		for _, info := range summary.FailedFilesList {
			if info.ConnectionManager != "" {
				fmt.Fprintf(writer, "  %s [%s]: %s\n", info.InputFile, info.ConnectionManager, info.ErrorMessage)
			} else {
				fmt.Fprintf(writer, "  %s: %s\n", info.InputFile, info.ErrorMessage)
			}
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Run Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary log: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
