package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.dtsx", "a.dtsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.dtsx"), 0755))

	fm := NewFileManager(dir, dir)

	files, err := fm.DiscoverInputFiles("")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.dtsx"), filepath.Join(dir, "b.dtsx")}, files)

	files, err = fm.DiscoverInputFiles("*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, files)

	_, err = fm.DiscoverInputFiles("[")
	assert.Error(t, err)
}

func TestDiscoverInputFilesEmpty(t *testing.T) {
	files, err := NewFileManager(t.TempDir(), "").DiscoverInputFiles("*.dtsx")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWriteOutputFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(dir, dir)

	path, err := fm.WriteOutputFile("Customers.csv", "a much longer first content\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Customers.csv"), path)

	_, err = fm.WriteOutputFile("Customers.csv", "short\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(data))
}

func TestWriteOutputFileFailure(t *testing.T) {
	fm := NewFileManager("", filepath.Join(t.TempDir(), "missing"))
	_, err := fm.WriteOutputFile("x.csv", "x")
	assert.Error(t, err)
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, NewFileManager("", dir).EnsureOutputDir())
	assert.True(t, FileExists(dir))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	summary := ProcessingSummary{
		RunID:       uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000000"),
		StartTime:   start,
		EndTime:     start.Add(2 * time.Second),
		TotalFiles:  2,
		FailedFiles: 1,
		ExportedFiles: []ExportedFileInfo{
			{InputFile: "Package.dtsx", ConnectionManager: "Customers", OutputFile: "Customers.csv", Columns: 5, Warnings: 1},
		},
		FailedFilesList: []FailedFileInfo{
			{InputFile: "Broken.dtsx", ErrorMessage: "malformed XML"},
		},
	}

	path, err := WriteSummaryLog(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_summary_20260115_103000_6f1c2a9e.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Run ID:       6f1c2a9e-0000-4000-8000-000000000000")
	assert.Contains(t, content, "Duration:     2s")
	assert.Contains(t, content, "Package.dtsx [Customers] -> Customers.csv (5 columns, 1 warnings)")
	assert.Contains(t, content, "Broken.dtsx: malformed XML")
}
