package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/dtsx2csv/internal/config"
	"github.com/ginjaninja78/dtsx2csv/internal/exporter"
	"github.com/ginjaninja78/dtsx2csv/internal/types"
	"github.com/ginjaninja78/dtsx2csv/pkg/utils"
)

const customersPackage = `<?xml version="1.0"?>
<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts">
  <DTS:ConnectionManagers>
    <DTS:ConnectionManager DTS:CreationName="FLATFILE" DTS:ObjectName="Customers">
      <DTS:ObjectData><DTS:ConnectionManager><DTS:FlatFileColumns>
        <DTS:FlatFileColumn DTS:ObjectName="Title" DTS:DataType="130" DTS:ColumnWidth="13" />
        <DTS:FlatFileColumn DTS:ObjectName="Gender" DTS:DataType="130" DTS:ColumnWidth="6" />
      </DTS:FlatFileColumns></DTS:ConnectionManager></DTS:ObjectData>
    </DTS:ConnectionManager>
    <DTS:ConnectionManager DTS:CreationName="OLEDB" DTS:ObjectName="Warehouse" />
  </DTS:ConnectionManagers>
</DTS:Executable>`

const customersCSV = "#;Start;End;FieldName;FieldType;FieldSize\n" +
	"2;1;13;Title;Unicode string [DT_WSTR];13\n" +
	"3;14;19;Gender;Unicode string [DT_WSTR];6\n"

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.InputDir = dir
	cfg.OutputDir = dir
	return cfg
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunExportNoInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ReportFile = filepath.Join(dir, "report.html")
	cfg.SummaryLog = true

	var out, logs bytes.Buffer
	require.NoError(t, runExport(cfg, false, &out, &logs))

	assert.Contains(t, out.String(), "There is no *.dtsx file in the "+dir+" folder.")
	assert.Contains(t, out.String(), "Nothing to do.")
	assert.Empty(t, listDir(t, dir))
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Package.dtsx"), []byte(customersPackage), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.dtsx"), []byte("<DTS:Executable>"), 0644))

	outDir := filepath.Join(dir, "out")
	cfg := testConfig(dir)
	cfg.OutputDir = outDir
	cfg.ReportFile = filepath.Join(dir, "report.html")
	cfg.SummaryLog = true

	var out, logs bytes.Buffer
	require.NoError(t, runExport(cfg, false, &out, &logs))

	data, err := os.ReadFile(filepath.Join(outDir, "Customers.csv"))
	require.NoError(t, err)
	assert.Equal(t, customersCSV, string(data))
	assert.NoFileExists(t, filepath.Join(outDir, "Warehouse.csv"))

	assert.Contains(t, out.String(), "Process Broken.dtsx")
	assert.Contains(t, out.String(), "Process Package.dtsx")
	assert.Contains(t, out.String(), "Failed files:    1")
	assert.Contains(t, logs.String(), "[ERROR]")

	html, err := os.ReadFile(cfg.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(html), "2;1;13;Title;Unicode string [DT_WSTR];13")

	var summaries int
	for _, name := range listDir(t, outDir) {
		if strings.HasPrefix(name, "export_summary_") {
			summaries++
		}
	}
	assert.Equal(t, 1, summaries)
}

func TestRunExportDryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Package.dtsx"), []byte(customersPackage), 0644))

	outDir := filepath.Join(dir, "out")
	cfg := testConfig(dir)
	cfg.OutputDir = outDir
	cfg.SummaryLog = true

	var out, logs bytes.Buffer
	require.NoError(t, runExport(cfg, true, &out, &logs))

	assert.NoDirExists(t, outDir)
	assert.Contains(t, out.String(), "[Customers] 2 columns (not written)")
}

func TestRunExportIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Package.dtsx"), []byte(customersPackage), 0644))
	cfg := testConfig(dir)

	var out, logs bytes.Buffer
	require.NoError(t, runExport(cfg, false, &out, &logs))
	first, err := os.ReadFile(filepath.Join(dir, "Customers.csv"))
	require.NoError(t, err)

	require.NoError(t, runExport(cfg, false, &out, &logs))
	second, err := os.ReadFile(filepath.Join(dir, "Customers.csv"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunExportBadPattern(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.InputPattern = "["

	var out, logs bytes.Buffer
	assert.Error(t, runExport(cfg, false, &out, &logs))
}

func TestBuildSummary(t *testing.T) {
	summary := buildSummary([]exporter.Result{
		{
			FilePath: "/data/Package.dtsx",
			Managers: []exporter.ManagerResult{
				{Name: "Customers", OutputFile: "/data/Customers.csv", Rows: make([]types.LayoutRow, 2), Warnings: []string{"w"}},
				{Name: "Blocked", Error: errors.New("permission denied")},
			},
		},
		{FilePath: "/data/Broken.dtsx", Error: errors.New("malformed XML")},
	})

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, []utils.ExportedFileInfo{
		{InputFile: "Package.dtsx", ConnectionManager: "Customers", OutputFile: "/data/Customers.csv", Columns: 2, Warnings: 1},
	}, summary.ExportedFiles)
	assert.Equal(t, []utils.FailedFileInfo{
		{InputFile: "Package.dtsx", ConnectionManager: "Blocked", ErrorMessage: "permission denied"},
		{InputFile: "Broken.dtsx", ErrorMessage: "malformed XML"},
	}, summary.FailedFilesList)
}

func TestRunInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Package.dtsx")
	require.NoError(t, os.WriteFile(path, []byte(customersPackage), 0644))

	var out bytes.Buffer
	require.NoError(t, runInspect(path, &out))
	assert.Equal(t, "== Customers ==\n"+customersCSV, out.String())
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "Customers.csv"))
}

func TestRunInspectErrors(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	assert.Error(t, runInspect(filepath.Join(dir, "missing.dtsx"), &out))

	bad := filepath.Join(dir, "Bad.dtsx")
	require.NoError(t, os.WriteFile(bad, []byte("<DTS:Executable>"), 0644))
	assert.Error(t, runInspect(bad, &out))

	empty := filepath.Join(dir, "Empty.dtsx")
	require.NoError(t, os.WriteFile(empty, []byte(`<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts" />`), 0644))
	out.Reset()
	require.NoError(t, runInspect(empty, &out))
	assert.Contains(t, out.String(), "No flat file connection manager")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Version:    "+Version)
}
