package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dtsx2csv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, ".", config.InputDir)
	assert.Equal(t, ".", config.OutputDir)
	assert.Equal(t, "*.dtsx", config.InputPattern)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.ReportFile)
	assert.False(t, config.XLSXExport)
	assert.False(t, config.SummaryLog)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), DefaultPath), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input_dir: ./packages
output_dir: ./docs
log_level: DEBUG
report_file: report.html
xlsx_export: true
summary_log: true
`)

	config, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "./packages", config.InputDir)
	assert.Equal(t, "./docs", config.OutputDir)
	assert.Equal(t, "*.dtsx", config.InputPattern)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "report.html", config.ReportFile)
	assert.True(t, config.XLSXExport)
	assert.True(t, config.SummaryLog)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "input_dir: [unclosed"},
		{"unknown level", "log_level: chatty"},
		{"bad pattern", "input_pattern: \"[\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			assert.Error(t, err)
		})
	}
}
