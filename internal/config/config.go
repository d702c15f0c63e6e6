// =============================================================================
// DTSX Flat File Exporter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Without one, the
// tool reads the .dtsx files of the current directory and writes the .csv
// files next to them.
//
// CONFIGURATION FILE (dtsx2csv.yaml):
//   input_dir:     "."        # where packages are searched for
//   output_dir:    "."        # where {ObjectName}.csv files are written
//   input_pattern: "*.dtsx"   # glob matched against file names
//   log_level:     "info"     # trace, debug, info, warn, error
//   report_file:   ""         # HTML report path, empty to disable
//   xlsx_export:   false      # also write {ObjectName}.xlsx
//   summary_log:   false      # write a plain-text run summary in output_dir
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "dtsx2csv.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for packages.
	// Default: "."
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where the exported files are written.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// InputPattern is the glob matched against file names in InputDir.
	// Default: "*.dtsx"
	InputPattern string `yaml:"input_pattern"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "trace", "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportFile is the path of the HTML report. Empty disables the report.
	ReportFile string `yaml:"report_file"`

	// XLSXExport also writes each layout as an Excel workbook.
	XLSXExport bool `yaml:"xlsx_export"`

	// SummaryLog writes a plain-text summary of the run in OutputDir.
	SummaryLog bool `yaml:"summary_log"`
}

// validLogLevels lists the accepted values of LogLevel.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - explicit: Whether the path was given by the user. A missing file is
//     only an error in that case; otherwise the defaults are returned.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputDir == "" {
		config.InputDir = "."
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.dtsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
}

// Validate checks the settings that cannot be defaulted.
func Validate(config *Config) error {
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if _, err := filepath.Match(config.InputPattern, ""); err != nil {
		return fmt.Errorf("bad input_pattern %q: %w", config.InputPattern, err)
	}

	return nil
}
