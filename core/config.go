package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project-level configuration file read from the scan
// target directory.
const ConfigFileName = ".electa.yaml"

// ScanConfig holds project-level configuration loaded from .electa.yaml.
type ScanConfig struct {
	Scan   ScanSettings   `yaml:"scan"`
	Output OutputSettings `yaml:"output"`
}

// ScanSettings controls which files are scanned and how rules are resolved.
type ScanSettings struct {
	// Rules is a path to a YAML rules file or directory, relative to the
	// scan target unless absolute.
	Rules string `yaml:"rules"`
	// Extensions is the case-insensitive allow-list of file extensions.
	// Empty means every file is scanned.
	Extensions []string `yaml:"extensions"`
	// AlternativePath is scanned instead of the file population by rules
	// whose type is not "code".
	AlternativePath string `yaml:"alternative_path"`
	// Exclude holds doublestar globs for paths to skip during discovery.
	Exclude []string `yaml:"exclude"`
	// Workers bounds the scan worker pool. Zero means the host default.
	Workers int `yaml:"workers"`
}

// OutputSettings controls default report format and directory.
type OutputSettings struct {
	Format    string `yaml:"format"`
	Directory string `yaml:"directory"`
}

// LoadScanConfig reads .electa.yaml from root and returns the parsed config.
// If the file does not exist, a zero-value ScanConfig is returned with no
// error.
func LoadScanConfig(root string) (*ScanConfig, error) {
	path := filepath.Join(root, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ScanConfig{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &cfg, nil
}
