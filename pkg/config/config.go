// Package config loads project settings and the caller's environment snapshot.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFiles are probed in order when no config path is given.
var DefaultFiles = []string{"venvstrap.yaml", "venvstrap.yml", "venvstrap.json"}

// Config holds the per-project installer settings.
type Config struct {
	ActivateScript string   `yaml:"activate_script" json:"activate_script"`
	PythonVersion  string   `yaml:"python_version" json:"python_version"`
	Editable       bool     `yaml:"editable" json:"editable"`
	ProjectMarkers []string `yaml:"project_markers" json:"project_markers"`
	// InstallCommand overrides the platform package manager command for the interpreter.
	InstallCommand string `yaml:"install_command" json:"install_command"`
	MetricsFile    string `yaml:"metrics_file" json:"metrics_file"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		ActivateScript: "activate.sh",
		PythonVersion:  "python3.10",
		Editable:       true,
		ProjectMarkers: []string{"setup.py", "pyproject.toml"},
	}
}

// Load reads the config for a project directory.
// An explicit path must exist; without one the default file names are probed
// and a project without any of them gets Default().
func Load(dir, path string) (Config, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return loadFile(path)
	}

	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return Default(), nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks the settings that are used to build paths and command lines.
func (c Config) Validate() error {
	var errs []error
	if err := plainName("activate_script", c.ActivateScript); err != nil {
		errs = append(errs, err)
	}
	if c.PythonVersion == "" {
		errs = append(errs, errors.New("python_version must not be empty"))
	}
	return errors.Join(errs...)
}

func plainName(field, value string) error {
	switch {
	case value == "":
		return fmt.Errorf("%s must not be empty", field)
	case value == "." || value == "..":
		return fmt.Errorf("%s must name a file inside the project: %q", field, value)
	case strings.ContainsAny(value, `/\`):
		return fmt.Errorf("%s must not contain path separators: %q", field, value)
	}
	return nil
}
