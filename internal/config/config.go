// Package config persists the sapmon settings that apply when no flag
// overrides them.
//
// Settings live in JSON at <user config dir>/sapmon/config.json, next to the
// load history database.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "sapmon"
	fileName = "config.json"
)

var pathOverride string

// SetPath points Load and Save at another file. Tests use it to keep away
// from the real user config.
func SetPath(p string) { pathOverride = p }

// ResetPath undoes SetPath.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	// DataDir is the directory searched for the default export file names.
	DataDir string `json:"data_dir,omitempty"`
	// Manifest is a YAML file mapping sources to export paths.
	Manifest string `json:"manifest,omitempty"`
	// LogLevel is the zap level name used when --log-level is not given.
	LogLevel string `json:"log_level,omitempty"`
}

// Path returns the config file location.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file. A missing file yields an empty Config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Values are not validated here so that
// "sapmon config set" can still repair a broken file.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every set key against its KeySpec.
func (c *Config) Validate() error {
	for _, spec := range Keys {
		v := spec.Get(c)
		if v == "" || spec.Validate == nil {
			continue
		}
		if err := spec.Validate(v); err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
	}
	return nil
}

// Save writes the config to Path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path. The file is replaced by rename, so a
// concurrent Load sees either the old or the new settings.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config: failed to replace %s: %w", path, err)
	}
	return nil
}
