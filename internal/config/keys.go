package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "data-dir").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Default describes the value in effect when the key is unset.
	Default string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate rejects values that would break later commands. Nil accepts
	// anything.
	Validate func(value string) error

	// Normalize rewrites a value before it is stored. Nil stores it as given.
	Normalize func(value string) (string, error)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "data-dir",
		Description: "Directory holding the monitoring exports",
		Default:     "current directory",
		Get:         func(cfg *Config) string { return cfg.DataDir },
		Set:         func(cfg *Config, v string) { cfg.DataDir = v },
		Normalize:   absPath,
	},
	{
		Name:        "manifest",
		Description: "YAML file mapping each source to its export path",
		Default:     "built-in export file names",
		Get:         func(cfg *Config) string { return cfg.Manifest },
		Set:         func(cfg *Config, v string) { cfg.Manifest = v },
		Normalize:   absPath,
	},
	{
		Name:        "log-level",
		Description: "Log level used when --log-level is not given (debug, info, warn, error)",
		Default:     "warn",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Validate:    validateLogLevel,
		Normalize: func(v string) (string, error) {
			return strings.ToLower(v), nil
		},
	},
}

var logLevels = []string{"debug", "info", "warn", "error"}

func validateLogLevel(v string) error {
	for _, l := range logLevels {
		if strings.EqualFold(v, l) {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q (want one of %s)", v, strings.Join(logLevels, ", "))
}

// absPath stores paths absolute so the setting works from any directory.
func absPath(v string) (string, error) {
	abs, err := filepath.Abs(v)
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve %q: %w", v, err)
	}
	return abs, nil
}

// Apply trims, validates and normalizes value, then stores it in cfg. An
// empty value unsets the key.
func (k *KeySpec) Apply(cfg *Config, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		k.Set(cfg, "")
		return nil
	}
	if k.Validate != nil {
		if err := k.Validate(value); err != nil {
			return err
		}
	}
	if k.Normalize != nil {
		v, err := k.Normalize(value)
		if err != nil {
			return err
		}
		value = v
	}
	k.Set(cfg, value)
	return nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys, their
// descriptions and defaults, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		maxLen = max(maxLen, len(k.Name))
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s (default: %s)\n", maxLen, k.Name, k.Description, k.Default)
	}
	return b.String()
}
