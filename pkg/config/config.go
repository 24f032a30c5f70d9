// Package config loads the project-level scaffold configuration. Settings
// live in a .scaffold.yml file at the project root and provide defaults for
// flags the CLI user does not pass explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when no explicit path is
// given.
const DefaultFileName = ".scaffold.yml"

// ErrNotFound indicates no config file exists at the resolved path.
var ErrNotFound = errors.New("config: file not found")

// Config carries project defaults for scaffold runs.
type Config struct {
	// Output is the directory generated modules are written to.
	Output string `yaml:"output"`

	// Registry is the path of the shared route registry file.
	Registry string `yaml:"registry"`

	// Assist configures the optional completion endpoint.
	Assist AssistConfig `yaml:"assist"`

	// Theme selects the design tokens injected into style placeholders.
	Theme ThemeConfig `yaml:"theme"`
}

// AssistConfig points at a completion service.
type AssistConfig struct {
	// Endpoint is the HTTP URL of the completion service. Empty disables
	// assistance.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds each completion request. Zero keeps the client default.
	Timeout Duration `yaml:"timeout"`
}

// Duration unmarshals from the YAML string form, for example "45s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ThemeConfig names a theme and variant to resolve tokens from.
type ThemeConfig struct {
	// Manifest is the path of the theme manifest file. Empty disables
	// theming.
	Manifest string `yaml:"manifest"`

	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Output: "."}
}

// Load reads the configuration at path. A missing file maps to ErrNotFound
// so callers can fall back to Default without special-casing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: %q: %w", path, ErrNotFound)
		}
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. Any other failure still surfaces.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}
