// Package config handles the optional opusx configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/opusx/config.yml.
// Every key is optional; command-line flags override it.
type Config struct {
	Format    string    `yaml:"format,omitempty"`     // Default output format: csv, json or txt
	DocTypes  yaml.Node `yaml:"doc_types,omitempty"`  // Default document types; must be a sequence
	OutputDir string    `yaml:"output_dir,omitempty"` // Directory for output files (default: working directory)
	Timezone  string    `yaml:"timezone,omitempty"`   // IANA zone for thesis acceptance dates (default: Local)
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "opusx"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// DefaultPath returns the path to the user's config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/opusx/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the configuration file at path.
// Returns an empty config (not an error) if path is empty or the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.OutputDir != "" {
		cfg.OutputDir = ExpandTilde(cfg.OutputDir)
	}

	return &cfg, nil
}

// Location returns the time zone for date conversion.
// An empty timezone or "Local" yields time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
