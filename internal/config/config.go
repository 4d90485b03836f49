// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all rolo configuration.
type Config struct {
	Store Store `yaml:"store"`
	Log   Log   `yaml:"log"`
}

// Store holds contact store file locations.
type Store struct {
	Path       string `yaml:"path"`        // CSV store file
	ExportPath string `yaml:"export_path"` // JSON interchange file
}

// Log holds audit log settings.
type Log struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with the stock file locations,
// relative to the working directory.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path:       "contacts.csv",
			ExportPath: "contacts.json",
		},
		Log: Log{
			Path: "rolo.log",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return errors.New("config: store.path cannot be empty")
	}
	if c.Store.ExportPath == "" {
		return errors.New("config: store.export_path cannot be empty")
	}
	if c.Log.Path == "" {
		return errors.New("config: log.path cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLO_STORE, ROLO_EXPORT, ROLO_LOG.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ROLO_STORE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("ROLO_EXPORT"); v != "" {
		c.Store.ExportPath = v
	}
	if v := os.Getenv("ROLO_LOG"); v != "" {
		c.Log.Path = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store *rawStore `yaml:"store"`
	Log   *rawLog   `yaml:"log"`
}

type rawStore struct {
	Path       *string `yaml:"path"`
	ExportPath *string `yaml:"export_path"`
}

type rawLog struct {
	Path *string `yaml:"path"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Path != nil {
			c.Store.Path = *layer.Store.Path
		}
		if layer.Store.ExportPath != nil {
			c.Store.ExportPath = *layer.Store.ExportPath
		}
	}
	if layer.Log != nil {
		if layer.Log.Path != nil {
			c.Log.Path = *layer.Log.Path
		}
	}
}
