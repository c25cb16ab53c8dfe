// Package config loads project settings from .lazysuite.yml, .lazysuite.toml
// or .lazysuite.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/frameworks"
	"github.com/jesspatton/lazysuite/logging"
)

// FileNames lists the configuration files looked up in the project root, in order.
var FileNames = []string{".lazysuite.yml", ".lazysuite.yaml", ".lazysuite.toml", ".lazysuite.json"}

type Config struct {
	// Path is the scanned directory, relative to the project root.
	Path string `yaml:"path" json:"path" toml:"path" jsonschema:"description=Scanned directory relative to the project root"`

	// RunsInRemote marks runs executed on another machine or container,
	// whose reported files live under RemotePath.
	RunsInRemote bool   `yaml:"runs_in_remote" json:"runs_in_remote" toml:"runs_in_remote" jsonschema:"description=Whether runs execute under remote_path on another machine"`
	RemotePath   string `yaml:"remote_path" json:"remote_path" toml:"remote_path" jsonschema:"description=Mount point of the project on the remote machine"`

	// CanToggleTests is set when the framework can run individual tests.
	CanToggleTests bool `yaml:"can_toggle_tests" json:"can_toggle_tests" toml:"can_toggle_tests" jsonschema:"description=Whether individual tests can be selected for a run"`

	Logging logging.Config `yaml:"logging" json:"logging" toml:"logging" jsonschema:"description=Logging settings"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{}
}

// Load looks for a configuration file in the project root. If none is
// found, it returns the default config.
func Load(root string) (Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		return LoadFile(path)
	}
	return Default(), nil
}

// LoadFile reads a configuration file, picking the decoder from its extension.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), errors.ConfigNotFound(path)
		}
		return Default(), errors.ConfigInvalid(path, err)
	}

	config := Default()
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	default:
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return Default(), errors.ConfigInvalid(path, err)
	}

	return config, nil
}

// SuiteOptions builds the options every suite under root is created with.
func (c Config) SuiteOptions(root string) frameworks.SuiteOptions {
	return frameworks.SuiteOptions{
		Path:         c.Path,
		Root:         root,
		RunsInRemote: c.RunsInRemote,
		RemotePath:   c.RemotePath,

		CanToggleTests: c.CanToggleTests,
	}
}
