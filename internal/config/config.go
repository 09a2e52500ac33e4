// Package config loads the fernparse CLI's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked for in the working directory when no
// explicit path is given.
const DefaultFile = ".fernparse.yaml"

// Config is the fernparse CLI configuration.
type Config struct {
	// The name of the encoding to parse under when a source file declares
	// none, e.g. "iso-8859-7". Empty means UTF-8.
	Encoding string `yaml:"encoding"`

	// Globs of paths to skip.
	Ignore []string `yaml:"ignore"`

	// The number of files parsed concurrently. Zero or negative means one
	// goroutine per CPU.
	Jobs int `yaml:"jobs"`
}

// Load reads the configuration from path. An empty path means the default
// file, whose absence is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	default:
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, glob := range c.Ignore {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("invalid ignore glob %q", glob)
		}
	}
	return nil
}

// Ignored reports whether path matches any of the ignore globs.
func (c Config) Ignored(path string) bool {
	for _, glob := range c.Ignore {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}
