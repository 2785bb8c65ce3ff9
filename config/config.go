package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signadot/docval/format"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable overriding the config file path.
const EnvPath = "DOCVAL_CONFIG"

var ErrConfig = errors.New("config error")

// Config holds defaults for the docval command. Command line flags take
// precedence over every field.
type Config struct {
	// Format is the default input and output format.
	Format format.Format `yaml:"format"`
	// Indent is the number of spaces per nesting level in text output.
	Indent int `yaml:"indent"`
	// Color forces colored output on or off. Unset means color when
	// writing to a terminal.
	Color *bool `yaml:"color,omitempty"`
	// Comments allows comments in JSON input.
	Comments bool `yaml:"comments"`
	// Debug lists debug channels to enable, as DOCVAL_DEBUG_<NAME> does.
	Debug []string `yaml:"debug,omitempty"`
}

func Default() *Config {
	return &Config{
		Format: format.JSONFormat,
		Indent: 2,
	}
}

// Path returns $DOCVAL_CONFIG, or docval/config.yaml under the user config
// directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docval", "config.yaml"), nil
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a YAML config over the defaults. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if cfg.Indent < 0 || cfg.Indent > 16 {
		return nil, fmt.Errorf("%w: indent %d out of range [0,16]", ErrConfig, cfg.Indent)
	}
	return cfg, nil
}

// Write stores cfg at path as YAML, creating parent directories.
func (cfg *Config) Write(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
