// Package config loads the tool configuration from YAML.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-uvtool/pkg/logging"
	"github.com/askiada/go-uvtool/pkg/naming"
)

// Config holds the tool configuration. Pipeline constants are not configurable.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Cache   CacheConfig    `yaml:"cache"`
	Panel   PanelConfig    `yaml:"panel"`
}

// CacheConfig locates the cache directory shared by every file cache node.
type CacheConfig struct {
	// Root defaults to the process temp directory when empty.
	Root    string `yaml:"root"`
	DirName string `yaml:"dir_name"`
}

// Dir returns the cache directory.
func (c CacheConfig) Dir() string {
	root := c.Root
	if root == "" {
		root = os.TempDir()
	}

	return filepath.Join(root, c.DirName)
}

// PanelConfig locates the panel form definition.
type PanelConfig struct {
	Form string `yaml:"form"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.Config{
			Dir:     "logs",
			Level:   "info",
			Console: true,
		},
		Cache: CacheConfig{
			DirName: naming.CacheDirName,
		},
		Panel: PanelConfig{
			Form: filepath.Join("assets", "panel.yaml"),
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.Wrap(err, "unable to read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "unable to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "unable to marshal config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "unable to write config")
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Logging.Dir == "" {
		return errors.Wrap(ErrInvalidConfig, "logging.dir must be set")
	}

	if c.Cache.DirName == "" || filepath.Base(c.Cache.DirName) != c.Cache.DirName {
		return errors.Wrapf(ErrInvalidConfig, "cache.dir_name %q must be a single directory name", c.Cache.DirName)
	}

	if c.Panel.Form == "" {
		return errors.Wrap(ErrInvalidConfig, "panel.form must be set")
	}

	return nil
}
