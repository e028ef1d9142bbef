// Package config holds the panel tunables and their on-disk YAML form.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUpdateInterval  = 30 // seconds
	DefaultRequestTimeout  = 10 // seconds
	DefaultYellowThreshold = 25
	DefaultOrangeThreshold = 50
	DefaultRedThreshold    = 75
)

// Config is the set of independent tunables. Thresholds are expected to be
// ascending but that is not validated: classification walks them in order
// and simply degrades if they are not.
type Config struct {
	UpdateInterval  int `yaml:"update_interval"`
	RequestTimeout  int `yaml:"request_timeout"`
	YellowThreshold int `yaml:"yellow_threshold"`
	OrangeThreshold int `yaml:"orange_threshold"`
	RedThreshold    int `yaml:"red_threshold"`
}

func Default() Config {
	return Config{
		UpdateInterval:  DefaultUpdateInterval,
		RequestTimeout:  DefaultRequestTimeout,
		YellowThreshold: DefaultYellowThreshold,
		OrangeThreshold: DefaultOrangeThreshold,
		RedThreshold:    DefaultRedThreshold,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claude-status", "config.yaml"), nil
}

// Load reads a YAML config. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config atomically (temp file then rename).
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	return os.Rename(tmp, path)
}
