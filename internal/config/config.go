package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// ErrConfigNotFound is returned when the settings file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileConfig mirrors wp2csv.yaml. It only carries non-secret export settings;
// credentials always come from the environment.
type FileConfig struct {
	Output         string   `yaml:"output"`
	Datasets       []string `yaml:"datasets"`
	ContentFormat  string   `yaml:"content_format"`
	Port           int      `yaml:"port"`
	ConnectRetries *int     `yaml:"connect_retries"`
	Timeout        string   `yaml:"timeout"`
}

// Load reads wp2csv.yaml from dir.
func Load(dir string) (*FileConfig, error) {
	return LoadFile(filepath.Join(dir, wp2csv.ConfigFileName))
}

// LoadFile reads a settings file from path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read %s: %w: %w", path, wp2csv.ErrInvalidConfig, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, wp2csv.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// ParsedTimeout returns the timeout setting, or zero when unset.
func (c *FileConfig) ParsedTimeout() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", c.Timeout, wp2csv.ErrInvalidConfig)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout cannot be negative: %w", wp2csv.ErrInvalidConfig)
	}
	return d, nil
}
