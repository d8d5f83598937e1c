package config

import (
	"fmt"
	"time"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Settings are the resolved non-connection options of an export run.
type Settings struct {
	Output         string
	Datasets       []string
	ContentFormat  string
	Port           int
	ConnectRetries int
	Timeout        time.Duration
}

// DefaultSettings returns the settings used when neither flags nor wp2csv.yaml say otherwise.
func DefaultSettings() Settings {
	return Settings{
		Output:         wp2csv.DefaultOutputFile,
		ContentFormat:  "text",
		ConnectRetries: wp2csv.DefaultConnectRetries,
		Timeout:        wp2csv.DefaultTimeout,
	}
}

// ApplyFile overlays the values set in f. A nil f is a no-op.
func (s *Settings) ApplyFile(f *FileConfig) error {
	if f == nil {
		return nil
	}
	if f.Output != "" {
		s.Output = f.Output
	}
	if len(f.Datasets) > 0 {
		s.Datasets = append([]string(nil), f.Datasets...)
	}
	if f.ContentFormat != "" {
		s.ContentFormat = f.ContentFormat
	}
	if f.Port != 0 {
		s.Port = f.Port
	}
	if f.ConnectRetries != nil {
		if *f.ConnectRetries < 0 {
			return fmt.Errorf("connect_retries cannot be negative: %w", wp2csv.ErrInvalidConfig)
		}
		s.ConnectRetries = *f.ConnectRetries
	}
	timeout, err := f.ParsedTimeout()
	if err != nil {
		return err
	}
	if timeout > 0 {
		s.Timeout = timeout
	}
	return nil
}
