// SPDX-License-Identifier: EPL-2.0

// Package config loads and saves the wavedit settings file.
//
// The file lives under os.UserConfigDir():
//
//	~/Library/Application Support/wavedit/config.yaml   (macOS)
//	~/.config/wavedit/config.yaml                       (Linux)
//	%AppData%/wavedit/config.yaml                       (Windows)
//
// A missing file is not an error; Load returns Defaults. Command line flags
// override whatever the file holds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ik5/wavedit/editor"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "wavedit"

	fileName = "config.yaml"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config mirrors config.yaml.
type Config struct {
	// Canvas size in terminal cells for the peaks view.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Zoom float64 `yaml:"zoom"`

	Volume          float64 `yaml:"volume"`
	Speed           float64 `yaml:"speed"`
	Filter          string  `yaml:"filter"`
	FilterFrequency float64 `yaml:"filter_frequency"`
	FilterQ         float64 `yaml:"filter_q"`
	Loop            bool    `yaml:"loop"`

	// ExportName is used when export is given no output path.
	ExportName string `yaml:"export_name"`

	// Tick is the display refresh interval while playing, e.g. "50ms".
	Tick string `yaml:"tick"`
}

func Defaults() *Config {
	p := editor.DefaultParams()

	return &Config{
		Width:           editor.DefaultWidth,
		Height:          16,
		Zoom:            1,
		Volume:          p.Volume,
		Speed:           p.Speed,
		Filter:          p.Filter.String(),
		FilterFrequency: p.FilterFrequency,
		FilterQ:         p.FilterQ,
		ExportName:      "wavedit-export.wav",
		Tick:            "50ms",
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads path over Defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes c to path, creating the directory when needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if !(c.Zoom >= 1) {
		return fmt.Errorf("%w: zoom %v below 1", ErrInvalid, c.Zoom)
	}
	if _, err := c.TickInterval(); err != nil {
		return err
	}
	if _, err := c.Params(); err != nil {
		return err
	}

	return nil
}

// TickInterval parses Tick.
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Tick)
	if err != nil {
		return 0, fmt.Errorf("%w: tick %q: %w", ErrInvalid, c.Tick, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: tick %v must be positive", ErrInvalid, d)
	}

	return d, nil
}

// Params returns the playback parameters the file describes.
func (c *Config) Params() (editor.Params, error) {
	filter, err := editor.ParseFilterType(c.Filter)
	if err != nil {
		return editor.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	p := editor.Params{
		Volume:          c.Volume,
		Speed:           c.Speed,
		Filter:          filter,
		FilterFrequency: c.FilterFrequency,
		FilterQ:         c.FilterQ,
	}
	if err := p.Validate(); err != nil {
		return editor.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return p, nil
}
