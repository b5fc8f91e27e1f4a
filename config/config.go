// Package config holds the viewer configuration loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FontConfig names one font file and the family it serves.
type FontConfig struct {
	Family string `yaml:"family"`
	Path   string `yaml:"path"`
}

// WindowConfig sizes the viewport.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the full viewer configuration.
type Config struct {
	Window      WindowConfig `yaml:"window"`
	Fonts       []FontConfig `yaml:"fonts"`
	Stylesheets []string     `yaml:"stylesheets"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1024, Height: 768},
	}
}

// Load reads a YAML configuration file, filling gaps with defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if conf.Window.Width <= 0 {
		conf.Window.Width = 1024
	}
	if conf.Window.Height <= 0 {
		conf.Window.Height = 768
	}
	return conf, nil
}
