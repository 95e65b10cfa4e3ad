// Package config loads and saves the svgpan.yml project configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the svgpan.yml configuration.
type Config struct {
	// Demo page configuration
	Demo *DemoConfig `yaml:"demo,omitempty"`

	// Build configuration
	Build *BuildConfig `yaml:"build,omitempty"`

	// Development server configuration
	Dev *DevConfig `yaml:"dev,omitempty"`
}

// DemoConfig describes the demo viewer page.
type DemoConfig struct {
	// Page title
	Title string `yaml:"title,omitempty"`

	// Path to the SVG document embedded in the demo page
	SVGPath string `yaml:"svg,omitempty"`
}

// BuildConfig contains build configuration.
type BuildConfig struct {
	// Output directory for production builds
	Output string `yaml:"output,omitempty"`

	// Whether to strip debug info from the WASM binary
	Optimize bool `yaml:"optimize"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	// Server port
	Port int `yaml:"port,omitempty"`

	// Server host
	Host string `yaml:"host,omitempty"`

	// Whether to open the browser on start
	Open bool `yaml:"open,omitempty"`
}

const fileName = "svgpan.yml"

// Load loads configuration from svgpan.yml in projectPath. A missing
// file is not an error; defaults are returned.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, fileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// Save saves configuration to svgpan.yml in projectPath.
func Save(config *Config, projectPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, fileName), data, 0o644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Demo: &DemoConfig{
			Title:   "svgpan demo",
			SVGPath: "",
		},
		Build: &BuildConfig{
			Output:   "dist",
			Optimize: true,
		},
		Dev: &DevConfig{
			Port: 5173,
			Host: "localhost",
			Open: false,
		},
	}
}

// applyDefaults fills missing values from DefaultConfig.
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Demo == nil {
		config.Demo = defaults.Demo
	} else if config.Demo.Title == "" {
		config.Demo.Title = defaults.Demo.Title
	}

	if config.Build == nil {
		config.Build = defaults.Build
	} else if config.Build.Output == "" {
		config.Build.Output = defaults.Build.Output
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}
}
