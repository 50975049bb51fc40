package plume

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration file.
type Config struct {
	DataDir      string    `yaml:"dataDir" json:"dataDir"`
	Ensemble     string    `yaml:"ensemble" json:"ensemble"`
	Attribute    string    `yaml:"attribute" json:"attribute"`
	Realizations []int     `yaml:"realizations" json:"realizations"`
	Threshold    float64   `yaml:"threshold" json:"threshold"`
	Smoothing    *float64  `yaml:"smoothing,omitempty" json:"smoothing,omitempty"`           // Gaussian sigma in cell units (default 10)
	Simplify     *float64  `yaml:"simplifyFactor,omitempty" json:"simplifyFactor,omitempty"` // Tolerance factor in cell sizes (default 1.2)
	Levels       []float64 `yaml:"levels,omitempty" json:"levels,omitempty"`                 // Optional level override

	MQTT   MQTTConfig   `yaml:"mqtt,omitempty" json:"mqtt,omitempty"`
	Render RenderConfig `yaml:"render,omitempty" json:"render,omitempty"`
}

// MQTTConfig holds MQTT connection settings for service mode.
type MQTTConfig struct {
	Broker        string `yaml:"broker" json:"broker"`
	PublishPrefix string `yaml:"publishPrefix" json:"publishPrefix"`
	ClientID      string `yaml:"clientId" json:"clientId"`
	Username      string `yaml:"username,omitempty" json:"username,omitempty"`
	Password      string `yaml:"password,omitempty" json:"password,omitempty"`
}

// RenderConfig holds preview-rendering settings.
type RenderConfig struct {
	Scale   int    `yaml:"scale,omitempty" json:"scale,omitempty"` // Pixels per grid cell (default 8)
	Output  string `yaml:"output,omitempty" json:"output,omitempty"`
	Labeled bool   `yaml:"labeled,omitempty" json:"labeled,omitempty"`
}

// PipelineOptions converts the configured smoothing, simplification and
// level settings into pipeline Options, filling reference defaults for
// anything unset.
func (c *Config) PipelineOptions() Options {
	opts := DefaultOptions()
	if c.Smoothing != nil {
		opts.Smoothing = *c.Smoothing
	}
	if c.Simplify != nil {
		opts.SimplifyFactor = *c.Simplify
	}
	if len(c.Levels) > 0 {
		opts.Levels = c.Levels
	}
	return opts
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Validate required fields
	if config.DataDir == "" {
		return nil, fmt.Errorf("dataDir is required")
	}
	if config.Attribute == "" {
		return nil, fmt.Errorf("attribute is required")
	}
	if len(config.Realizations) == 0 {
		return nil, fmt.Errorf("at least one realization must be listed")
	}
	if config.Smoothing != nil && *config.Smoothing < 0 {
		return nil, fmt.Errorf("smoothing must be >= 0, got %v", *config.Smoothing)
	}
	if config.Simplify != nil && *config.Simplify <= 0 {
		return nil, fmt.Errorf("simplifyFactor must be > 0, got %v", *config.Simplify)
	}
	for _, level := range config.Levels {
		if !validLevel(level) {
			return nil, fmt.Errorf("level %v outside (0, 1)", level)
		}
	}

	return &config, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
