package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultTestbedURL is the fixed endpoint the testbed publishes its
// status documents on.
const DefaultTestbedURL = "https://testbed.expeca.proj.kth.se"

// LoadFile reads and parses an experiment configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses an experiment configuration from YAML bytes.
func Load(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save writes an experiment configuration as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.TestbedURL == "" {
		cfg.TestbedURL = DefaultTestbedURL
	}
	if cfg.Keypair.Name == "" && cfg.Name != "" {
		cfg.Keypair.Name = cfg.Name + "-key"
	}
	for i := range cfg.Items {
		d := &cfg.Items[i].Duration
		if d.Days == 0 && d.Hours == 0 {
			d.Days = 1
		}
	}
}
