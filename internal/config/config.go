// Package config defines and loads the experiment configuration.
package config

import (
	"fmt"
)

// Item types that can be reserved through Blazar.
const (
	ItemTypeDevice  = "device"
	ItemTypeNetwork = "network"
)

// Duration is the requested length of a lease.
type Duration struct {
	Days  int `mapstructure:"days"  yaml:"days,omitempty"`
	Hours int `mapstructure:"hours" yaml:"hours,omitempty"`
}

// Item is one reservable resource of the experiment: a radio device or a
// VLAN-backed isolated network.
type Item struct {
	Name      string   `mapstructure:"name"       yaml:"name"`
	Type      string   `mapstructure:"type"       yaml:"type"`
	SegmentID string   `mapstructure:"segment_id" yaml:"segment_id,omitempty"`
	Duration  Duration `mapstructure:"duration"   yaml:"duration,omitempty"`
}

// Container describes a workload to run on a reserved device.
type Container struct {
	Name        string            `mapstructure:"name"        yaml:"name"`
	Image       string            `mapstructure:"image"       yaml:"image"`
	Command     []string          `mapstructure:"command"     yaml:"command,omitempty"`
	Device      string            `mapstructure:"device"      yaml:"device,omitempty"`
	Networks    []string          `mapstructure:"networks"    yaml:"networks,omitempty"`
	Environment map[string]string `mapstructure:"environment" yaml:"environment,omitempty"`
	Ports       []int             `mapstructure:"ports"       yaml:"ports,omitempty"`
}

// Keypair configures SSH access to experiment workloads. When
// PublicKeyPath is empty a fresh key pair is generated and the private
// half written next to the config file.
type Keypair struct {
	Name          string `mapstructure:"name"            yaml:"name,omitempty"`
	PublicKeyPath string `mapstructure:"public_key_path" yaml:"public_key_path,omitempty"`
}

// Config is a full experiment description.
type Config struct {
	Name       string      `mapstructure:"name"        yaml:"name"`
	Region     string      `mapstructure:"region"      yaml:"region,omitempty"`
	TestbedURL string      `mapstructure:"testbed_url" yaml:"testbed_url,omitempty"`
	Keypair    Keypair     `mapstructure:"keypair"     yaml:"keypair,omitempty"`
	Items      []Item      `mapstructure:"items"       yaml:"items"`
	Containers []Container `mapstructure:"containers"  yaml:"containers,omitempty"`
}

// Validate checks the configuration for the mistakes that would otherwise
// only surface mid-provisioning.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("experiment name is required")
	}

	items := make(map[string]string, len(c.Items))
	for i, item := range c.Items {
		if item.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
		if _, dup := items[item.Name]; dup {
			return fmt.Errorf("items[%d]: duplicate item name %q", i, item.Name)
		}
		items[item.Name] = item.Type

		switch item.Type {
		case ItemTypeDevice:
		case ItemTypeNetwork:
			if item.SegmentID == "" {
				return fmt.Errorf("items[%d] (%s): network items need a segment_id", i, item.Name)
			}
		default:
			return fmt.Errorf("items[%d] (%s): unknown type %q", i, item.Name, item.Type)
		}

		if item.Duration.Days < 0 || item.Duration.Hours < 0 {
			return fmt.Errorf("items[%d] (%s): negative duration", i, item.Name)
		}
	}

	for i, ct := range c.Containers {
		if ct.Name == "" {
			return fmt.Errorf("containers[%d]: name is required", i)
		}
		if ct.Image == "" {
			return fmt.Errorf("containers[%d] (%s): image is required", i, ct.Name)
		}
		if ct.Device != "" {
			typ, ok := items[ct.Device]
			if !ok {
				return fmt.Errorf("containers[%d] (%s): device %q is not an item", i, ct.Name, ct.Device)
			}
			if typ != ItemTypeDevice {
				return fmt.Errorf("containers[%d] (%s): item %q is not a device", i, ct.Name, ct.Device)
			}
		}
	}

	return nil
}
