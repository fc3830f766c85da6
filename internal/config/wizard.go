package config

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

var experimentNameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Name         string
	Device       string
	Network      string
	SegmentID    string
	DurationDays int
	Image        string
}

// RunWizard walks the user through a minimal experiment configuration: one
// reserved device, optionally one isolated network, optionally one container.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		DurationDays: 1,
	}

	form := huh.NewForm(
		// Experiment identity
		huh.NewGroup(
			huh.NewInput().
				Title("Experiment name").
				Description("Used as a prefix for every testbed resource (DNS-safe, lowercase)").
				Placeholder("urllc-demo").
				Value(&result.Name).
				Validate(validateExperimentName),
		),

		// Device to reserve
		huh.NewGroup(
			huh.NewInput().
				Title("Device").
				Description("Name of the testbed device to reserve, e.g. adv-01 or worker-05").
				Placeholder("adv-01").
				Value(&result.Device).
				Validate(required("device")),
		),

		// Optional isolated network
		huh.NewGroup(
			huh.NewInput().
				Title("Network (optional)").
				Description("Name for an isolated VLAN network. Leave empty to skip.").
				Placeholder("sdr-net").
				Value(&result.Network),

			huh.NewInput().
				Title("VLAN segment id").
				Description("Required when a network is configured, e.g. 137").
				Placeholder("137").
				Value(&result.SegmentID),
		),

		// Lease duration
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Lease duration").
				Description("How long the reservations should last").
				Options(
					huh.NewOption("1 day", 1),
					huh.NewOption("2 days", 2),
					huh.NewOption("5 days", 5),
					huh.NewOption("7 days", 7),
				).
				Value(&result.DurationDays),
		),

		// Optional workload
		huh.NewGroup(
			huh.NewInput().
				Title("Container image (optional)").
				Description("Image to run on the reserved device. Leave empty to skip.").
				Placeholder("expeca/openairinterface5g:latest").
				Value(&result.Image),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	if result.Network != "" && result.SegmentID == "" {
		return nil, fmt.Errorf("network %q needs a VLAN segment id", result.Network)
	}

	return result, nil
}

// ToConfig converts the wizard result into a full experiment configuration.
func (r *WizardResult) ToConfig() *Config {
	duration := Duration{Days: r.DurationDays}

	cfg := &Config{
		Name: r.Name,
		Items: []Item{
			{Name: r.Device, Type: ItemTypeDevice, Duration: duration},
		},
	}

	if r.Network != "" {
		cfg.Items = append(cfg.Items, Item{
			Name:      r.Network,
			Type:      ItemTypeNetwork,
			SegmentID: r.SegmentID,
			Duration:  duration,
		})
	}

	if r.Image != "" {
		ct := Container{
			Name:   "main",
			Image:  r.Image,
			Device: r.Device,
		}
		if r.Network != "" {
			ct.Networks = []string{r.Network}
		}
		cfg.Containers = append(cfg.Containers, ct)
	}

	applyDefaults(cfg)
	return cfg
}

func validateExperimentName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 32 {
		return fmt.Errorf("name must be 32 characters or less")
	}
	if !experimentNameRe.MatchString(name) {
		return fmt.Errorf("use lowercase letters, digits and hyphens")
	}
	return nil
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
