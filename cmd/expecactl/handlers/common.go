// Package handlers implements the business logic for CLI commands.
//
// Handler functions are called by the command definitions in the commands
// package. They are framework-agnostic and tested independently of cobra.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
	"github.com/KTH-EXPECA/expecactl/internal/provisioning"
	"github.com/KTH-EXPECA/expecactl/internal/testbed"
)

// Config file names looked for when no --config flag is given.
var defaultConfigFiles = []string{"expeca.yaml", "expeca.yml"}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newTestbedManager authenticates against the testbed's OpenStack
	// APIs using the OS_* environment variables.
	newTestbedManager = func(ctx context.Context, region string) (openstack.TestbedManager, error) {
		return openstack.NewRealClient(ctx, region)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runPhases executes provisioning phases.
	runPhases = provisioning.RunPhases

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// newStatusClient reads the testbed status endpoints.
	newStatusClient = func(baseURL string) statusReader {
		return testbed.NewClient(baseURL, nil)
	}

	// stdout is where handlers print user-facing output.
	stdout io.Writer = os.Stdout
)

// statusReader matches testbed.Client - allows test injection.
type statusReader interface {
	GetSnapshot(ctx context.Context) (*testbed.Snapshot, error)
}

// loadConfig loads and validates the experiment configuration. If
// configPath is empty it looks for expeca.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no config file found; run 'expecactl init' to create one")
		}
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newContext authenticates and builds a provisioning context for cfg.
func newContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	client, err := newTestbedManager(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the testbed: %w", err)
	}
	return newProvisioningContext(ctx, cfg, client), nil
}
