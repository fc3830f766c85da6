package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Apply returns the command that brings an experiment up on the testbed.
//
// Environment variables:
//
//	OS_* : OpenStack credentials (source the testbed's openrc.sh)
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the experiment",
		Long: `Create or update your experiment on the testbed.

This command uploads the SSH keypair, reserves every configured item
through Blazar (devices first, then networks), waits for the leases to
become ACTIVE, and starts the configured containers on the reserved
devices.

If no config file is specified, it looks for expeca.yaml in the current
directory. Use 'expecactl init' to create a configuration file.

Examples:
  # Bring up the experiment described by expeca.yaml
  expecactl apply

  # Use a specific config file
  expecactl apply -c urllc.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")

	return cmd
}
