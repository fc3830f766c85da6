package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes all experiment resources from the testbed:
// containers, then leases, then the SSH keypair.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the experiment and all associated resources",
		Long: `Destroy removes all experiment resources from the testbed.

Resources are deleted in dependency order:
  - Containers
  - Leases (devices and networks)
  - SSH keypair

Resources that are already gone are skipped. Leases stuck in a
transitional state are retried.

Example:
  expecactl destroy -c expeca.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")

	return cmd
}
