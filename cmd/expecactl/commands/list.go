package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// List returns the command that lists the project's leases.
func List() *cobra.Command {
	var (
		configPath string
		brief      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your leases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListLeases(cmd.Context(), configPath, brief)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")
	cmd.Flags().BoolVar(&brief, "brief", false, "One line per lease instead of full detail")

	return cmd
}
