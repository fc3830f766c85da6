package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Show returns the command that prints one lease in full.
func Show() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <lease>",
		Short: "Show one lease by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ShowLease(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")

	return cmd
}
