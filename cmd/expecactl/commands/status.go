package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
	"github.com/KTH-EXPECA/expecactl/internal/config"
)

// Status returns the command that prints the testbed's published status.
// It talks only to the public status endpoints, no OpenStack credentials
// are needed.
func Status() *cobra.Command {
	var testbedURL string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show testbed status: free floating IPs and the radio map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), testbedURL)
		},
	}

	cmd.Flags().StringVarP(&testbedURL, "url", "u", config.DefaultTestbedURL, "Testbed status base URL")

	return cmd
}
