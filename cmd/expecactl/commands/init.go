package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Init returns the command for interactively creating an experiment
// configuration.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an experiment configuration",
		Long: `Interactively create an experiment configuration file.

The wizard asks about:

  - Experiment name
  - The testbed device to reserve
  - An optional isolated VLAN network
  - Lease duration
  - An optional container image to run on the device

The generated YAML can be edited by hand afterwards; run
'expecactl apply' to bring the experiment up.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "expeca.yaml", "Output file path")

	return cmd
}
