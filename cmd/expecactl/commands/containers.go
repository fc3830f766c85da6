package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Containers returns the parent command for container operations. Run
// without a subcommand it lists the project's containers.
func Containers() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "containers",
		Short: "Manage containers on your reserved devices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListContainers(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")

	cmd.AddCommand(containersList(&configPath))
	cmd.AddCommand(containersRun(&configPath))
	cmd.AddCommand(containersRemove(&configPath))
	cmd.AddCommand(containersLogs(&configPath))

	return cmd
}

func containersList(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your containers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListContainers(cmd.Context(), *configPath)
		},
	}
}

func containersRun(configPath *string) *cobra.Command {
	var opts handlers.RunContainerOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single ad-hoc container",
		Long: `Run one container outside the configured experiment containers.

Example:
  expecactl containers run --name probe --image alpine:latest \
    --reservation 3b1f... --network sdr-net-net`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.RunContainer(cmd.Context(), *configPath, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Container name (required)")
	cmd.Flags().StringVar(&opts.Image, "image", "", "Container image (required)")
	cmd.Flags().StringArrayVar(&opts.Command, "cmd", nil, "Command to run in the container")
	cmd.Flags().StringVar(&opts.ReservationID, "reservation", "", "Device reservation id to pin the container to")
	cmd.Flags().StringArrayVar(&opts.Networks, "network", nil, "Neutron network name to attach (repeatable)")
	cmd.Flags().IntSliceVar(&opts.Ports, "port", nil, "TCP port to expose (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func containersRemove(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <container>",
		Short: "Remove a container by uuid or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RemoveContainer(cmd.Context(), *configPath, args[0])
		},
	}
}

func containersLogs(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logs <container>",
		Short: "Print the logs of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ContainerLogs(cmd.Context(), *configPath, args[0])
		},
	}
}
