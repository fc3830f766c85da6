// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the expecactl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expecactl",
		Short: "Run experiments on the ExPECA testbed",
	}

	// Experiment lifecycle
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())

	// Lease management
	cmd.AddCommand(Reserve())
	cmd.AddCommand(Unreserve())
	cmd.AddCommand(List())
	cmd.AddCommand(Show())

	// Inspection
	cmd.AddCommand(Containers())
	cmd.AddCommand(Status())

	// Utility
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
