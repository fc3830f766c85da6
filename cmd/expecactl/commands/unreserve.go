package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
)

// Unreserve returns the command that removes leases. Given a lease id or
// name it removes exactly that lease; without arguments it removes the
// leases of the configured items.
func Unreserve() *cobra.Command {
	var (
		configPath string
		itemName   string
	)

	cmd := &cobra.Command{
		Use:   "unreserve [lease]",
		Short: "Remove leases",
		Long: `Unreserve removes Blazar leases. Leases that are already gone are
skipped.

Remove every configured item's lease:

  expecactl unreserve

Remove one configured item's lease:

  expecactl unreserve --item adv-01

Remove a specific lease by id or name:

  expecactl unreserve adv-03-lease`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return handlers.UnreserveLease(cmd.Context(), configPath, args[0])
			}
			return handlers.Unreserve(cmd.Context(), configPath, itemName)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")
	cmd.Flags().StringVarP(&itemName, "item", "i", "", "Unreserve only this configured item")

	return cmd
}
