package commands

import (
	"github.com/spf13/cobra"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/handlers"
	"github.com/KTH-EXPECA/expecactl/internal/config"
)

// Reserve returns the command that creates leases without starting
// containers. Without flags it reserves every configured item; with
// --name it creates one ad-hoc lease from the command line.
func Reserve() *cobra.Command {
	var (
		configPath string
		itemName   string
		adHoc      config.Item
	)

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve devices and networks through Blazar",
		Long: `Reserve creates Blazar leases without starting any containers.

By default every configured item is reserved. With --item only that
item is reserved:

  expecactl reserve --item adv-01

With --name an ad-hoc lease is created from the command line instead
of the configuration:

  expecactl reserve --name adv-03 --type device --days 2
  expecactl reserve --name lab-net --type network --segment 137`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if adHoc.Name != "" {
				return handlers.ReserveItem(cmd.Context(), configPath, adHoc)
			}
			return handlers.Reserve(cmd.Context(), configPath, itemName)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: expeca.yaml)")
	cmd.Flags().StringVarP(&itemName, "item", "i", "", "Reserve only this configured item")

	cmd.Flags().StringVar(&adHoc.Name, "name", "", "Ad-hoc item name")
	cmd.Flags().StringVar(&adHoc.Type, "type", config.ItemTypeDevice, "Ad-hoc item type (device or network)")
	cmd.Flags().StringVar(&adHoc.SegmentID, "segment", "", "VLAN segment id for ad-hoc network items")
	cmd.Flags().IntVar(&adHoc.Duration.Days, "days", 0, "Ad-hoc lease length in days (default 1)")
	cmd.Flags().IntVar(&adHoc.Duration.Hours, "hours", 0, "Additional ad-hoc lease hours")

	return cmd
}
