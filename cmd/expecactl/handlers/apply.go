package handlers

import (
	"context"
	"fmt"

	"github.com/KTH-EXPECA/expecactl/internal/provisioning"
)

// Apply brings the experiment described by the configuration up on the
// testbed: keypair, leases for every item, then containers on the
// reserved devices.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runPhases(pCtx, provisioning.Up()); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	printApplySuccess(pCtx)
	return nil
}

func printApplySuccess(pCtx *provisioning.Context) {
	fmt.Fprintf(stdout, "\nExperiment %s is up.\n\n", pCtx.Config.Name)

	if len(pCtx.State.LeaseIDs) > 0 {
		fmt.Fprintln(stdout, "Leases")
		for name, id := range pCtx.State.LeaseIDs {
			fmt.Fprintf(stdout, "  %-20s %s\n", name, id)
		}
		fmt.Fprintln(stdout)
	}
	if len(pCtx.State.ContainerUUIDs) > 0 {
		fmt.Fprintln(stdout, "Containers")
		for name, uuid := range pCtx.State.ContainerUUIDs {
			fmt.Fprintf(stdout, "  %-20s %s\n", name, uuid)
		}
		fmt.Fprintln(stdout)
	}

	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintln(stdout, "  expecactl list        show your leases")
	fmt.Fprintln(stdout, "  expecactl containers  show your containers")
	fmt.Fprintln(stdout, "  expecactl destroy     tear everything down")
}
