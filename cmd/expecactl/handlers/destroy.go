package handlers

import (
	"context"
	"fmt"

	"github.com/KTH-EXPECA/expecactl/internal/provisioning"
)

// Destroy tears the experiment down: containers first, then leases, then
// the SSH keypair. Resources that are already gone are skipped.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runPhases(pCtx, provisioning.Down()); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	fmt.Fprintf(stdout, "Experiment %s destroyed.\n", cfg.Name)
	return nil
}
