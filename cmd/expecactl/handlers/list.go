package handlers

import (
	"context"
	"fmt"

	"github.com/KTH-EXPECA/expecactl/internal/lease"
)

// ListLeases prints every lease of the project, one detail block per
// lease or a compact table when brief is set.
func ListLeases(ctx context.Context, configPath string, brief bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	leases, err := pCtx.Leases.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leases: %w", err)
	}

	if brief {
		briefs := make([]lease.Brief, 0, len(leases))
		for _, l := range leases {
			briefs = append(briefs, lease.Shorten(l))
		}
		fmt.Fprint(stdout, renderLeaseTable(briefs))
		return nil
	}

	if len(leases) == 0 {
		fmt.Fprintln(stdout, "no leases")
		return nil
	}
	for i := range leases {
		fmt.Fprint(stdout, renderLeaseDetail(&leases[i]))
	}
	return nil
}

// ShowLease prints one lease in full, looked up by id or name.
func ShowLease(ctx context.Context, configPath, ref string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	l, err := pCtx.Leases.Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get lease %s: %w", ref, err)
	}

	fmt.Fprint(stdout, renderLeaseDetail(l))
	return nil
}
