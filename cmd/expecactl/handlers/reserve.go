package handlers

import (
	"context"
	"fmt"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/provisioning"
)

// Reserve creates leases for the configured items without starting any
// containers. With itemName set, only that item is reserved.
func Reserve(ctx context.Context, configPath, itemName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg, err = selectItems(cfg, itemName); err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	phases := []provisioning.Phase{
		&provisioning.ValidatePhase{},
		&provisioning.LeasePhase{},
	}
	if err := runPhases(pCtx, phases); err != nil {
		return fmt.Errorf("reserve failed: %w", err)
	}

	for name, id := range pCtx.State.LeaseIDs {
		fmt.Fprintf(stdout, "%-20s %s\n", name, id)
	}
	return nil
}

// ReserveItem creates a single ad-hoc lease for an item given on the
// command line instead of in the configuration.
func ReserveItem(ctx context.Context, configPath string, item config.Item) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if item.Duration.Days == 0 && item.Duration.Hours == 0 {
		item.Duration.Days = 1
	}

	narrowed := *cfg
	narrowed.Items = []config.Item{item}
	narrowed.Containers = nil

	pCtx, err := newContext(ctx, &narrowed)
	if err != nil {
		return err
	}

	phases := []provisioning.Phase{
		&provisioning.ValidatePhase{},
		&provisioning.LeasePhase{},
	}
	if err := runPhases(pCtx, phases); err != nil {
		return fmt.Errorf("reserve failed: %w", err)
	}

	fmt.Fprintf(stdout, "%-20s %s\n", item.Name, pCtx.State.LeaseIDs[item.Name])
	return nil
}

// UnreserveLease removes one lease by id or name, regardless of the
// configuration's items.
func UnreserveLease(ctx context.Context, configPath, ref string) error {
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
		return fmt.Errorf("failed to resolve lease %s: %w", ref, err)
	}

	if err := pCtx.Leases.Remove(ctx, l.ID, l.Name, true); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Lease %s removed.\n", l.Name)
	return nil
}

// Unreserve removes the leases of the configured items. With itemName
// set, only that item's lease is removed.
func Unreserve(ctx context.Context, configPath, itemName string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg, err = selectItems(cfg, itemName); err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	phases := []provisioning.Phase{
		&provisioning.LeaseTeardownPhase{},
	}
	if err := runPhases(pCtx, phases); err != nil {
		return fmt.Errorf("unreserve failed: %w", err)
	}

	fmt.Fprintln(stdout, "Leases removed.")
	return nil
}

// selectItems narrows the configuration to a single item when itemName
// is set.
func selectItems(cfg *config.Config, itemName string) (*config.Config, error) {
	if itemName == "" {
		return cfg, nil
	}
	for _, item := range cfg.Items {
		if item.Name == itemName {
			narrowed := *cfg
			narrowed.Items = []config.Item{item}
			narrowed.Containers = nil
			return &narrowed, nil
		}
	}
	return nil, fmt.Errorf("item %q is not in the configuration", itemName)
}
