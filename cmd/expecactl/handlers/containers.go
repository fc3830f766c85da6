package handlers

import (
	"context"
	"fmt"

	"github.com/KTH-EXPECA/expecactl/internal/container"
	"github.com/KTH-EXPECA/expecactl/internal/util/naming"
)

// ListContainers prints every container of the project.
func ListContainers(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	containers, err := pCtx.Containers.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	briefs := make([]container.Brief, 0, len(containers))
	for _, c := range containers {
		briefs = append(briefs, container.Shorten(c))
	}

	fmt.Fprint(stdout, renderContainerTable(briefs))
	return nil
}

// RunContainerOpts are the flags of an ad-hoc container run.
type RunContainerOpts struct {
	Name          string
	Image         string
	Command       []string
	ReservationID string
	Networks      []string
	Ports         []int
}

// RunContainer starts a single ad-hoc container, outside the configured
// experiment containers. Networks are given by name and resolved through
// Neutron.
func RunContainer(ctx context.Context, configPath string, opts RunContainerOpts) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	runOpts := container.RunOpts{
		Name:          naming.Container(cfg.Name, opts.Name),
		Image:         opts.Image,
		Command:       opts.Command,
		ReservationID: opts.ReservationID,
		Ports:         opts.Ports,
	}
	for _, netName := range opts.Networks {
		id, err := pCtx.Client.GetNetworkID(ctx, netName)
		if err != nil {
			return fmt.Errorf("failed to resolve network %q: %w", netName, err)
		}
		runOpts.NetworkIDs = append(runOpts.NetworkIDs, id)
	}

	c, err := pCtx.Containers.Run(ctx, runOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%-20s %s\n", c.Name, c.UUID)
	return nil
}

// RemoveContainer removes one container by uuid or name. Absent
// containers count as removed.
func RemoveContainer(ctx context.Context, configPath, ref string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := pCtx.Containers.Remove(ctx, ref); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Container %s removed.\n", ref)
	return nil
}

// ContainerLogs prints the log output of one container, looked up by
// uuid or name.
func ContainerLogs(ctx context.Context, configPath, ref string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	pCtx, err := newContext(ctx, cfg)
	if err != nil {
		return err
	}

	logs, err := pCtx.Containers.Logs(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get logs for %s: %w", ref, err)
	}

	fmt.Fprint(stdout, logs)
	return nil
}
