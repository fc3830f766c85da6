// Package provisioning turns an experiment configuration into testbed
// resources, phase by phase, and tears them down again.
package provisioning

import (
	"context"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/container"
	"github.com/KTH-EXPECA/expecactl/internal/lease"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
)

// State holds the shared results of provisioning phases. It is
// progressively populated as each phase completes and is read by the
// phases that follow.
type State struct {
	// Lease results, keyed by item name.
	LeaseIDs       map[string]string
	ReservationIDs map[string]string

	// Neutron ids of the networks created by network leases, keyed by
	// item name.
	NetworkIDs map[string]string

	// Container results, keyed by container name.
	ContainerUUIDs map[string]string

	// Keypair uploaded for this experiment.
	KeypairName string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		LeaseIDs:       make(map[string]string),
		ReservationIDs: make(map[string]string),
		NetworkIDs:     make(map[string]string),
		ContainerUUIDs: make(map[string]string),
	}
}

// Context wraps all dependencies and state needed for a provisioning
// phase.
type Context struct {
	context.Context
	Config     *config.Config
	State      *State
	Client     openstack.TestbedManager
	Leases     *lease.Manager
	Containers *container.Manager
	Observer   Observer
	Timeouts   *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, client openstack.TestbedManager) *Context {
	timeouts := config.LoadTimeouts()
	return &Context{
		Context:    ctx,
		Config:     cfg,
		State:      NewState(),
		Client:     client,
		Leases:     lease.NewManager(client, timeouts),
		Containers: container.NewManager(client, timeouts),
		Observer:   NewLogObserver(),
		Timeouts:   timeouts,
	}
}
