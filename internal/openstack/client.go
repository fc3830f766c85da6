// Package openstack wraps the OpenStack services the ExPECA testbed runs
// on: Blazar for reservations, Neutron for networking, Nova for keypairs
// and the Zun container service for radio workloads.
package openstack

import (
	"context"
)

// LeaseManager defines the interface for Blazar lease CRUD.
type LeaseManager interface {
	CreateLease(ctx context.Context, opts LeaseCreateOpts) (*Lease, error)
	GetLease(ctx context.Context, id string) (*Lease, error)
	ListLeases(ctx context.Context) ([]Lease, error)
	// UpdateLease renames or prolongs a lease, used to sequester leases
	// whose instances failed to start.
	UpdateLease(ctx context.Context, id string, opts LeaseUpdateOpts) (*Lease, error)
	DeleteLease(ctx context.Context, id string) error
}

// NetworkManager defines the interface for the Neutron lookups the
// testbed tooling needs.
type NetworkManager interface {
	// GetNetworkID resolves a network name to its id. Zero or multiple
	// matches are errors.
	GetNetworkID(ctx context.Context, name string) (string, error)
	ListNetworks(ctx context.Context) ([]Network, error)
	// PublicNetworkID returns the id of the shared public network that
	// floating IP reservations draw from.
	PublicNetworkID(ctx context.Context) (string, error)
	ListFloatingIPs(ctx context.Context) ([]FloatingIP, error)
}

// ContainerManager defines the interface for container CRUD on the
// container service.
type ContainerManager interface {
	CreateContainer(ctx context.Context, opts ContainerCreateOpts) (*Container, error)
	// GetContainer accepts a container UUID or unique name.
	GetContainer(ctx context.Context, ref string) (*Container, error)
	ListContainers(ctx context.Context) ([]Container, error)
	DeleteContainer(ctx context.Context, ref string, force bool) error
	ContainerLogs(ctx context.Context, ref string) (string, error)
}

// KeypairManager defines the interface for Nova keypair management.
type KeypairManager interface {
	// EnsureKeypair uploads the public key under the given name. It is
	// idempotent: an existing keypair with the same name is left alone.
	EnsureKeypair(ctx context.Context, name, publicKey string) error
	DeleteKeypair(ctx context.Context, name string) error
}

// TestbedManager aggregates everything the provisioning pipeline needs.
type TestbedManager interface {
	LeaseManager
	NetworkManager
	ContainerManager
	KeypairManager
}
