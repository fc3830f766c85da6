package openstack

import (
	"context"
)

// MockClient is a functional mock of TestbedManager. Tests set only the
// Func fields they care about; unset methods return zero values.
type MockClient struct {
	CreateLeaseFunc func(ctx context.Context, opts LeaseCreateOpts) (*Lease, error)
	GetLeaseFunc    func(ctx context.Context, id string) (*Lease, error)
	ListLeasesFunc  func(ctx context.Context) ([]Lease, error)
	UpdateLeaseFunc func(ctx context.Context, id string, opts LeaseUpdateOpts) (*Lease, error)
	DeleteLeaseFunc func(ctx context.Context, id string) error

	GetNetworkIDFunc    func(ctx context.Context, name string) (string, error)
	ListNetworksFunc    func(ctx context.Context) ([]Network, error)
	PublicNetworkIDFunc func(ctx context.Context) (string, error)
	ListFloatingIPsFunc func(ctx context.Context) ([]FloatingIP, error)

	CreateContainerFunc func(ctx context.Context, opts ContainerCreateOpts) (*Container, error)
	GetContainerFunc    func(ctx context.Context, ref string) (*Container, error)
	ListContainersFunc  func(ctx context.Context) ([]Container, error)
	DeleteContainerFunc func(ctx context.Context, ref string, force bool) error
	ContainerLogsFunc   func(ctx context.Context, ref string) (string, error)

	EnsureKeypairFunc func(ctx context.Context, name, publicKey string) error
	DeleteKeypairFunc func(ctx context.Context, name string) error
}

// Ensure interface compliance.
var _ TestbedManager = (*MockClient)(nil)

func (m *MockClient) CreateLease(ctx context.Context, opts LeaseCreateOpts) (*Lease, error) {
	if m.CreateLeaseFunc != nil {
		return m.CreateLeaseFunc(ctx, opts)
	}
	return nil, nil
}

func (m *MockClient) GetLease(ctx context.Context, id string) (*Lease, error) {
	if m.GetLeaseFunc != nil {
		return m.GetLeaseFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClient) ListLeases(ctx context.Context) ([]Lease, error) {
	if m.ListLeasesFunc != nil {
		return m.ListLeasesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) UpdateLease(ctx context.Context, id string, opts LeaseUpdateOpts) (*Lease, error) {
	if m.UpdateLeaseFunc != nil {
		return m.UpdateLeaseFunc(ctx, id, opts)
	}
	return nil, nil
}

func (m *MockClient) DeleteLease(ctx context.Context, id string) error {
	if m.DeleteLeaseFunc != nil {
		return m.DeleteLeaseFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) GetNetworkID(ctx context.Context, name string) (string, error) {
	if m.GetNetworkIDFunc != nil {
		return m.GetNetworkIDFunc(ctx, name)
	}
	return "", nil
}

func (m *MockClient) ListNetworks(ctx context.Context) ([]Network, error) {
	if m.ListNetworksFunc != nil {
		return m.ListNetworksFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) PublicNetworkID(ctx context.Context) (string, error) {
	if m.PublicNetworkIDFunc != nil {
		return m.PublicNetworkIDFunc(ctx)
	}
	return "", nil
}

func (m *MockClient) ListFloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	if m.ListFloatingIPsFunc != nil {
		return m.ListFloatingIPsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) CreateContainer(ctx context.Context, opts ContainerCreateOpts) (*Container, error) {
	if m.CreateContainerFunc != nil {
		return m.CreateContainerFunc(ctx, opts)
	}
	return nil, nil
}

func (m *MockClient) GetContainer(ctx context.Context, ref string) (*Container, error) {
	if m.GetContainerFunc != nil {
		return m.GetContainerFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockClient) ListContainers(ctx context.Context) ([]Container, error) {
	if m.ListContainersFunc != nil {
		return m.ListContainersFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) DeleteContainer(ctx context.Context, ref string, force bool) error {
	if m.DeleteContainerFunc != nil {
		return m.DeleteContainerFunc(ctx, ref, force)
	}
	return nil
}

func (m *MockClient) ContainerLogs(ctx context.Context, ref string) (string, error) {
	if m.ContainerLogsFunc != nil {
		return m.ContainerLogsFunc(ctx, ref)
	}
	return "", nil
}

func (m *MockClient) EnsureKeypair(ctx context.Context, name, publicKey string) error {
	if m.EnsureKeypairFunc != nil {
		return m.EnsureKeypairFunc(ctx, name, publicKey)
	}
	return nil
}

func (m *MockClient) DeleteKeypair(ctx context.Context, name string) error {
	if m.DeleteKeypairFunc != nil {
		return m.DeleteKeypairFunc(ctx, name)
	}
	return nil
}
