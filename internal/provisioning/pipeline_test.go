package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/stretchr/testify/require"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/container"
	"github.com/KTH-EXPECA/expecactl/internal/lease"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
)

func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		LeaseWait:     300 * time.Millisecond,
		ContainerWait: 300 * time.Millisecond,
		PollInterval:  5 * time.Millisecond,
		CreateRetries: 1,
		RemoveRetries: 1,
		RetryDelay:    5 * time.Millisecond,
	}
}

func testContext(t *testing.T, cfg *config.Config, client openstack.TestbedManager) *Context {
	t.Helper()
	tm := fastTimeouts()
	return &Context{
		Context:    context.Background(),
		Config:     cfg,
		State:      NewState(),
		Client:     client,
		Leases:     lease.NewManager(client, tm),
		Containers: container.NewManager(client, tm),
		Observer:   NewLogObserver(),
		Timeouts:   tm,
	}
}

func notFoundErr() error {
	return gophercloud.ErrUnexpectedResponseCode{Actual: 404}
}

func writeTestPublicKey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id_rsa.pub")
	require.NoError(t, os.WriteFile(path, []byte("ssh-rsa AAAA test"), 0o600))
	return path
}

// applyMock wires a TestbedManager that accepts every provisioning call
// and tracks what was created.
type applyMock struct {
	openstack.MockClient
	leases     map[string]*openstack.Lease
	containers map[string]*openstack.Container
	keypairs   map[string]string
}

func newApplyMock() *applyMock {
	m := &applyMock{
		leases:     make(map[string]*openstack.Lease),
		containers: make(map[string]*openstack.Container),
		keypairs:   make(map[string]string),
	}
	m.EnsureKeypairFunc = func(_ context.Context, name, publicKey string) error {
		m.keypairs[name] = publicKey
		return nil
	}
	m.CreateLeaseFunc = func(_ context.Context, opts openstack.LeaseCreateOpts) (*openstack.Lease, error) {
		l := &openstack.Lease{
			ID:     "lease-" + opts.Name,
			Name:   opts.Name,
			Status: openstack.LeaseStatusActive,
		}
		for i, r := range opts.Reservations {
			r.ID = l.ID + "-res"
			opts.Reservations[i] = r
		}
		l.Reservations = opts.Reservations
		m.leases[l.ID] = l
		return l, nil
	}
	m.ListLeasesFunc = func(context.Context) ([]openstack.Lease, error) {
		out := make([]openstack.Lease, 0, len(m.leases))
		for _, l := range m.leases {
			out = append(out, *l)
		}
		return out, nil
	}
	m.GetNetworkIDFunc = func(_ context.Context, name string) (string, error) {
		return "neutron-" + name, nil
	}
	m.CreateContainerFunc = func(_ context.Context, opts openstack.ContainerCreateOpts) (*openstack.Container, error) {
		c := &openstack.Container{
			UUID:   "uuid-" + opts.Name,
			Name:   opts.Name,
			Status: openstack.ContainerStatusRunning,
		}
		m.containers[c.UUID] = c
		return c, nil
	}
	m.GetContainerFunc = func(_ context.Context, ref string) (*openstack.Container, error) {
		if c, ok := m.containers[ref]; ok {
			return c, nil
		}
		return nil, notFoundErr()
	}
	return m
}

func demoConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Name: "demo",
		Keypair: config.Keypair{
			Name:          "demo-key",
			PublicKeyPath: writeTestPublicKey(t),
		},
		Items: []config.Item{
			{Name: "net1", Type: config.ItemTypeNetwork, SegmentID: "137", Duration: config.Duration{Days: 1}},
			{Name: "adv-01", Type: config.ItemTypeDevice, Duration: config.Duration{Days: 1}},
		},
		Containers: []config.Container{
			{Name: "gnb", Image: "img", Device: "adv-01", Networks: []string{"net1"}},
		},
	}
}

func TestRunPhases_Up(t *testing.T) {
	t.Parallel()
	mock := newApplyMock()
	ctx := testContext(t, demoConfig(t), mock)

	require.NoError(t, RunPhases(ctx, Up()))

	// Keypair was uploaded.
	require.Contains(t, mock.keypairs, "demo-key")
	require.Equal(t, "demo-key", ctx.State.KeypairName)

	// Both items got leases; device reservation id recorded for
	// container placement.
	require.Equal(t, "lease-adv-01-lease", ctx.State.LeaseIDs["adv-01"])
	require.Equal(t, "lease-net1-lease", ctx.State.LeaseIDs["net1"])
	require.Equal(t, "lease-adv-01-lease-res", ctx.State.ReservationIDs["adv-01"])

	// Network item resolved to its Neutron network.
	require.Equal(t, "neutron-net1-net", ctx.State.NetworkIDs["net1"])

	// Container pinned to the device reservation and attached to the
	// experiment network.
	require.Equal(t, "uuid-demo-gnb", ctx.State.ContainerUUIDs["gnb"])
	created := mock.containers["uuid-demo-gnb"]
	require.NotNil(t, created)
}

func TestLeasePhase_DevicesBeforeNetworks(t *testing.T) {
	t.Parallel()
	var order []string
	mock := newApplyMock()
	inner := mock.CreateLeaseFunc
	mock.CreateLeaseFunc = func(ctx context.Context, opts openstack.LeaseCreateOpts) (*openstack.Lease, error) {
		order = append(order, opts.Name)
		return inner(ctx, opts)
	}

	cfg := demoConfig(t)
	ctx := testContext(t, cfg, mock)

	require.NoError(t, (&LeasePhase{}).Provision(ctx))
	// Config lists the network first, the phase still reserves the
	// device first.
	require.Equal(t, []string{"adv-01-lease", "net1-lease"}, order)
}

func TestContainerPhase_MissingDeviceReservation(t *testing.T) {
	t.Parallel()
	cfg := demoConfig(t)
	ctx := testContext(t, cfg, newApplyMock())

	err := (&ContainerPhase{}).Provision(ctx)
	require.ErrorContains(t, err, "no reservation for device")
}

func TestRunPhases_Down(t *testing.T) {
	t.Parallel()
	mock := newApplyMock()
	cfg := demoConfig(t)

	removedLeases := map[string]bool{}
	mock.leases["lease-adv-01-lease"] = &openstack.Lease{
		ID: "lease-adv-01-lease", Name: "adv-01-lease", Status: openstack.LeaseStatusActive,
	}
	mock.DeleteLeaseFunc = func(_ context.Context, id string) error {
		removedLeases[id] = true
		delete(mock.leases, id)
		return nil
	}

	mock.containers["uuid-demo-gnb"] = &openstack.Container{
		UUID: "uuid-demo-gnb", Name: "demo-gnb", Status: openstack.ContainerStatusRunning,
	}
	mock.ListContainersFunc = func(context.Context) ([]openstack.Container, error) {
		out := make([]openstack.Container, 0, len(mock.containers))
		for _, c := range mock.containers {
			out = append(out, *c)
		}
		return out, nil
	}
	mock.GetContainerFunc = func(_ context.Context, ref string) (*openstack.Container, error) {
		if c, ok := mock.containers[ref]; ok {
			return c, nil
		}
		return nil, notFoundErr()
	}
	mock.DeleteContainerFunc = func(_ context.Context, ref string, _ bool) error {
		delete(mock.containers, ref)
		return nil
	}

	deletedKeypairs := []string{}
	mock.DeleteKeypairFunc = func(_ context.Context, name string) error {
		deletedKeypairs = append(deletedKeypairs, name)
		return nil
	}

	ctx := testContext(t, cfg, mock)
	require.NoError(t, RunPhases(ctx, Down()))

	require.True(t, removedLeases["lease-adv-01-lease"])
	require.Empty(t, mock.containers)
	require.Equal(t, []string{"demo-key"}, deletedKeypairs)
}

func TestTeardown_ToleratesAbsentResources(t *testing.T) {
	t.Parallel()
	mock := newApplyMock()
	ctx := testContext(t, demoConfig(t), mock)

	// Nothing exists at all; teardown must still succeed.
	require.NoError(t, RunPhases(ctx, Down()))
}
