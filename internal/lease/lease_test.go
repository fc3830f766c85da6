package lease

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/stretchr/testify/require"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
)

func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		LeaseWait:     300 * time.Millisecond,
		ContainerWait: 300 * time.Millisecond,
		PollInterval:  10 * time.Millisecond,
		CreateRetries: 2,
		RemoveRetries: 1,
		RetryDelay:    10 * time.Millisecond,
	}
}

// listingSequence returns a ListLeases mock that walks through the given
// statuses for one lease and sticks at the last one. An empty status
// means the lease is absent from the listing.
func listingSequence(id string, statuses ...string) func(context.Context) ([]openstack.Lease, error) {
	i := 0
	return func(context.Context) ([]openstack.Lease, error) {
		status := statuses[len(statuses)-1]
		if i < len(statuses) {
			status = statuses[i]
			i++
		}
		if status == openstack.LeaseStatusGone {
			return []openstack.Lease{}, nil
		}
		return []openstack.Lease{{ID: id, Name: "test-lease", Status: status}}, nil
	}
}

func TestStatus_Gone(t *testing.T) {
	t.Parallel()
	m := NewManager(&openstack.MockClient{}, fastTimeouts())

	status, err := m.Status(context.Background(), "nope")
	require.NoError(t, err)
	require.Equal(t, openstack.LeaseStatusGone, status)
}

func TestWaitUntilStatus_ReachesActive(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: listingSequence("l1",
			openstack.LeaseStatusPending,
			openstack.LeaseStatusStarting,
			openstack.LeaseStatusActive),
	}
	m := NewManager(mock, fastTimeouts())

	err := m.WaitUntilStatus(context.Background(), "l1", "test-lease", openstack.LeaseStatusActive, false)
	require.NoError(t, err)
}

func TestWaitUntilStatus_ErrorIsTerminal(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: listingSequence("l1", openstack.LeaseStatusError),
	}
	m := NewManager(mock, fastTimeouts())

	err := m.WaitUntilStatus(context.Background(), "l1", "test-lease", openstack.LeaseStatusActive, false)
	require.ErrorContains(t, err, "ERROR")
}

func TestWaitUntilStatus_ErrorToleratedWhileDeleting(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: listingSequence("l1",
			openstack.LeaseStatusError,
			openstack.LeaseStatusGone),
	}
	m := NewManager(mock, fastTimeouts())

	err := m.WaitUntilStatus(context.Background(), "l1", "test-lease", openstack.LeaseStatusGone, true)
	require.NoError(t, err)
}

func TestWaitUntilStatus_Timeout(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: listingSequence("l1", openstack.LeaseStatusPending),
	}
	m := NewManager(mock, fastTimeouts())

	err := m.WaitUntilStatus(context.Background(), "l1", "test-lease", openstack.LeaseStatusActive, false)
	require.ErrorContains(t, err, "stuck in")
	require.ErrorContains(t, err, openstack.LeaseStatusPending)
}

func TestWaitUntilStatus_VanishedLease(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: listingSequence("l1", openstack.LeaseStatusGone),
	}
	m := NewManager(mock, fastTimeouts())

	err := m.WaitUntilStatus(context.Background(), "l1", "test-lease", openstack.LeaseStatusActive, false)
	require.ErrorContains(t, err, "disappeared")
}

func TestReserve_SucceedsFirstTry(t *testing.T) {
	t.Parallel()
	var created openstack.LeaseCreateOpts
	mock := &openstack.MockClient{
		CreateLeaseFunc: func(_ context.Context, opts openstack.LeaseCreateOpts) (*openstack.Lease, error) {
			created = opts
			return &openstack.Lease{ID: "l1", Name: opts.Name}, nil
		},
		ListLeasesFunc: listingSequence("l1", openstack.LeaseStatusActive),
	}
	m := NewManager(mock, fastTimeouts())

	l, err := m.Reserve(context.Background(), config.Item{
		Name: "adv-01", Type: config.ItemTypeDevice, Duration: config.Duration{Days: 1},
	})
	require.NoError(t, err)
	require.Equal(t, "l1", l.ID)

	require.Equal(t, "adv-01-lease", created.Name)
	require.NotNil(t, created.Events)
	require.Len(t, created.Reservations, 1)
	require.Equal(t, openstack.ResourceDevice, created.Reservations[0].ResourceType)
}

func TestReserve_RetriesAfterCreateFailure(t *testing.T) {
	t.Parallel()
	calls := 0
	mock := &openstack.MockClient{
		CreateLeaseFunc: func(_ context.Context, opts openstack.LeaseCreateOpts) (*openstack.Lease, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("boom")
			}
			return &openstack.Lease{ID: "l1", Name: opts.Name}, nil
		},
		ListLeasesFunc: listingSequence("l1", openstack.LeaseStatusActive),
	}
	m := NewManager(mock, fastTimeouts())

	_, err := m.Reserve(context.Background(), config.Item{
		Name: "adv-01", Type: config.ItemTypeDevice,
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestReserve_CleansUpStuckLease(t *testing.T) {
	t.Parallel()
	deletes := 0
	mock := &openstack.MockClient{
		CreateLeaseFunc: func(_ context.Context, opts openstack.LeaseCreateOpts) (*openstack.Lease, error) {
			return &openstack.Lease{ID: "l1", Name: opts.Name}, nil
		},
		// ERROR until deleted, then gone.
		ListLeasesFunc: func(context.Context) ([]openstack.Lease, error) {
			if deletes > 0 {
				return []openstack.Lease{}, nil
			}
			return []openstack.Lease{{ID: "l1", Status: openstack.LeaseStatusError}}, nil
		},
		DeleteLeaseFunc: func(context.Context, string) error {
			deletes++
			return nil
		},
	}
	tm := fastTimeouts()
	tm.CreateRetries = 1
	m := NewManager(mock, tm)

	_, err := m.Reserve(context.Background(), config.Item{
		Name: "adv-01", Type: config.ItemTypeDevice,
	})
	require.Error(t, err)
	// Each failed attempt must have removed its half-created lease.
	require.GreaterOrEqual(t, deletes, 1)
}

func TestReserve_UnknownType(t *testing.T) {
	t.Parallel()
	m := NewManager(&openstack.MockClient{}, fastTimeouts())
	_, err := m.Reserve(context.Background(), config.Item{Name: "x", Type: "server"})
	require.ErrorContains(t, err, "unknown item type")
}

func TestRemove_Success(t *testing.T) {
	t.Parallel()
	deleted := false
	mock := &openstack.MockClient{
		ListLeasesFunc: func(context.Context) ([]openstack.Lease, error) {
			if deleted {
				return []openstack.Lease{}, nil
			}
			return []openstack.Lease{{ID: "l1", Status: openstack.LeaseStatusActive}}, nil
		},
		DeleteLeaseFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	m := NewManager(mock, fastTimeouts())

	err := m.Remove(context.Background(), "l1", "test-lease", false)
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestRemove_AlreadyGone(t *testing.T) {
	t.Parallel()
	deleteCalled := false
	mock := &openstack.MockClient{
		DeleteLeaseFunc: func(context.Context, string) error {
			deleteCalled = true
			return nil
		},
	}
	m := NewManager(mock, fastTimeouts())

	err := m.Remove(context.Background(), "l1", "test-lease", false)
	require.ErrorContains(t, err, "already removed")
	require.False(t, deleteCalled)
}

func TestRemove_WaitsOutTransitionalStatus(t *testing.T) {
	t.Parallel()
	deleted := false
	first := true
	mock := &openstack.MockClient{
		ListLeasesFunc: func(context.Context) ([]openstack.Lease, error) {
			if deleted {
				return []openstack.Lease{}, nil
			}
			status := openstack.LeaseStatusActive
			if first {
				status = openstack.LeaseStatusStarting
				first = false
			}
			return []openstack.Lease{{ID: "l1", Status: status}}, nil
		},
		DeleteLeaseFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	m := NewManager(mock, fastTimeouts())

	err := m.Remove(context.Background(), "l1", "test-lease", false)
	require.NoError(t, err)
}

func TestIDForName(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		ListLeasesFunc: func(context.Context) ([]openstack.Lease, error) {
			return []openstack.Lease{
				{ID: "a", Name: "one"},
				{ID: "b", Name: "two"},
				{ID: "c", Name: "two"},
			}, nil
		},
	}
	m := NewManager(mock, fastTimeouts())
	ctx := context.Background()

	id, err := m.IDForName(ctx, "one")
	require.NoError(t, err)
	require.Equal(t, "a", id)

	_, err = m.IDForName(ctx, "two")
	require.ErrorContains(t, err, "multiple leases")

	_, err = m.IDForName(ctx, "three")
	require.ErrorContains(t, err, "no lease found")
}

func TestGet_FallsBackToNameLookup(t *testing.T) {
	t.Parallel()
	mock := &openstack.MockClient{
		GetLeaseFunc: func(_ context.Context, id string) (*openstack.Lease, error) {
			if id == "a" {
				return &openstack.Lease{ID: "a", Name: "one"}, nil
			}
			return nil, gophercloud.ErrUnexpectedResponseCode{Actual: 404}
		},
		ListLeasesFunc: func(context.Context) ([]openstack.Lease, error) {
			return []openstack.Lease{{ID: "a", Name: "one"}}, nil
		},
	}
	m := NewManager(mock, fastTimeouts())

	l, err := m.Get(context.Background(), "one")
	require.NoError(t, err)
	require.Equal(t, "a", l.ID)
}

func TestShorten(t *testing.T) {
	t.Parallel()
	b := Shorten(openstack.Lease{
		ID:      "l1",
		Name:    "exp-lease",
		Status:  openstack.LeaseStatusActive,
		EndDate: "2026-08-26 10:00",
		Reservations: []openstack.Reservation{
			{ID: "r1"}, {ID: "r2"},
		},
	})
	require.Equal(t, Brief{
		Name:          "exp-lease",
		ID:            "l1",
		ReservationID: "r1",
		Status:        openstack.LeaseStatusActive,
		EndDate:       "2026-08-26 10:00",
	}, b)

	require.Empty(t, Shorten(openstack.Lease{ID: "x"}).ReservationID)
}
