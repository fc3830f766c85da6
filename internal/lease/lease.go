package lease

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/metrics"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
	"github.com/KTH-EXPECA/expecactl/internal/util/naming"
	"github.com/KTH-EXPECA/expecactl/internal/util/retry"
)

// Manager drives the lease lifecycle against Blazar.
//
// Lease requests are strictly serial: the testbed's Blazar rejects
// concurrent bursts, so callers reserve one item at a time and the pauses
// between retries are fixed rather than backed off.
type Manager struct {
	client   openstack.LeaseManager
	timeouts *config.Timeouts
	log      *logrus.Entry
}

// NewManager creates a lease manager.
func NewManager(client openstack.LeaseManager, timeouts *config.Timeouts) *Manager {
	return &Manager{
		client:   client,
		timeouts: timeouts,
		log:      logrus.WithField("component", "lease"),
	}
}

// Status returns the current status of a lease, or LeaseStatusGone when
// the lease no longer appears in listings.
func (m *Manager) Status(ctx context.Context, id string) (string, error) {
	leases, err := m.client.ListLeases(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check lease status: %w", err)
	}
	for _, l := range leases {
		if l.ID == id {
			return l.Status, nil
		}
	}
	return openstack.LeaseStatusGone, nil
}

// WaitUntilStatus polls the lease until it reaches the desired status.
// Waiting for LeaseStatusGone means waiting for the lease to disappear.
//
// The first probe happens one poll interval after the call: Blazar needs
// a moment to pick the lease up, and probing earlier just reads stale
// state. ERROR fails the wait immediately unless tolerateError is set
// (used while cleaning up leases already known to be broken).
func (m *Manager) WaitUntilStatus(ctx context.Context, id, name, desired string, tolerateError bool) error {
	log := m.log.WithFields(logrus.Fields{"lease": name, "id": id})
	log.Infof("waiting up to %s for status %q", m.timeouts.LeaseWait, desired)

	last := "unknown"
	err := wait.PollUntilContextTimeout(ctx, m.timeouts.PollInterval, m.timeouts.LeaseWait, false,
		func(ctx context.Context) (bool, error) {
			status, err := m.Status(ctx, id)
			if err != nil {
				// Listing hiccups are transient, keep polling.
				log.WithError(err).Warn("status check failed")
				return false, nil
			}
			last = status
			log.WithField("status", status).Info("lease status")

			switch {
			case status == desired:
				return true, nil
			case status == openstack.LeaseStatusError && !tolerateError:
				return false, fmt.Errorf("lease %s (%s) entered ERROR", name, id)
			case status == openstack.LeaseStatusGone && desired != openstack.LeaseStatusGone:
				return false, fmt.Errorf("lease %s (%s) disappeared while waiting for %q", name, id, desired)
			}
			return false, nil
		})
	if err == nil {
		return nil
	}
	if wait.Interrupted(err) {
		metrics.WaitTimeouts.WithLabelValues("lease").Inc()
		return fmt.Errorf("timeout: lease %s (%s) is stuck in %q", name, id, last)
	}
	return err
}

// Reserve creates a lease for a device or network item and waits for it
// to become ACTIVE. A failed attempt removes whatever half-created lease
// it left behind, pauses, and tries again up to the configured number of
// retries.
func (m *Manager) Reserve(ctx context.Context, item config.Item) (*openstack.Lease, error) {
	reservations := []openstack.Reservation{}
	switch item.Type {
	case config.ItemTypeDevice:
		AddDeviceReservation(&reservations, item.Name)
	case config.ItemTypeNetwork:
		AddSegmentReservation(&reservations, naming.Network(item.Name), item.SegmentID)
	default:
		return nil, fmt.Errorf("cannot reserve %s: unknown item type %q", item.Name, item.Type)
	}

	name := naming.Lease(item.Name)
	log := m.log.WithField("lease", name)
	log.Info("reserving")

	var result *openstack.Lease
	attempt := 0
	op := func() error {
		if attempt++; attempt > 1 {
			metrics.RetryAttempts.WithLabelValues("lease_create").Inc()
			log.Infof("retrying reservation, attempt %d", attempt)
		}

		// Stamps are rebuilt per attempt so a retried lease does not
		// start in the past.
		start, end := Duration(item.Duration.Days, item.Duration.Hours)
		created, err := m.client.CreateLease(ctx, openstack.LeaseCreateOpts{
			Name:         name,
			StartDate:    start,
			EndDate:      end,
			Reservations: reservations,
			Events:       []map[string]any{},
		})
		if err != nil {
			log.WithError(err).Warn("lease create failed")
			if openstack.IsOverQuota(err) {
				return retry.Fatal(err)
			}
			return err
		}

		if err := m.WaitUntilStatus(ctx, created.ID, name, openstack.LeaseStatusActive, false); err != nil {
			log.WithError(err).Warn("lease did not become active, removing it")
			if rmErr := m.Remove(ctx, created.ID, name, true); rmErr != nil {
				log.WithError(rmErr).Error("cleanup of failed lease also failed")
			}
			return err
		}

		result = created
		return nil
	}

	err := retry.Do(ctx, op,
		retry.WithMaxRetries(m.timeouts.CreateRetries),
		retry.WithDelay(m.timeouts.RetryDelay))
	if err != nil {
		metrics.LeaseOperations.WithLabelValues(metrics.OpCreate, metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to reserve %s: %w", item.Name, err)
	}

	metrics.LeaseOperations.WithLabelValues(metrics.OpCreate, metrics.ResultOK).Inc()
	log.WithField("id", result.ID).Info("reservation active")
	return result, nil
}

// Remove deletes a lease and waits for it to disappear from listings.
// Leases mid-transition (STARTING, DELETING) are retried after a pause;
// a lease that is already gone is a fatal error so the caller can tell
// "removed by us" from "was not there".
func (m *Manager) Remove(ctx context.Context, id, name string, tolerateError bool) error {
	log := m.log.WithFields(logrus.Fields{"lease": name, "id": id})
	log.Info("removing reservation")

	op := func() error {
		status, err := m.Status(ctx, id)
		if err != nil {
			return err
		}

		switch status {
		case openstack.LeaseStatusGone:
			return retry.Fatal(fmt.Errorf("lease %s (%s) not found or already removed", name, id))
		case openstack.LeaseStatusStarting, openstack.LeaseStatusDeleting:
			metrics.RetryAttempts.WithLabelValues("lease_delete").Inc()
			return fmt.Errorf("lease %s (%s) is %s", name, id, status)
		}

		if err := m.client.DeleteLease(ctx, id); err != nil {
			if openstack.IsNotFound(err) {
				return nil
			}
			log.WithError(err).Warn("lease delete failed")
			return err
		}

		return m.WaitUntilStatus(ctx, id, name, openstack.LeaseStatusGone, tolerateError)
	}

	err := retry.Do(ctx, op,
		retry.WithMaxRetries(m.timeouts.RemoveRetries),
		retry.WithDelay(m.timeouts.RetryDelay))
	if err != nil {
		metrics.LeaseOperations.WithLabelValues(metrics.OpDelete, metrics.ResultError).Inc()
		return fmt.Errorf("giving up on removing lease %s: %w", name, err)
	}

	metrics.LeaseOperations.WithLabelValues(metrics.OpDelete, metrics.ResultOK).Inc()
	log.Info("reservation removed")
	return nil
}

// List returns all leases of the current project.
func (m *Manager) List(ctx context.Context) ([]openstack.Lease, error) {
	return m.client.ListLeases(ctx)
}

// Get resolves a lease by id, falling back to a unique-name lookup.
func (m *Manager) Get(ctx context.Context, ref string) (*openstack.Lease, error) {
	l, err := m.client.GetLease(ctx, ref)
	if err == nil {
		return l, nil
	}
	if !openstack.IsNotFound(err) {
		return nil, err
	}

	id, err := m.IDForName(ctx, ref)
	if err != nil {
		return nil, err
	}
	return m.client.GetLease(ctx, id)
}

// IDForName resolves a lease name to its id. Zero or multiple matches
// are errors.
func (m *Manager) IDForName(ctx context.Context, name string) (string, error) {
	leases, err := m.client.ListLeases(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, l := range leases {
		if l.Name == name {
			matches = append(matches, l.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no lease found with name %q", name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple leases found with name %q", name)
	}
}

// Brief is the shortened lease view used in listings.
type Brief struct {
	Name          string
	ID            string
	ReservationID string
	Status        string
	EndDate       string
}

// Shorten reduces a lease to its listing columns. The reservation id
// shown is the first one, which is the only one for single-resource
// testbed leases.
func Shorten(l openstack.Lease) Brief {
	b := Brief{
		Name:    l.Name,
		ID:      l.ID,
		Status:  l.Status,
		EndDate: l.EndDate,
	}
	if len(l.Reservations) > 0 {
		b.ReservationID = l.Reservations[0].ID
	}
	return b
}
