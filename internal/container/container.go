// Package container runs experiment workloads on the testbed's container
// service and drives them through their lifecycle.
package container

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/KTH-EXPECA/expecactl/internal/config"
	"github.com/KTH-EXPECA/expecactl/internal/metrics"
	"github.com/KTH-EXPECA/expecactl/internal/openstack"
	"github.com/KTH-EXPECA/expecactl/internal/util/naming"
	"github.com/KTH-EXPECA/expecactl/internal/util/retry"
)

// RunOpts describes a container to run on a reserved device.
type RunOpts struct {
	Name  string
	Image string
	// Command overrides the image entrypoint arguments.
	Command []string
	// ReservationID pins the container to the device reserved under a
	// lease; the scheduler reads it from the placement hints.
	ReservationID string
	// NetworkIDs attaches the container to already-resolved Neutron
	// networks.
	NetworkIDs  []string
	Environment map[string]string
	Ports       []int
}

// Manager drives container lifecycle against the container service.
type Manager struct {
	client   openstack.ContainerManager
	timeouts *config.Timeouts
	log      *logrus.Entry
}

// NewManager creates a container manager.
func NewManager(client openstack.ContainerManager, timeouts *config.Timeouts) *Manager {
	return &Manager{
		client:   client,
		timeouts: timeouts,
		log:      logrus.WithField("component", "container"),
	}
}

// Status returns the current container status, or ContainerStatusGone
// when the service no longer knows the reference.
func (m *Manager) Status(ctx context.Context, ref string) (string, error) {
	c, err := m.client.GetContainer(ctx, ref)
	if err != nil {
		if openstack.IsNotFound(err) {
			return openstack.ContainerStatusGone, nil
		}
		return "", err
	}
	return c.Status, nil
}

// WaitUntilStatus polls a container until it reaches the desired status.
// Image pulls on the radio hosts are slow, hence the long default
// deadline. Status Error fails the wait immediately.
func (m *Manager) WaitUntilStatus(ctx context.Context, ref, desired string) error {
	log := m.log.WithField("container", ref)
	log.Infof("waiting up to %s for status %q", m.timeouts.ContainerWait, desired)

	last := "unknown"
	err := wait.PollUntilContextTimeout(ctx, m.timeouts.PollInterval, m.timeouts.ContainerWait, false,
		func(ctx context.Context) (bool, error) {
			status, err := m.Status(ctx, ref)
			if err != nil {
				log.WithError(err).Warn("status check failed")
				return false, nil
			}
			last = status
			log.WithField("status", status).Info("container status")

			switch {
			case status == desired:
				return true, nil
			case status == openstack.ContainerStatusError:
				return false, fmt.Errorf("container %s entered Error", ref)
			case status == openstack.ContainerStatusGone && desired != openstack.ContainerStatusGone:
				return false, fmt.Errorf("container %s disappeared while waiting for %q", ref, desired)
			}
			return false, nil
		})
	if err == nil {
		return nil
	}
	if wait.Interrupted(err) {
		metrics.WaitTimeouts.WithLabelValues("container").Inc()
		return fmt.Errorf("timeout: container %s is stuck in %q", ref, last)
	}
	return err
}

// Run creates a container and waits for it to reach Running. A failed
// attempt force-deletes the leftover container, pauses, and tries again
// up to the configured number of retries.
func (m *Manager) Run(ctx context.Context, opts RunOpts) (*openstack.Container, error) {
	if opts.Name == "" {
		opts.Name = "container-" + naming.Random()
	}
	log := m.log.WithField("container", opts.Name)
	log.Info("starting container")

	createOpts := openstack.ContainerCreateOpts{
		Name:        opts.Name,
		Image:       opts.Image,
		Command:     opts.Command,
		Environment: opts.Environment,
		Interactive: true,
	}
	if opts.ReservationID != "" {
		createOpts.Hints = map[string]any{"reservation": opts.ReservationID}
	}
	for _, id := range opts.NetworkIDs {
		createOpts.Nets = append(createOpts.Nets, openstack.ContainerNet{Network: id})
	}
	if len(opts.Ports) > 0 {
		createOpts.ExposedPorts = make(map[string]any, len(opts.Ports))
		for _, p := range opts.Ports {
			createOpts.ExposedPorts[strconv.Itoa(p)+"/tcp"] = map[string]any{}
		}
	}

	var result *openstack.Container
	attempt := 0
	op := func() error {
		if attempt++; attempt > 1 {
			metrics.RetryAttempts.WithLabelValues("container_create").Inc()
			log.Infof("retrying container start, attempt %d", attempt)
		}

		created, err := m.client.CreateContainer(ctx, createOpts)
		if err != nil {
			log.WithError(err).Warn("container create failed")
			if openstack.IsOverQuota(err) {
				return retry.Fatal(err)
			}
			return err
		}

		if err := m.WaitUntilStatus(ctx, created.UUID, openstack.ContainerStatusRunning); err != nil {
			log.WithError(err).Warn("container did not start, removing it")
			if rmErr := m.Remove(ctx, created.UUID); rmErr != nil {
				log.WithError(rmErr).Error("cleanup of failed container also failed")
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
		metrics.ContainerOperations.WithLabelValues(metrics.OpCreate, metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to start container %s: %w", opts.Name, err)
	}

	metrics.ContainerOperations.WithLabelValues(metrics.OpCreate, metrics.ResultOK).Inc()
	log.WithField("uuid", result.UUID).Info("container running")
	return result, nil
}

// Remove force-deletes a container and waits for it to disappear. A
// container that is already gone counts as success: remove is cleanup,
// not bookkeeping.
func (m *Manager) Remove(ctx context.Context, ref string) error {
	log := m.log.WithField("container", ref)
	log.Info("removing container")

	op := func() error {
		status, err := m.Status(ctx, ref)
		if err != nil {
			return err
		}
		if status == openstack.ContainerStatusGone {
			return nil
		}

		if err := m.client.DeleteContainer(ctx, ref, true); err != nil {
			if openstack.IsNotFound(err) {
				return nil
			}
			log.WithError(err).Warn("container delete failed")
			return err
		}

		return m.WaitUntilStatus(ctx, ref, openstack.ContainerStatusGone)
	}

	err := retry.Do(ctx, op,
		retry.WithMaxRetries(m.timeouts.RemoveRetries),
		retry.WithDelay(m.timeouts.RetryDelay))
	if err != nil {
		metrics.ContainerOperations.WithLabelValues(metrics.OpDelete, metrics.ResultError).Inc()
		return fmt.Errorf("giving up on removing container %s: %w", ref, err)
	}

	metrics.ContainerOperations.WithLabelValues(metrics.OpDelete, metrics.ResultOK).Inc()
	log.Info("container removed")
	return nil
}

// List returns all containers of the current project.
func (m *Manager) List(ctx context.Context) ([]openstack.Container, error) {
	return m.client.ListContainers(ctx)
}

// Get returns a container by UUID or unique name.
func (m *Manager) Get(ctx context.Context, ref string) (*openstack.Container, error) {
	return m.client.GetContainer(ctx, ref)
}

// Logs fetches a container's output.
func (m *Manager) Logs(ctx context.Context, ref string) (string, error) {
	return m.client.ContainerLogs(ctx, ref)
}

// Brief is the shortened container view used in listings.
type Brief struct {
	Name      string
	UUID      string
	Status    string
	Image     string
	Addresses []string
}

// Shorten reduces a container to its listing columns.
func Shorten(c openstack.Container) Brief {
	b := Brief{
		Name:   c.Name,
		UUID:   c.UUID,
		Status: c.Status,
		Image:  c.Image,
	}
	for _, addrs := range c.Addresses {
		for _, a := range addrs {
			if ip, ok := a["addr"].(string); ok {
				b.Addresses = append(b.Addresses, ip)
			}
		}
	}
	return b
}
