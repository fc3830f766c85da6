package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
)

// Blazar's REST API wraps single leases in a "lease" key and listings in
// "leases".

// CreateLease creates a new Blazar lease.
func (c *RealClient) CreateLease(ctx context.Context, opts LeaseCreateOpts) (*Lease, error) {
	if opts.Events == nil {
		opts.Events = []map[string]any{}
	}
	if opts.Reservations == nil {
		opts.Reservations = []Reservation{}
	}

	var res struct {
		Lease *Lease `json:"lease"`
	}
	_, err := c.blazar.Post(ctx, c.blazar.ServiceURL("leases"), opts, &res, &gophercloud.RequestOpts{
		OkCodes: []int{200, 201, 202},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lease %q: %w", opts.Name, err)
	}
	return res.Lease, nil
}

// GetLease returns a lease by id.
func (c *RealClient) GetLease(ctx context.Context, id string) (*Lease, error) {
	var res struct {
		Lease *Lease `json:"lease"`
	}
	_, err := c.blazar.Get(ctx, c.blazar.ServiceURL("leases", id), &res, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get lease %s: %w", id, err)
	}
	return res.Lease, nil
}

// ListLeases returns all leases visible to the current project.
func (c *RealClient) ListLeases(ctx context.Context) ([]Lease, error) {
	var res struct {
		Leases []Lease `json:"leases"`
	}
	_, err := c.blazar.Get(ctx, c.blazar.ServiceURL("leases"), &res, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	return res.Leases, nil
}

// UpdateLease renames or prolongs a lease.
func (c *RealClient) UpdateLease(ctx context.Context, id string, opts LeaseUpdateOpts) (*Lease, error) {
	var res struct {
		Lease *Lease `json:"lease"`
	}
	_, err := c.blazar.Put(ctx, c.blazar.ServiceURL("leases", id), opts, &res, &gophercloud.RequestOpts{
		OkCodes: []int{200, 202},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update lease %s: %w", id, err)
	}
	return res.Lease, nil
}

// DeleteLease deletes a lease. Deleting an ACTIVE lease also frees the
// resources reserved under it.
func (c *RealClient) DeleteLease(ctx context.Context, id string) error {
	_, err := c.blazar.Delete(ctx, c.blazar.ServiceURL("leases", id), &gophercloud.RequestOpts{
		OkCodes: []int{200, 202, 204},
	})
	if err != nil {
		return fmt.Errorf("failed to delete lease %s: %w", id, err)
	}
	return nil
}
