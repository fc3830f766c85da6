package testbed

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GetSnapshot fetches both status endpoints concurrently.
func (c *Client) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ips, err := c.AvailableIPs(ctx)
		if err != nil {
			return err
		}
		snap.AvailableIPs = ips
		return nil
	})
	g.Go(func() error {
		radios, err := c.RadioMap(ctx)
		if err != nil {
			return err
		}
		snap.Radios = radios
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
