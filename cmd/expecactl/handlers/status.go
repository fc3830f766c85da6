package handlers

import (
	"context"
	"fmt"
)

// Status prints the testbed's published status: reservable floating IPs
// and the radio wiring map. It needs no OpenStack credentials.
func Status(ctx context.Context, testbedURL string) error {
	client := newStatusClient(testbedURL)

	snap, err := client.GetSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read testbed status: %w", err)
	}

	fmt.Fprint(stdout, renderSnapshot(snap))
	return nil
}
