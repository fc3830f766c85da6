package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/keypairs"
)

// EnsureKeypair uploads a public key under the given name if no keypair
// with that name exists yet.
func (c *RealClient) EnsureKeypair(ctx context.Context, name, publicKey string) error {
	_, err := keypairs.Get(ctx, c.compute, name, keypairs.GetOpts{}).Extract()
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to get keypair %q: %w", name, err)
	}

	_, err = keypairs.Create(ctx, c.compute, keypairs.CreateOpts{
		Name:      name,
		PublicKey: publicKey,
	}).Extract()
	if err != nil {
		return fmt.Errorf("failed to create keypair %q: %w", name, err)
	}
	return nil
}

// DeleteKeypair deletes a keypair, tolerating its absence.
func (c *RealClient) DeleteKeypair(ctx context.Context, name string) error {
	err := keypairs.Delete(ctx, c.compute, name, keypairs.DeleteOpts{}).ExtractErr()
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete keypair %q: %w", name, err)
	}
	return nil
}
