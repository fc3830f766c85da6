package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/floatingips"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/provider"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/networks"
)

// PublicNetworkName is the shared external network floating IPs are
// reserved from.
const PublicNetworkName = "public"

// GetNetworkID resolves a network name to its id.
func (c *RealClient) GetNetworkID(ctx context.Context, name string) (string, error) {
	pages, err := networks.List(c.neutron, networks.ListOpts{Name: name}).AllPages(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list networks: %w", err)
	}
	nets, err := networks.ExtractNetworks(pages)
	if err != nil {
		return "", fmt.Errorf("failed to extract networks: %w", err)
	}

	switch len(nets) {
	case 0:
		return "", fmt.Errorf("no network found with name %q", name)
	case 1:
		return nets[0].ID, nil
	default:
		return "", fmt.Errorf("multiple networks found with name %q", name)
	}
}

// ListNetworks returns all networks with their VLAN segment ids.
func (c *RealClient) ListNetworks(ctx context.Context) ([]Network, error) {
	pages, err := networks.List(c.neutron, networks.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	var raw []struct {
		networks.Network
		provider.NetworkProviderExt
	}
	if err := networks.ExtractNetworksInto(pages, &raw); err != nil {
		return nil, fmt.Errorf("failed to extract networks: %w", err)
	}

	result := make([]Network, 0, len(raw))
	for _, n := range raw {
		result = append(result, Network{
			ID:        n.ID,
			Name:      n.Name,
			SegmentID: n.SegmentationID,
			Status:    n.Status,
		})
	}
	return result, nil
}

// PublicNetworkID returns the id of the shared public network.
func (c *RealClient) PublicNetworkID(ctx context.Context) (string, error) {
	return c.GetNetworkID(ctx, PublicNetworkName)
}

// ListFloatingIPs returns the project's floating IPs.
func (c *RealClient) ListFloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	pages, err := floatingips.List(c.neutron, floatingips.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list floating ips: %w", err)
	}
	fips, err := floatingips.ExtractFloatingIPs(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract floating ips: %w", err)
	}

	result := make([]FloatingIP, 0, len(fips))
	for _, f := range fips {
		result = append(result, FloatingIP{
			ID:      f.ID,
			Address: f.FloatingIP,
			Status:  f.Status,
		})
	}
	return result, nil
}
