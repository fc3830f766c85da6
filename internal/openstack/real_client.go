package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
)

// Service types as registered in the testbed's Keystone catalog.
const (
	serviceTypeReservation = "reservation"
	serviceTypeContainer   = "container"
)

// zunAPIVersion is sent on every container service request; the testbed
// runs an API that needs at least this microversion for host hints.
const zunAPIVersion = "container 1.25"

// RealClient implements TestbedManager against a live OpenStack cloud.
type RealClient struct {
	provider *gophercloud.ProviderClient
	blazar   *gophercloud.ServiceClient
	neutron  *gophercloud.ServiceClient
	compute  *gophercloud.ServiceClient
	zun      *gophercloud.ServiceClient
}

var _ TestbedManager = (*RealClient)(nil)

// NewRealClient authenticates against Keystone using the standard OS_*
// environment variables and builds service clients for every testbed
// service.
func NewRealClient(ctx context.Context, region string) (*RealClient, error) {
	ao, err := openstack.AuthOptionsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read auth options from environment: %w", err)
	}
	ao.AllowReauth = true

	provider, err := openstack.AuthenticatedClient(ctx, ao)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	return NewRealClientWithProvider(provider, region)
}

// NewRealClientWithProvider builds a client from an already authenticated
// provider. Split out so tests and embedders can supply their own.
func NewRealClientWithProvider(provider *gophercloud.ProviderClient, region string) (*RealClient, error) {
	eo := gophercloud.EndpointOpts{Region: region}

	neutron, err := openstack.NewNetworkV2(provider, eo)
	if err != nil {
		return nil, fmt.Errorf("failed to build networking client: %w", err)
	}

	compute, err := openstack.NewComputeV2(provider, eo)
	if err != nil {
		return nil, fmt.Errorf("failed to build compute client: %w", err)
	}

	blazar, err := newServiceClient(provider, eo, serviceTypeReservation)
	if err != nil {
		return nil, fmt.Errorf("failed to build reservation client: %w", err)
	}

	zun, err := newServiceClient(provider, eo, serviceTypeContainer)
	if err != nil {
		return nil, fmt.Errorf("failed to build container client: %w", err)
	}
	zun.MoreHeaders = map[string]string{"OpenStack-API-Version": zunAPIVersion}

	return &RealClient{
		provider: provider,
		blazar:   blazar,
		neutron:  neutron,
		compute:  compute,
		zun:      zun,
	}, nil
}

// newServiceClient locates a service endpoint in the catalog and wraps it
// in a ServiceClient. Gophercloud has no packages for Blazar or Zun, so
// those speak to their endpoints through clients built here.
func newServiceClient(provider *gophercloud.ProviderClient, eo gophercloud.EndpointOpts, serviceType string) (*gophercloud.ServiceClient, error) {
	eo.ApplyDefaults(serviceType)
	url, err := provider.EndpointLocator(eo)
	if err != nil {
		return nil, fmt.Errorf("no %q endpoint in catalog: %w", serviceType, err)
	}
	return &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       url,
		Type:           serviceType,
	}, nil
}
