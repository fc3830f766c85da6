package openstack

import (
	"context"
	"fmt"
	"io"

	"github.com/gophercloud/gophercloud/v2"
)

// The container service returns single containers unwrapped and listings
// under a "containers" key.

// CreateContainer creates a container. The container starts pulling its
// image immediately; callers poll GetContainer until it reports Running.
func (c *RealClient) CreateContainer(ctx context.Context, opts ContainerCreateOpts) (*Container, error) {
	var res Container
	_, err := c.zun.Post(ctx, c.zun.ServiceURL("containers"), opts, &res, &gophercloud.RequestOpts{
		OkCodes: []int{200, 201, 202},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create container %q: %w", opts.Name, err)
	}
	return &res, nil
}

// GetContainer returns a container by UUID or unique name.
func (c *RealClient) GetContainer(ctx context.Context, ref string) (*Container, error) {
	var res Container
	_, err := c.zun.Get(ctx, c.zun.ServiceURL("containers", ref), &res, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get container %s: %w", ref, err)
	}
	return &res, nil
}

// ListContainers returns all containers in the current project.
func (c *RealClient) ListContainers(ctx context.Context) ([]Container, error) {
	var res struct {
		Containers []Container `json:"containers"`
	}
	_, err := c.zun.Get(ctx, c.zun.ServiceURL("containers"), &res, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return res.Containers, nil
}

// DeleteContainer deletes a container. force kills a running container
// instead of requiring a stop first.
func (c *RealClient) DeleteContainer(ctx context.Context, ref string, force bool) error {
	url := c.zun.ServiceURL("containers", ref)
	if force {
		url += "?force=True"
	}
	_, err := c.zun.Delete(ctx, url, &gophercloud.RequestOpts{
		OkCodes: []int{200, 202, 204},
	})
	if err != nil {
		return fmt.Errorf("failed to delete container %s: %w", ref, err)
	}
	return nil
}

// ContainerLogs fetches stdout/stderr of a container. The logs endpoint
// returns plain text, so the body is read raw instead of JSON-decoded.
func (c *RealClient) ContainerLogs(ctx context.Context, ref string) (string, error) {
	resp, err := c.zun.Get(ctx, c.zun.ServiceURL("containers", ref, "logs"), nil, &gophercloud.RequestOpts{
		OkCodes:          []int{200},
		KeepResponseBody: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get logs for container %s: %w", ref, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read logs for container %s: %w", ref, err)
	}
	return string(body), nil
}
