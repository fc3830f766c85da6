// Package testbed reads the fixed status endpoints the ExPECA testbed
// publishes next to its OpenStack APIs.
package testbed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Endpoint paths on the testbed status server.
const (
	availableIPsPath = "/available_ips"
	radioMapPath     = "/radio_map"
)

// Radio describes how one radio unit hangs off the testbed fabric: the
// host interface it is wired to and the VLAN segment its traffic rides.
type Radio struct {
	Interface string `json:"interface"`
	SegmentID string `json:"segment_id"`
}

// Snapshot is the combined view of both endpoints.
type Snapshot struct {
	AvailableIPs []string
	Radios       map[string]Radio
}

// Client reads the testbed status endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. A nil httpClient
// gets a default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// AvailableIPs returns the public floating IPs currently reservable.
func (c *Client) AvailableIPs(ctx context.Context) ([]string, error) {
	var ips []string
	if err := c.getJSON(ctx, availableIPsPath, &ips); err != nil {
		return nil, err
	}
	return ips, nil
}

// RadioMap returns the per-radio interface and segment map.
func (c *Client) RadioMap(ctx context.Context) (map[string]Radio, error) {
	var radios map[string]Radio
	if err := c.getJSON(ctx, radioMapPath, &radios); err != nil {
		return nil, err
	}
	return radios, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
