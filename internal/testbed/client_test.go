package testbed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(availableIPsPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["130.237.11.100","130.237.11.101"]`))
	})
	mux.HandleFunc(radioMapPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sdr-01":{"interface":"eno12409","segment_id":"137"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAvailableIPs(t *testing.T) {
	t.Parallel()
	c := NewClient(newTestServer(t).URL, nil)

	ips, err := c.AvailableIPs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"130.237.11.100", "130.237.11.101"}, ips)
}

func TestRadioMap(t *testing.T) {
	t.Parallel()
	c := NewClient(newTestServer(t).URL, nil)

	radios, err := c.RadioMap(context.Background())
	require.NoError(t, err)
	require.Equal(t, Radio{Interface: "eno12409", SegmentID: "137"}, radios["sdr-01"])
}

func TestGetSnapshot(t *testing.T) {
	t.Parallel()
	c := NewClient(newTestServer(t).URL, nil)

	snap, err := c.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.AvailableIPs, 2)
	require.Contains(t, snap.Radios, "sdr-01")
}

func TestNon200IsAnError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	_, err := c.AvailableIPs(context.Background())
	require.ErrorContains(t, err, "503")
	require.ErrorContains(t, err, availableIPsPath)
}
