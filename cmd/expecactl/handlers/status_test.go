package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KTH-EXPECA/expecactl/internal/testbed"
)

type fakeStatusReader struct {
	snap *testbed.Snapshot
	err  error
}

func (f *fakeStatusReader) GetSnapshot(context.Context) (*testbed.Snapshot, error) {
	return f.snap, f.err
}

func swapStatusClient(t *testing.T, reader statusReader) *bytes.Buffer {
	t.Helper()
	origClient := newStatusClient
	origOut := stdout
	t.Cleanup(func() {
		newStatusClient = origClient
		stdout = origOut
	})

	newStatusClient = func(string) statusReader { return reader }
	out := &bytes.Buffer{}
	stdout = out
	return out
}

func TestStatus(t *testing.T) {
	out := swapStatusClient(t, &fakeStatusReader{
		snap: &testbed.Snapshot{
			AvailableIPs: []string{"130.237.11.4", "130.237.11.7"},
			Radios: map[string]testbed.Radio{
				"adv-01": {Interface: "eno12409", SegmentID: "107"},
				"adv-02": {Interface: "eno12419", SegmentID: "108"},
			},
		},
	})

	require.NoError(t, Status(context.Background(), "https://testbed.example"))

	assert.Contains(t, out.String(), "130.237.11.4")
	assert.Contains(t, out.String(), "adv-01")
	assert.Contains(t, out.String(), "eno12409")
	assert.Contains(t, out.String(), "107")
}

func TestStatus_Error(t *testing.T) {
	_ = swapStatusClient(t, &fakeStatusReader{err: assert.AnError})

	err := Status(context.Background(), "https://testbed.example")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read testbed status")
}

func TestStatus_NoFreeIPs(t *testing.T) {
	out := swapStatusClient(t, &fakeStatusReader{snap: &testbed.Snapshot{}})

	require.NoError(t, Status(context.Background(), "https://testbed.example"))
	assert.Contains(t, out.String(), "none free")
}
