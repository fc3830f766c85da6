package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		Name:         "urllc-demo",
		Device:       "adv-01",
		Network:      "sdr-net",
		SegmentID:    "137",
		DurationDays: 2,
		Image:        "expeca/oai:latest",
	}

	cfg := result.ToConfig()
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Items, 2)
	assert.Equal(t, ItemTypeDevice, cfg.Items[0].Type)
	assert.Equal(t, "adv-01", cfg.Items[0].Name)
	assert.Equal(t, ItemTypeNetwork, cfg.Items[1].Type)
	assert.Equal(t, "137", cfg.Items[1].SegmentID)
	assert.Equal(t, 2, cfg.Items[1].Duration.Days)

	require.Len(t, cfg.Containers, 1)
	assert.Equal(t, "adv-01", cfg.Containers[0].Device)
	assert.Equal(t, []string{"sdr-net"}, cfg.Containers[0].Networks)

	// Defaults filled in.
	assert.Equal(t, DefaultTestbedURL, cfg.TestbedURL)
	assert.Equal(t, "urllc-demo-key", cfg.Keypair.Name)
}

func TestWizardResult_ToConfig_DeviceOnly(t *testing.T) {
	t.Parallel()
	result := &WizardResult{Name: "demo", Device: "worker-05", DurationDays: 1}

	cfg := result.ToConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Items, 1)
	assert.Empty(t, cfg.Containers)
}

func TestValidateExperimentName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateExperimentName("urllc-demo"))
	assert.NoError(t, validateExperimentName("a1"))
	assert.Error(t, validateExperimentName(""))
	assert.Error(t, validateExperimentName("Demo"))
	assert.Error(t, validateExperimentName("-demo"))
	assert.Error(t, validateExperimentName("verylongexperimentnamethatexceedsthelimit"))
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()
	cfg := (&WizardResult{
		Name:         "demo",
		Device:       "adv-01",
		Network:      "net1",
		SegmentID:    "42",
		DurationDays: 1,
	}).ToConfig()

	path := t.TempDir() + "/expeca.yaml"
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Items, loaded.Items)
	assert.Equal(t, cfg.Keypair.Name, loaded.Keypair.Name)
}
