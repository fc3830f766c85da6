package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "expecactl", cmd.Use)
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := Root()

	expected := []string{
		"init", "apply", "destroy",
		"reserve", "unreserve [lease]", "list", "show <lease>",
		"containers", "status",
		"version", "completion [bash|zsh|fish|powershell]",
	}

	uses := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		uses = append(uses, sub.Use)
	}

	for _, use := range expected {
		assert.Contains(t, uses, use)
	}
}
