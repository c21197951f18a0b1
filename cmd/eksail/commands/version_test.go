package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	cmd := Version()
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "abc123", commit)
}

func TestCompletion(t *testing.T) {
	cmd := Completion()
	require.NotNil(t, cmd)
	assert.Contains(t, cmd.ValidArgs, "bash")
	assert.Contains(t, cmd.ValidArgs, "zsh")
}
