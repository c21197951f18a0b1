package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroy(t *testing.T) {
	cmd := Destroy()

	require.NotNil(t, cmd)
	assert.Equal(t, "destroy", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	config := cmd.Flags().Lookup("config")
	require.NotNil(t, config)

	annotations := config.Annotations
	_, required := annotations["cobra_annotation_bash_completion_one_required_flag"]
	assert.True(t, required, "config flag should be required")

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "y", yes.Shorthand)
}
