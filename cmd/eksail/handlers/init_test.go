package handlers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/imamik/eksail/internal/config"
)

func TestInit(t *testing.T) {
	origExists := fileExists
	origWizard := runWizard
	origWrite := writeFile
	t.Cleanup(func() {
		fileExists = origExists
		runWizard = origWizard
		writeFile = origWrite
	})

	fileExists = func(_ string) bool { return false }
	runWizard = func() (*config.Config, error) {
		return config.NewDefault("demo", "eu-central-1", "dev", "t3.medium", 2)
	}

	var wrotePath string
	var wroteData []byte
	writeFile = func(path string, data []byte, _ os.FileMode) error {
		wrotePath = path
		wroteData = data
		return nil
	}

	err := Init("eksail.yaml")
	require.NoError(t, err)
	assert.Equal(t, "eksail.yaml", wrotePath)

	// The written YAML must load back as a valid configuration.
	cfg, err := config.Load(wroteData)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.ClusterName)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(wroteData, &raw))
	assert.Contains(t, raw, "node_groups")
}
