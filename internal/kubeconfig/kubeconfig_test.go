package kubeconfig

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/imamik/eksail/internal/provisioning"
)

func testOptions() Options {
	return Options{
		ClusterName:          "example",
		Region:               "eu-central-1",
		EndpointURL:          "https://example.eks.example.invalid",
		CertificateAuthority: base64.StdEncoding.EncodeToString([]byte("test-ca-data")),
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	data, err := Generate(testOptions())
	require.NoError(t, err)

	// The output must round-trip through the standard loader.
	config, err := clientcmd.Load(data)
	require.NoError(t, err)

	assert.Equal(t, "example@eu-central-1", config.CurrentContext)

	cluster, ok := config.Clusters["example"]
	require.True(t, ok)
	assert.Equal(t, "https://example.eks.example.invalid", cluster.Server)
	assert.Equal(t, []byte("test-ca-data"), cluster.CertificateAuthorityData)

	auth, ok := config.AuthInfos["example"]
	require.True(t, ok)
	require.NotNil(t, auth.Exec)
	assert.Equal(t, "aws", auth.Exec.Command)
	assert.Contains(t, auth.Exec.Args, "get-token")
	assert.Contains(t, auth.Exec.Args, "example")
}

func TestGenerateValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()
		opts := testOptions()
		opts.EndpointURL = ""
		_, err := Generate(opts)
		assert.Error(t, err)
	})

	t.Run("invalid certificate authority", func(t *testing.T) {
		t.Parallel()
		opts := testOptions()
		opts.CertificateAuthority = "%%% not base64 %%%"
		_, err := Generate(opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "certificate authority")
	})
}

func TestFromState(t *testing.T) {
	t.Parallel()

	t.Run("complete state", func(t *testing.T) {
		t.Parallel()
		state := provisioning.NewState()
		state.Cluster = &provisioning.ClusterOutput{
			ClusterName:          "example",
			EndpointURL:          "https://example.eks.example.invalid",
			CertificateAuthority: base64.StdEncoding.EncodeToString([]byte("ca")),
		}

		opts, err := FromState(state, "eu-central-1")
		require.NoError(t, err)
		assert.Equal(t, "example", opts.ClusterName)
		assert.Equal(t, "eu-central-1", opts.Region)
	})

	t.Run("missing cluster output", func(t *testing.T) {
		t.Parallel()
		_, err := FromState(provisioning.NewState(), "eu-central-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cluster output is missing")
	})
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, WriteFile(path, testOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
