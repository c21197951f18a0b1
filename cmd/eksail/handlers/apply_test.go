package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/platform/s3"
	"github.com/imamik/eksail/internal/provisioning"
)

const testYAML = `
cluster_name: example
region: eu-central-1
node_groups:
  example:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
`

// stubCommon replaces the shared factory variables with test fakes and
// returns the fake AWS client plus a map capturing written files.
func stubCommon(t *testing.T, yaml string) (*aws.FakeClient, map[string][]byte) {
	t.Helper()

	origLoad := loadConfigFile
	origInfra := newInfraClient
	origWrite := writeFile
	t.Cleanup(func() {
		loadConfigFile = origLoad
		newInfraClient = origInfra
		writeFile = origWrite
	})

	fake := aws.NewFakeClient()
	files := make(map[string][]byte)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return config.Load([]byte(yaml))
	}
	newInfraClient = func(_ context.Context, _ string) (aws.InfrastructureManager, error) {
		return fake, nil
	}
	writeFile = func(path string, data []byte, _ os.FileMode) error {
		files[path] = data
		return nil
	}

	return fake, files
}

// stubRunWithUI bypasses the terminal dashboard.
func stubRunWithUI(t *testing.T) {
	t.Helper()
	orig := runWithUI
	t.Cleanup(func() { runWithUI = orig })
	runWithUI = func(_, _, _ string, _ []string, fn func(provisioning.Observer) error) error {
		return fn(provisioning.NewConsoleObserver())
	}
}

func TestApply(t *testing.T) {
	fake, files := stubCommon(t, testYAML)
	stubRunWithUI(t)

	err := Apply(context.Background(), "eksail.yaml")
	require.NoError(t, err)

	// Full pipeline ran against the fake.
	assert.Contains(t, fake.Calls, "EnsureVPC example-vpc")
	assert.Contains(t, fake.Calls, "EnsureCluster example")
	assert.Contains(t, fake.Calls, "EnsureNodeGroup example")

	// Kubeconfig written.
	data, ok := files["kubeconfig"]
	require.True(t, ok)
	assert.Contains(t, string(data), "eks")
}

func TestApplyWritesNodeKeyForRemoteAccess(t *testing.T) {
	yaml := `
cluster_name: example
region: eu-central-1
node_groups:
  example:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
    remote_access: true
`
	_, files := stubCommon(t, yaml)
	stubRunWithUI(t)

	err := Apply(context.Background(), "eksail.yaml")
	require.NoError(t, err)

	key, ok := files["example-node-key.pem"]
	require.True(t, ok)
	assert.Contains(t, string(key), "OPENSSH PRIVATE KEY")
}

type fakeInstaller struct {
	calls   int
	version string
}

func (f *fakeInstaller) InstallMetricsServer(_ []byte, version string) error {
	f.calls++
	f.version = version
	return nil
}

func TestApplyInstallsAddons(t *testing.T) {
	yaml := testYAML + `addons:
  metrics_server:
    enabled: true
    version: 3.12.2
`
	stubCommon(t, yaml)
	stubRunWithUI(t)

	installer := &fakeInstaller{}
	origInstaller := newAddonInstaller
	t.Cleanup(func() { newAddonInstaller = origInstaller })
	newAddonInstaller = func() addonInstaller { return installer }

	err := Apply(context.Background(), "eksail.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, installer.calls)
	assert.Equal(t, "3.12.2", installer.version)
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func (f *fakeObjectStore) BucketExists(_ context.Context, _ string) (bool, error) { return true, nil }
func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key string, data []byte) error {
	f.objects[bucket+"/"+key] = data
	return nil
}

func TestApplyExportsBundle(t *testing.T) {
	yaml := testYAML + `export:
  enabled: true
  bucket: my-bucket
  prefix: clusters
`
	stubCommon(t, yaml)
	stubRunWithUI(t)

	store := &fakeObjectStore{objects: make(map[string][]byte)}
	origStore := newObjectStore
	t.Cleanup(func() { newObjectStore = origStore })
	newObjectStore = func(_ context.Context, _ string) (s3.ObjectStore, error) { return store, nil }

	err := Apply(context.Background(), "eksail.yaml")
	require.NoError(t, err)

	assert.Contains(t, store.objects, "my-bucket/clusters/example/outputs.yaml")
	assert.Contains(t, store.objects, "my-bucket/clusters/example/kubeconfig")

	outputs := string(store.objects["my-bucket/clusters/example/outputs.yaml"])
	assert.Contains(t, outputs, "created_by: arn:aws:iam::000000000000:user/test",
		"export records who applied and therefore holds creator access")
}

func TestApplyInvalidConfig(t *testing.T) {
	stubCommon(t, `
cluster_name: example
region: eu-central-1
node_groups:
  example:
    instance_types: ["t3.medium"]
    min_size: 3
    max_size: 5
    desired_size: 2
`)
	stubRunWithUI(t)

	err := Apply(context.Background(), "eksail.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "desired_size")
}
