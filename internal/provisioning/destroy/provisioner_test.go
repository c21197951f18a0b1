package destroy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/provisioning/cluster"
	"github.com/imamik/eksail/internal/provisioning/infrastructure"
)

const fullYAML = `
cluster_name: example
region: eu-central-1
node_groups:
  workers-a:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
  workers-b:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
    remote_access: true
`

// appliedContext runs a full apply so destroy has something to tear down.
func appliedContext(t *testing.T) (*provisioning.Context, *aws.FakeClient) {
	t.Helper()

	cfg, err := config.Load([]byte(fullYAML))
	require.NoError(t, err)

	fake := aws.NewFakeClient()
	ctx := provisioning.NewContext(context.Background(), cfg, fake)

	phases := []provisioning.Phase{
		provisioning.NewPreflight(),
		infrastructure.NewProvisioner(),
		cluster.NewProvisioner(),
	}
	require.NoError(t, provisioning.RunPhases(ctx, phases))

	fake.Calls = nil
	return ctx, fake
}

func callIndex(t *testing.T, calls []string, call string) int {
	t.Helper()
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	t.Fatalf("call %q not found in %v", call, calls)
	return -1
}

func TestDestroyReverseOrder(t *testing.T) {
	t.Parallel()

	ctx, fake := appliedContext(t)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	groupA := callIndex(t, fake.Calls, "DeleteNodeGroup workers-a")
	groupB := callIndex(t, fake.Calls, "DeleteNodeGroup workers-b")
	clusterIdx := callIndex(t, fake.Calls, "DeleteCluster example")
	network := callIndex(t, fake.Calls, "DeleteNetwork example")

	// Node groups go first, then the control plane, the network last.
	assert.Less(t, groupA, clusterIdx)
	assert.Less(t, groupB, clusterIdx)
	assert.Less(t, clusterIdx, network)

	assert.Contains(t, fake.Calls, "DeleteRole example-cluster-role")
	assert.Contains(t, fake.Calls, "DeleteRole example-node-role")
	assert.Contains(t, fake.Calls, "DeleteKeyPair example-node-key")
}

func TestDestroyRemovesEverything(t *testing.T) {
	t.Parallel()

	ctx, fake := appliedContext(t)

	require.NoError(t, NewProvisioner().Provision(ctx))

	groups, err := fake.ListNodeGroups(context.Background(), "example")
	require.NoError(t, err)
	assert.Empty(t, groups)

	found, err := fake.GetCluster(context.Background(), "example")
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.Zero(t, fake.VPCCount())
	assert.Zero(t, fake.SubnetCount())
	assert.Zero(t, fake.NATCount())
}

func TestDestroyIsRerunnable(t *testing.T) {
	t.Parallel()

	ctx, _ := appliedContext(t)
	prov := NewProvisioner()

	require.NoError(t, prov.Provision(ctx))
	require.NoError(t, prov.Provision(ctx), "destroying an absent cluster is not an error")
}

func TestDestroyStopsBeforeClusterOnNodeGroupFailure(t *testing.T) {
	t.Parallel()

	ctx, fake := appliedContext(t)
	fake.FailOn["DeleteNodeGroup"] = errors.New("still draining")

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete node group")
	assert.NotContains(t, fake.Calls, "DeleteCluster example")
	assert.NotContains(t, fake.Calls, "DeleteNetwork example")
}
