package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/provisioning/infrastructure"
)

const baseYAML = "cluster_name: example\nregion: eu-central-1\n"

const minimalYAML = baseYAML + `node_groups:
  example:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
`

// networkedContext runs preflight and the network phase so the cluster
// phase has a complete NetworkOutput to consume.
func networkedContext(t *testing.T, yaml string) (*provisioning.Context, *aws.FakeClient) {
	t.Helper()

	cfg, err := config.Load([]byte(yaml))
	require.NoError(t, err)

	fake := aws.NewFakeClient()
	ctx := provisioning.NewContext(context.Background(), cfg, fake)

	require.NoError(t, provisioning.NewPreflight().Provision(ctx))
	require.NoError(t, infrastructure.NewProvisioner().Provision(ctx))
	return ctx, fake
}

func TestProvisionCreatesCluster(t *testing.T) {
	t.Parallel()

	ctx, fake := networkedContext(t, minimalYAML)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	require.NotNil(t, ctx.State.Cluster)
	assert.Equal(t, "example", ctx.State.Cluster.ClusterName)
	assert.NotEmpty(t, ctx.State.Cluster.EndpointURL)
	assert.Equal(t, "1.32", ctx.State.Cluster.Version)
	assert.NotEmpty(t, ctx.State.ClusterRoleARN)
	assert.NotEmpty(t, ctx.State.NodeRoleARN)

	assert.Contains(t, fake.Calls, "EnsureClusterRole example-cluster-role")
	assert.Contains(t, fake.Calls, "EnsureNodeRole example-node-role")
	assert.Contains(t, fake.Calls, "EnsureCluster example")
	assert.Contains(t, fake.Calls, "EnsureNodeGroup example")
}

func TestProvisionRequiresNetworkOutput(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load([]byte(minimalYAML))
	require.NoError(t, err)

	fake := aws.NewFakeClient()
	ctx := provisioning.NewContext(context.Background(), cfg, fake)

	err = NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network output is missing or incomplete")
	assert.Empty(t, fake.Calls, "no AWS call before the precondition check")
}

func TestProvisionRejectsPartialNetworkOutput(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load([]byte(minimalYAML))
	require.NoError(t, err)

	fake := aws.NewFakeClient()
	ctx := provisioning.NewContext(context.Background(), cfg, fake)
	ctx.State.Network = &provisioning.NetworkOutput{
		VPCID:            "vpc-00000001",
		PrivateSubnetIDs: []string{"subnet-00000001"}, // one zone short of three
	}

	err = NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private subnets=1, expected 3")
	assert.Empty(t, fake.Calls)
}

func TestProvisionNodeGroupsSorted(t *testing.T) {
	t.Parallel()

	yaml := baseYAML + `node_groups:
  workers-b:
    instance_types: [t3.medium]
    min_size: 1
    max_size: 3
    desired_size: 1
  workers-a:
    instance_types: [t3.large]
    min_size: 1
    max_size: 3
    desired_size: 1
`
	ctx, fake := networkedContext(t, yaml)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	var groups []string
	for _, call := range fake.Calls {
		switch call {
		case "EnsureNodeGroup workers-a", "EnsureNodeGroup workers-b":
			groups = append(groups, call)
		}
	}
	assert.Equal(t, []string{"EnsureNodeGroup workers-a", "EnsureNodeGroup workers-b"}, groups)
}

func TestProvisionImportsKeyForRemoteAccess(t *testing.T) {
	t.Parallel()

	yaml := baseYAML + `node_groups:
  workers:
    instance_types: [t3.medium]
    min_size: 1
    max_size: 3
    desired_size: 2
    remote_access: true
`
	ctx, fake := networkedContext(t, yaml)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	assert.Equal(t, "example-node-key", ctx.State.SSHKeyName)
	assert.NotEmpty(t, ctx.State.SSHPrivateKey)
	assert.Contains(t, fake.Calls, "ImportKeyPair example-node-key")
}

func TestProvisionSkipsKeyWithoutRemoteAccess(t *testing.T) {
	t.Parallel()

	ctx, fake := networkedContext(t, minimalYAML)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	assert.Empty(t, ctx.State.SSHKeyName)
	assert.NotContains(t, fake.Calls, "ImportKeyPair example-node-key")
}

func TestProvisionIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, _ := networkedContext(t, minimalYAML)
	prov := NewProvisioner()

	require.NoError(t, prov.Provision(ctx))
	first := *ctx.State.Cluster

	require.NoError(t, prov.Provision(ctx))
	assert.Equal(t, first, *ctx.State.Cluster)
}

func TestProvisionPropagatesClusterFailure(t *testing.T) {
	t.Parallel()

	ctx, fake := networkedContext(t, minimalYAML)
	fake.FailOn["EnsureCluster"] = errors.New("limit exceeded")

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure cluster")
	assert.Nil(t, ctx.State.Cluster)
}
