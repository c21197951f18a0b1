package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/provisioning"
)

func provisionedContext(t *testing.T, yaml string) (*provisioning.Context, *aws.FakeClient) {
	t.Helper()

	cfg, err := config.Load([]byte(yaml))
	require.NoError(t, err)

	fake := aws.NewFakeClient()
	ctx := provisioning.NewContext(context.Background(), cfg, fake)

	require.NoError(t, provisioning.NewPreflight().Provision(ctx))
	return ctx, fake
}

const minimalYAML = `
cluster_name: example
region: eu-central-1
node_groups:
  example:
    instance_types: ["t3.medium"]
    min_size: 1
    max_size: 5
    desired_size: 2
`

func TestProvisionCreatesNetwork(t *testing.T) {
	t.Parallel()

	ctx, fake := provisionedContext(t, minimalYAML)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	require.NotNil(t, ctx.State.Network)
	assert.NotEmpty(t, ctx.State.Network.VPCID)
	assert.Len(t, ctx.State.Network.PrivateSubnetIDs, 3)
	assert.Len(t, ctx.State.Network.PublicSubnetIDs, 3)

	assert.Equal(t, 1, fake.VPCCount())
	assert.Equal(t, 6, fake.SubnetCount())
	assert.Equal(t, 1, fake.NATCount(), "single NAT mode is the default")
}

func TestProvisionPerZoneNAT(t *testing.T) {
	t.Parallel()

	ctx, fake := provisionedContext(t, minimalYAML+"network:\n  nat_mode: per-zone\n")

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, fake.NATCount())

	// Each NAT gets its own private route table.
	routeTables := 0
	for _, call := range fake.Calls {
		if call == "EnsurePrivateRoutes example-private-rt-0" ||
			call == "EnsurePrivateRoutes example-private-rt-1" ||
			call == "EnsurePrivateRoutes example-private-rt-2" {
			routeTables++
		}
	}
	assert.Equal(t, 3, routeTables)
}

func TestProvisionNamesNATAddresses(t *testing.T) {
	t.Parallel()

	ctx, fake := provisionedContext(t, minimalYAML+"network:\n  nat_mode: per-zone\n")

	require.NoError(t, NewProvisioner().Provision(ctx))

	// Each elastic IP carries its own name, distinct from its gateway.
	assert.Contains(t, fake.Calls, "AllocateAddress example-nat-eip-0")
	assert.Contains(t, fake.Calls, "AllocateAddress example-nat-eip-1")
	assert.Contains(t, fake.Calls, "AllocateAddress example-nat-eip-2")

	// Reapplying reuses the gateways and allocates nothing new.
	before := len(fake.Calls)
	require.NoError(t, NewProvisioner().Provision(ctx))
	allocations := 0
	for _, call := range fake.Calls[before:] {
		if call == "AllocateAddress example-nat-eip-0" ||
			call == "AllocateAddress example-nat-eip-1" ||
			call == "AllocateAddress example-nat-eip-2" {
			allocations++
		}
	}
	assert.Zero(t, allocations)
}

func TestProvisionIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, fake := provisionedContext(t, minimalYAML)
	prov := NewProvisioner()

	require.NoError(t, prov.Provision(ctx))
	firstNetwork := *ctx.State.Network

	// A second apply finds everything in place and creates nothing new.
	require.NoError(t, prov.Provision(ctx))
	assert.Equal(t, firstNetwork, *ctx.State.Network)
	assert.Equal(t, 1, fake.VPCCount())
	assert.Equal(t, 6, fake.SubnetCount())
	assert.Equal(t, 1, fake.NATCount())
}

func TestProvisionRequiresResolvedZones(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load([]byte(minimalYAML))
	require.NoError(t, err)

	ctx := provisioning.NewContext(context.Background(), cfg, aws.NewFakeClient())

	err = NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone slice not resolved")
}

func TestProvisionPropagatesFailure(t *testing.T) {
	t.Parallel()

	ctx, fake := provisionedContext(t, minimalYAML)
	fake.FailOn["EnsureNATGateway"] = errors.New("address limit exceeded")

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAT gateway")
	assert.Nil(t, ctx.State.Network, "network output is only published on success")
}
