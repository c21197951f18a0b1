package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
)

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

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte(minimalYAML))
	require.NoError(t, err)
	return cfg
}

func TestPreflightResolvesZones(t *testing.T) {
	t.Parallel()

	fake := aws.NewFakeClient()
	ctx := NewContext(context.Background(), testConfig(t), fake)

	err := NewPreflight().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-central-1a", "eu-central-1b", "eu-central-1c"}, ctx.State.Zones)
}

func TestPreflightZoneCountExceedsRegion(t *testing.T) {
	t.Parallel()

	fake := aws.NewFakeClient()
	fake.Zones = []string{"eu-central-1a", "eu-central-1b"}

	cfg := testConfig(t)
	ctx := NewContext(context.Background(), cfg, fake)

	err := NewPreflight().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network.zone_count is 3")
	assert.Contains(t, err.Error(), "only has 2")
	assert.Empty(t, ctx.State.Zones)
}

func TestPreflightZoneLookupFailure(t *testing.T) {
	t.Parallel()

	fake := aws.NewFakeClient()
	fake.FailOn["AvailableZones"] = errors.New("throttled")

	ctx := NewContext(context.Background(), testConfig(t), fake)

	err := NewPreflight().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability zones")
}
