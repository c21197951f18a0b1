package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSubnets(t *testing.T) {
	t.Parallel()

	t.Run("standard three zone layout", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Network: NetworkConfig{
				IPv4CIDR:  "10.0.0.0/16",
				ZoneCount: 3,
			},
		}

		require.NoError(t, cfg.DeriveSubnets())

		assert.Equal(t, []string{"10.0.1.0/24", "10.0.2.0/24", "10.0.3.0/24"}, cfg.Network.PrivateCIDRs)
		assert.Equal(t, []string{"10.0.4.0/24", "10.0.5.0/24", "10.0.6.0/24"}, cfg.Network.PublicCIDRs)
	})

	t.Run("single zone", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Network: NetworkConfig{
				IPv4CIDR:  "172.16.0.0/20",
				ZoneCount: 1,
			},
		}

		require.NoError(t, cfg.DeriveSubnets())

		assert.Equal(t, []string{"172.16.1.0/24"}, cfg.Network.PrivateCIDRs)
		assert.Equal(t, []string{"172.16.2.0/24"}, cfg.Network.PublicCIDRs)
	})

	t.Run("explicit layout untouched", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Network: NetworkConfig{
				IPv4CIDR:     "10.0.0.0/16",
				ZoneCount:    1,
				PrivateCIDRs: []string{"10.0.100.0/24"},
				PublicCIDRs:  []string{"10.0.200.0/24"},
			},
		}

		require.NoError(t, cfg.DeriveSubnets())

		assert.Equal(t, []string{"10.0.100.0/24"}, cfg.Network.PrivateCIDRs)
		assert.Equal(t, []string{"10.0.200.0/24"}, cfg.Network.PublicCIDRs)
	})

	t.Run("base block too small", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Network: NetworkConfig{
				IPv4CIDR:  "10.0.0.0/24",
				ZoneCount: 3,
			},
		}

		assert.Error(t, cfg.DeriveSubnets())
	})

	t.Run("invalid base block", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Network: NetworkConfig{
				IPv4CIDR:  "garbage",
				ZoneCount: 3,
			},
		}

		assert.Error(t, cfg.DeriveSubnets())
	})
}

func TestDerivedSubnetsAreDisjointAndContained(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Network: NetworkConfig{
			IPv4CIDR:  "10.0.0.0/16",
			ZoneCount: 3,
		},
	}
	require.NoError(t, cfg.DeriveSubnets())

	all := append([]string{}, cfg.Network.PrivateCIDRs...)
	all = append(all, cfg.Network.PublicCIDRs...)

	for _, cidr := range all {
		within, err := CIDRWithin(cfg.Network.IPv4CIDR, cidr)
		require.NoError(t, err)
		assert.True(t, within, "subnet %s should be inside the base block", cidr)
	}

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			overlap, err := CIDROverlap(all[i], all[j])
			require.NoError(t, err)
			assert.False(t, overlap, "subnets %s and %s should be disjoint", all[i], all[j])
		}
	}
}
