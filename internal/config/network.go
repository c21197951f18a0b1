package config

import (
	"fmt"
	"net"
)

// DeriveSubnets fills in the per-zone private and public subnet blocks when
// they are not set explicitly. One private and one public subnet is carved
// out of the base block per availability zone.
//
// The layout matches the original infrastructure definition: for
// 10.0.0.0/16 with three zones, private subnets are 10.0.1.0/24 through
// 10.0.3.0/24 and public subnets 10.0.4.0/24 through 10.0.6.0/24.
func (c *Config) DeriveSubnets() error {
	n := &c.Network

	if len(n.PrivateCIDRs) > 0 || len(n.PublicCIDRs) > 0 {
		// Explicit layout, nothing to derive. Validate() checks shape.
		return nil
	}

	newbits, err := subnetNewBits(n.IPv4CIDR)
	if err != nil {
		return err
	}

	// Index 0 is left unused so the first private subnet starts at .1.0,
	// matching the original layout.
	for i := 0; i < n.ZoneCount; i++ {
		private, err := CIDRSubnet(n.IPv4CIDR, newbits, i+1)
		if err != nil {
			return fmt.Errorf("failed to derive private subnet %d: %w", i, err)
		}
		n.PrivateCIDRs = append(n.PrivateCIDRs, private)
	}
	for i := 0; i < n.ZoneCount; i++ {
		public, err := CIDRSubnet(n.IPv4CIDR, newbits, n.ZoneCount+i+1)
		if err != nil {
			return fmt.Errorf("failed to derive public subnet %d: %w", i, err)
		}
		n.PublicCIDRs = append(n.PublicCIDRs, public)
	}

	return nil
}

// subnetNewBits returns the number of bits to extend the base prefix by so
// that derived subnets have the standard /24 length.
func subnetNewBits(baseCIDR string) (int, error) {
	_, baseNet, err := net.ParseCIDR(baseCIDR)
	if err != nil {
		return 0, fmt.Errorf("invalid network.ipv4_cidr: %w", err)
	}

	baseSize, _ := baseNet.Mask.Size()
	if baseSize >= subnetPrefixLen {
		return 0, fmt.Errorf("network.ipv4_cidr %s is too small to carve /%d subnets", baseCIDR, subnetPrefixLen)
	}
	return subnetPrefixLen - baseSize, nil
}
