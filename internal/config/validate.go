package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidNATModes contains the supported NAT gateway topologies.
var ValidNATModes = map[string]bool{
	NATModeSingle:  true,
	NATModePerZone: true,
}

// ValidCapacityTypes contains the supported node group capacity types.
var ValidCapacityTypes = map[string]bool{
	CapacityOnDemand: true,
	CapacitySpot:     true,
}

// Validate checks the configuration for errors before any AWS call is made.
// Violations fail fast with a message naming the offending field.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}

	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}

	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}

	if err := c.validateNodeGroups(); err != nil {
		return fmt.Errorf("node group validation failed: %w", err)
	}

	if err := c.validateExport(); err != nil {
		return fmt.Errorf("export validation failed: %w", err)
	}

	return nil
}

// validateNetwork checks the base block, zone count, and subnet layout.
// Subnets must come one private and one public per zone, all disjoint and
// fully contained in the base block.
func (c *Config) validateNetwork() error {
	n := &c.Network

	if n.IPv4CIDR == "" {
		return fmt.Errorf("network.ipv4_cidr is required")
	}
	if _, _, err := net.ParseCIDR(n.IPv4CIDR); err != nil {
		return fmt.Errorf("invalid network.ipv4_cidr: %w", err)
	}

	if n.ZoneCount < 1 {
		return fmt.Errorf("network.zone_count must be at least 1, got %d", n.ZoneCount)
	}

	if !ValidNATModes[n.NATMode] {
		return fmt.Errorf("invalid network.nat_mode %q: must be one of [%s, %s]",
			n.NATMode, NATModeSingle, NATModePerZone)
	}

	if len(n.PrivateCIDRs) != n.ZoneCount {
		return fmt.Errorf("network.private_cidrs has %d entries, expected one per zone (%d)",
			len(n.PrivateCIDRs), n.ZoneCount)
	}
	if len(n.PublicCIDRs) != n.ZoneCount {
		return fmt.Errorf("network.public_cidrs has %d entries, expected one per zone (%d)",
			len(n.PublicCIDRs), n.ZoneCount)
	}

	all := make([]string, 0, len(n.PrivateCIDRs)+len(n.PublicCIDRs))
	all = append(all, n.PrivateCIDRs...)
	all = append(all, n.PublicCIDRs...)

	for _, cidr := range all {
		within, err := CIDRWithin(n.IPv4CIDR, cidr)
		if err != nil {
			return fmt.Errorf("invalid subnet %q: %w", cidr, err)
		}
		if !within {
			return fmt.Errorf("subnet %s is not contained in network.ipv4_cidr %s", cidr, n.IPv4CIDR)
		}
	}

	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			overlap, err := CIDROverlap(all[i], all[j])
			if err != nil {
				return err
			}
			if overlap {
				return fmt.Errorf("subnets %s and %s overlap", all[i], all[j])
			}
		}
	}

	return nil
}

// validateCluster checks the control plane settings.
func (c *Config) validateCluster() error {
	version := c.Cluster.Version
	if version == "" {
		return fmt.Errorf("cluster.version is required")
	}

	parts := strings.Split(version, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid cluster.version %q: expected <major>.<minor>, e.g. %q", version, DefaultVersion)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return fmt.Errorf("invalid cluster.version %q: expected <major>.<minor>, e.g. %q", version, DefaultVersion)
		}
	}

	return nil
}

// validateNodeGroups checks every node group's instance types and scaling
// bounds. min <= desired <= max must hold, all non-negative.
func (c *Config) validateNodeGroups() error {
	if len(c.NodeGroups) == 0 {
		return fmt.Errorf("at least one node group is required")
	}

	for name, group := range c.NodeGroups {
		if name == "" {
			return fmt.Errorf("node group name must not be empty")
		}
		if len(group.InstanceTypes) == 0 {
			return fmt.Errorf("node group %s: instance_types must not be empty", name)
		}
		for _, instanceType := range group.InstanceTypes {
			if instanceType == "" {
				return fmt.Errorf("node group %s: instance_types contains an empty entry", name)
			}
		}

		if group.MinSize < 0 {
			return fmt.Errorf("node group %s: min_size must be >= 0, got %d", name, group.MinSize)
		}
		if group.DesiredSize < group.MinSize {
			return fmt.Errorf("node group %s: desired_size %d is below min_size %d",
				name, group.DesiredSize, group.MinSize)
		}
		if group.MaxSize < group.DesiredSize {
			return fmt.Errorf("node group %s: max_size %d is below desired_size %d",
				name, group.MaxSize, group.DesiredSize)
		}

		if group.CapacityType != "" && !ValidCapacityTypes[group.CapacityType] {
			return fmt.Errorf("node group %s: invalid capacity_type %q: must be one of [%s, %s]",
				name, group.CapacityType, CapacityOnDemand, CapacitySpot)
		}
	}

	return nil
}

// validateExport checks the optional S3 export settings.
func (c *Config) validateExport() error {
	if !c.Export.Enabled {
		return nil
	}
	if c.Export.Bucket == "" {
		return fmt.Errorf("export.bucket is required when export is enabled")
	}
	return nil
}
