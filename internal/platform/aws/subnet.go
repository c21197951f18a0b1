package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/eksail/internal/util/tags"
)

// EnsureSubnet creates a subnet in the given zone unless one with the same
// CIDR already exists in the VPC.
func (c *RealClient) EnsureSubnet(ctx context.Context, vpcID, name, cidr, zone string, public bool, tagMap map[string]string) (*Subnet, error) {
	existing, err := c.findSubnetByCIDR(ctx, vpcID, cidr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Zone != zone {
			return nil, fmt.Errorf("subnet %s exists but in zone %s (expected %s)",
				cidr, existing.Zone, zone)
		}
		return existing, nil
	}

	out, err := c.ec2.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:            awssdk.String(vpcID),
		CidrBlock:        awssdk.String(cidr),
		AvailabilityZone: awssdk.String(zone),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeSubnet,
			Tags:         tags.ToEC2(tagMap),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subnet %s (%s): %w", name, cidr, err)
	}

	subnetID := awssdk.ToString(out.Subnet.SubnetId)

	if public {
		_, err = c.ec2.ModifySubnetAttribute(ctx, &ec2.ModifySubnetAttributeInput{
			SubnetId:            awssdk.String(subnetID),
			MapPublicIpOnLaunch: &ec2types.AttributeBooleanValue{Value: awssdk.Bool(true)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to enable public IP mapping on subnet %s: %w", subnetID, err)
		}
	}

	return &Subnet{ID: subnetID, CIDR: cidr, Zone: zone, Public: public}, nil
}

// findSubnetByCIDR looks up a subnet by VPC and CIDR. Returns nil when missing.
func (c *RealClient) findSubnetByCIDR(ctx context.Context, vpcID, cidr string) (*Subnet, error) {
	out, err := c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("vpc-id"), Values: []string{vpcID}},
			{Name: awssdk.String("cidr-block"), Values: []string{cidr}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets: %w", err)
	}
	if len(out.Subnets) == 0 {
		return nil, nil
	}

	subnet := out.Subnets[0]
	return &Subnet{
		ID:     awssdk.ToString(subnet.SubnetId),
		CIDR:   awssdk.ToString(subnet.CidrBlock),
		Zone:   awssdk.ToString(subnet.AvailabilityZone),
		Public: awssdk.ToBool(subnet.MapPublicIpOnLaunch),
	}, nil
}

// listSubnetsByCluster returns all subnets carrying the cluster tag.
func (c *RealClient) listSubnetsByCluster(ctx context.Context, clusterName string) ([]Subnet, error) {
	key, value := tags.ClusterFilter(clusterName)
	out, err := c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("tag:" + key), Values: []string{value}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets: %w", err)
	}

	subnets := make([]Subnet, 0, len(out.Subnets))
	for _, subnet := range out.Subnets {
		subnets = append(subnets, Subnet{
			ID:   awssdk.ToString(subnet.SubnetId),
			CIDR: awssdk.ToString(subnet.CidrBlock),
			Zone: awssdk.ToString(subnet.AvailabilityZone),
		})
	}
	return subnets, nil
}
