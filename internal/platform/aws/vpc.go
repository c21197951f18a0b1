package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/eksail/internal/util/tags"
)

// EnsureVPC creates the VPC unless one tagged with the same name exists.
// An existing VPC with a different base block is treated as drift and
// returned as an error rather than silently reused.
func (c *RealClient) EnsureVPC(ctx context.Context, name, cidr string, dnsHostnames bool, tagMap map[string]string) (*VPC, error) {
	existing, err := c.findVPCByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.CIDR != cidr {
			return nil, fmt.Errorf("vpc %s exists but with different base block %s (expected %s)",
				name, existing.CIDR, cidr)
		}
		return existing, nil
	}

	out, err := c.ec2.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock: awssdk.String(cidr),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeVpc,
			Tags:         tags.ToEC2(tagMap),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vpc %s: %w", name, err)
	}

	vpcID := awssdk.ToString(out.Vpc.VpcId)

	if dnsHostnames {
		// DNS support must be on before hostnames can be enabled.
		_, err = c.ec2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
			VpcId:            awssdk.String(vpcID),
			EnableDnsSupport: &ec2types.AttributeBooleanValue{Value: awssdk.Bool(true)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to enable DNS support on vpc %s: %w", vpcID, err)
		}
		_, err = c.ec2.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
			VpcId:              awssdk.String(vpcID),
			EnableDnsHostnames: &ec2types.AttributeBooleanValue{Value: awssdk.Bool(true)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to enable DNS hostnames on vpc %s: %w", vpcID, err)
		}
	}

	return &VPC{ID: vpcID, CIDR: cidr}, nil
}

// findVPCByName looks up a VPC by its Name tag. Returns nil when missing.
func (c *RealClient) findVPCByName(ctx context.Context, name string) (*VPC, error) {
	out, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("tag:" + tags.KeyName), Values: []string{name}},
			{Name: awssdk.String("tag:" + tags.KeyManagedBy), Values: []string{tags.ManagedBy}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe vpcs: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return nil, nil
	}

	vpc := out.Vpcs[0]
	return &VPC{
		ID:   awssdk.ToString(vpc.VpcId),
		CIDR: awssdk.ToString(vpc.CidrBlock),
	}, nil
}

// findVPCByCluster looks up the VPC by cluster tag. Returns nil when missing.
func (c *RealClient) findVPCByCluster(ctx context.Context, clusterName string) (*VPC, error) {
	key, value := tags.ClusterFilter(clusterName)
	out, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("tag:" + key), Values: []string{value}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe vpcs: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return nil, nil
	}
	return &VPC{
		ID:   awssdk.ToString(out.Vpcs[0].VpcId),
		CIDR: awssdk.ToString(out.Vpcs[0].CidrBlock),
	}, nil
}
