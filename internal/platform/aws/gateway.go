package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/eksail/internal/util/tags"
)

// natGatewayTimeout bounds the wait for a NAT gateway to become available.
const natGatewayTimeout = 10 * time.Minute

// EnsureInternetGateway creates and attaches the internet gateway unless
// the VPC already has one.
func (c *RealClient) EnsureInternetGateway(ctx context.Context, vpcID, name string, tagMap map[string]string) (string, error) {
	out, err := c.ec2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("attachment.vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe internet gateways: %w", err)
	}
	if len(out.InternetGateways) > 0 {
		return awssdk.ToString(out.InternetGateways[0].InternetGatewayId), nil
	}

	created, err := c.ec2.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeInternetGateway,
			Tags:         tags.ToEC2(tagMap),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create internet gateway %s: %w", name, err)
	}

	igwID := awssdk.ToString(created.InternetGateway.InternetGatewayId)

	_, err = c.ec2.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: awssdk.String(igwID),
		VpcId:             awssdk.String(vpcID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach internet gateway %s to vpc %s: %w", igwID, vpcID, err)
	}

	return igwID, nil
}

// EnsureNATGateway allocates an elastic IP and creates a NAT gateway in the
// given public subnet, then waits until it is available. An existing
// gateway in the subnet is reused. The elastic IP carries addressName as
// its Name tag so it can be told apart from the gateway.
func (c *RealClient) EnsureNATGateway(ctx context.Context, subnetID, name, addressName string, tagMap map[string]string) (*NATGateway, error) {
	existing, err := c.findNATGatewayBySubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	eipTags := make(map[string]string, len(tagMap))
	for k, v := range tagMap {
		eipTags[k] = v
	}
	eipTags[tags.KeyName] = addressName

	eip, err := c.ec2.AllocateAddress(ctx, &ec2.AllocateAddressInput{
		Domain: ec2types.DomainTypeVpc,
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeElasticIp,
			Tags:         tags.ToEC2(eipTags),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate elastic IP for %s: %w", name, err)
	}
	allocationID := awssdk.ToString(eip.AllocationId)

	created, err := c.ec2.CreateNatGateway(ctx, &ec2.CreateNatGatewayInput{
		SubnetId:     awssdk.String(subnetID),
		AllocationId: awssdk.String(allocationID),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeNatgateway,
			Tags:         tags.ToEC2(tagMap),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create NAT gateway %s: %w", name, err)
	}

	natID := awssdk.ToString(created.NatGateway.NatGatewayId)

	waiter := ec2.NewNatGatewayAvailableWaiter(c.ec2)
	err = waiter.Wait(ctx, &ec2.DescribeNatGatewaysInput{
		NatGatewayIds: []string{natID},
	}, natGatewayTimeout)
	if err != nil {
		return nil, fmt.Errorf("NAT gateway %s did not become available: %w", natID, err)
	}

	return &NATGateway{ID: natID, AllocationID: allocationID, SubnetID: subnetID}, nil
}

// findNATGatewayBySubnet returns a pending or available NAT gateway in the
// subnet, or nil.
func (c *RealClient) findNATGatewayBySubnet(ctx context.Context, subnetID string) (*NATGateway, error) {
	out, err := c.ec2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		Filter: []ec2types.Filter{
			{Name: awssdk.String("subnet-id"), Values: []string{subnetID}},
			{Name: awssdk.String("state"), Values: []string{"pending", "available"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe NAT gateways: %w", err)
	}
	if len(out.NatGateways) == 0 {
		return nil, nil
	}

	nat := out.NatGateways[0]
	result := &NATGateway{
		ID:       awssdk.ToString(nat.NatGatewayId),
		SubnetID: subnetID,
	}
	if len(nat.NatGatewayAddresses) > 0 {
		result.AllocationID = awssdk.ToString(nat.NatGatewayAddresses[0].AllocationId)
	}
	return result, nil
}
