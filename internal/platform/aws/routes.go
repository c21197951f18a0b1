package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/eksail/internal/util/tags"
)

const defaultRoute = "0.0.0.0/0"

// EnsurePublicRoutes creates the public route table with a default route
// through the internet gateway and associates the public subnets.
func (c *RealClient) EnsurePublicRoutes(ctx context.Context, vpcID, name, igwID string, subnetIDs []string, tagMap map[string]string) (string, error) {
	tableID, created, err := c.ensureRouteTable(ctx, vpcID, name, tagMap)
	if err != nil {
		return "", err
	}

	if created {
		_, err = c.ec2.CreateRoute(ctx, &ec2.CreateRouteInput{
			RouteTableId:         awssdk.String(tableID),
			DestinationCidrBlock: awssdk.String(defaultRoute),
			GatewayId:            awssdk.String(igwID),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create default route via %s: %w", igwID, err)
		}
	}

	if err := c.associateSubnets(ctx, tableID, subnetIDs); err != nil {
		return "", err
	}
	return tableID, nil
}

// EnsurePrivateRoutes creates a private route table with a default route
// through the NAT gateway and associates the given subnets.
func (c *RealClient) EnsurePrivateRoutes(ctx context.Context, vpcID, name, natID string, subnetIDs []string, tagMap map[string]string) (string, error) {
	tableID, created, err := c.ensureRouteTable(ctx, vpcID, name, tagMap)
	if err != nil {
		return "", err
	}

	if created {
		_, err = c.ec2.CreateRoute(ctx, &ec2.CreateRouteInput{
			RouteTableId:         awssdk.String(tableID),
			DestinationCidrBlock: awssdk.String(defaultRoute),
			NatGatewayId:         awssdk.String(natID),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create default route via %s: %w", natID, err)
		}
	}

	if err := c.associateSubnets(ctx, tableID, subnetIDs); err != nil {
		return "", err
	}
	return tableID, nil
}

// ensureRouteTable returns the ID of the route table with the given Name
// tag, creating it when missing. The second return reports creation.
func (c *RealClient) ensureRouteTable(ctx context.Context, vpcID, name string, tagMap map[string]string) (string, bool, error) {
	out, err := c.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("vpc-id"), Values: []string{vpcID}},
			{Name: awssdk.String("tag:" + tags.KeyName), Values: []string{name}},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to describe route tables: %w", err)
	}
	if len(out.RouteTables) > 0 {
		return awssdk.ToString(out.RouteTables[0].RouteTableId), false, nil
	}

	created, err := c.ec2.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{
		VpcId: awssdk.String(vpcID),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeRouteTable,
			Tags:         tags.ToEC2(tagMap),
		}},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to create route table %s: %w", name, err)
	}
	return awssdk.ToString(created.RouteTable.RouteTableId), true, nil
}

// associateSubnets associates each subnet with the route table. Already
// associated subnets are skipped.
func (c *RealClient) associateSubnets(ctx context.Context, tableID string, subnetIDs []string) error {
	out, err := c.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		RouteTableIds: []string{tableID},
	})
	if err != nil {
		return fmt.Errorf("failed to describe route table %s: %w", tableID, err)
	}

	associated := make(map[string]bool)
	if len(out.RouteTables) > 0 {
		for _, assoc := range out.RouteTables[0].Associations {
			associated[awssdk.ToString(assoc.SubnetId)] = true
		}
	}

	for _, subnetID := range subnetIDs {
		if associated[subnetID] {
			continue
		}
		_, err := c.ec2.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
			RouteTableId: awssdk.String(tableID),
			SubnetId:     awssdk.String(subnetID),
		})
		if err != nil {
			return fmt.Errorf("failed to associate subnet %s with route table %s: %w", subnetID, tableID, err)
		}
	}
	return nil
}
