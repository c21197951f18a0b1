package aws

import (
	"context"
	"fmt"
	"log"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/eksail/internal/util/retry"
	"github.com/imamik/eksail/internal/util/tags"
)

// natDeleteTimeout bounds the wait for NAT gateways to disappear.
const natDeleteTimeout = 10 * time.Minute

// DeleteNetwork tears down the whole network in dependency order. All
// resources are discovered by the cluster tag, so partially provisioned
// networks clean up too. Missing resources are skipped.
func (c *RealClient) DeleteNetwork(ctx context.Context, clusterName string) error {
	vpc, err := c.findVPCByCluster(ctx, clusterName)
	if err != nil {
		return err
	}
	if vpc == nil {
		log.Printf("No network found for cluster %s, nothing to delete", clusterName)
		return nil
	}

	if err := c.deleteNATGateways(ctx, vpc.ID); err != nil {
		return err
	}
	if err := c.releaseAddresses(ctx, clusterName); err != nil {
		return err
	}
	if err := c.deleteRouteTables(ctx, vpc.ID); err != nil {
		return err
	}
	if err := c.deleteInternetGateway(ctx, vpc.ID); err != nil {
		return err
	}
	if err := c.deleteSubnets(ctx, clusterName); err != nil {
		return err
	}

	// The VPC can report dependents for a short while after its members
	// are gone.
	err = retry.Do(ctx, func() error {
		_, err := c.ec2.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: awssdk.String(vpc.ID)})
		if err != nil && !IsNotFound(err) && !IsDependencyViolation(err) {
			return retry.Fatal(err)
		}
		if IsDependencyViolation(err) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete vpc %s: %w", vpc.ID, err)
	}

	log.Printf("Deleted network %s for cluster %s", vpc.ID, clusterName)
	return nil
}

func (c *RealClient) deleteNATGateways(ctx context.Context, vpcID string) error {
	out, err := c.ec2.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		Filter: []ec2types.Filter{
			{Name: awssdk.String("vpc-id"), Values: []string{vpcID}},
			{Name: awssdk.String("state"), Values: []string{"pending", "available"}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to describe NAT gateways: %w", err)
	}

	ids := make([]string, 0, len(out.NatGateways))
	for _, nat := range out.NatGateways {
		id := awssdk.ToString(nat.NatGatewayId)
		_, err := c.ec2.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{
			NatGatewayId: awssdk.String(id),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete NAT gateway %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil
	}

	// Route table and subnet deletion fail while NAT gateways linger.
	waiter := ec2.NewNatGatewayDeletedWaiter(c.ec2)
	err = waiter.Wait(ctx, &ec2.DescribeNatGatewaysInput{NatGatewayIds: ids}, natDeleteTimeout)
	if err != nil {
		return fmt.Errorf("NAT gateways %v were not deleted: %w", ids, err)
	}
	return nil
}

func (c *RealClient) releaseAddresses(ctx context.Context, clusterName string) error {
	key, value := tags.ClusterFilter(clusterName)
	out, err := c.ec2.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("tag:" + key), Values: []string{value}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to describe addresses: %w", err)
	}

	for _, addr := range out.Addresses {
		_, err := c.ec2.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
			AllocationId: addr.AllocationId,
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to release address %s: %w", awssdk.ToString(addr.AllocationId), err)
		}
	}
	return nil
}

func (c *RealClient) deleteRouteTables(ctx context.Context, vpcID string) error {
	out, err := c.ec2.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("vpc-id"), Values: []string{vpcID}},
			{Name: awssdk.String("tag:" + tags.KeyManagedBy), Values: []string{tags.ManagedBy}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to describe route tables: %w", err)
	}

	for _, table := range out.RouteTables {
		for _, assoc := range table.Associations {
			if awssdk.ToBool(assoc.Main) {
				continue
			}
			_, err := c.ec2.DisassociateRouteTable(ctx, &ec2.DisassociateRouteTableInput{
				AssociationId: assoc.RouteTableAssociationId,
			})
			if err != nil && !IsNotFound(err) {
				return fmt.Errorf("failed to disassociate route table: %w", err)
			}
		}

		_, err := c.ec2.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{
			RouteTableId: table.RouteTableId,
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete route table %s: %w", awssdk.ToString(table.RouteTableId), err)
		}
	}
	return nil
}

func (c *RealClient) deleteInternetGateway(ctx context.Context, vpcID string) error {
	out, err := c.ec2.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("attachment.vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to describe internet gateways: %w", err)
	}

	for _, igw := range out.InternetGateways {
		id := awssdk.ToString(igw.InternetGatewayId)
		_, err := c.ec2.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
			InternetGatewayId: awssdk.String(id),
			VpcId:             awssdk.String(vpcID),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to detach internet gateway %s: %w", id, err)
		}
		_, err = c.ec2.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
			InternetGatewayId: awssdk.String(id),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete internet gateway %s: %w", id, err)
		}
	}
	return nil
}

func (c *RealClient) deleteSubnets(ctx context.Context, clusterName string) error {
	subnets, err := c.listSubnetsByCluster(ctx, clusterName)
	if err != nil {
		return err
	}

	for _, subnet := range subnets {
		subnetID := subnet.ID
		err := retry.Do(ctx, func() error {
			_, err := c.ec2.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{
				SubnetId: awssdk.String(subnetID),
			})
			if err != nil && !IsNotFound(err) && !IsDependencyViolation(err) {
				return retry.Fatal(err)
			}
			if IsDependencyViolation(err) {
				return err
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to delete subnet %s: %w", subnetID, err)
		}
	}
	return nil
}
