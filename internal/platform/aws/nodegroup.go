package aws

import (
	"context"
	"fmt"
	"log"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
)

const (
	nodeGroupActiveTimeout = 20 * time.Minute
	nodeGroupDeleteTimeout = 15 * time.Minute
)

// EnsureNodeGroup creates the node group unless it exists and waits until
// it is active. Scaling bounds of an existing group are checked for drift.
func (c *RealClient) EnsureNodeGroup(ctx context.Context, opts NodeGroupOpts) (*NodeGroup, error) {
	existing, err := c.getNodeGroup(ctx, opts.ClusterName, opts.Name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		input := &eks.CreateNodegroupInput{
			ClusterName:   awssdk.String(opts.ClusterName),
			NodegroupName: awssdk.String(opts.Name),
			NodeRole:      awssdk.String(opts.RoleARN),
			Subnets:       opts.SubnetIDs,
			InstanceTypes: opts.InstanceTypes,
			ScalingConfig: &ekstypes.NodegroupScalingConfig{
				MinSize:     awssdk.Int32(opts.MinSize),
				MaxSize:     awssdk.Int32(opts.MaxSize),
				DesiredSize: awssdk.Int32(opts.DesiredSize),
			},
			CapacityType: capacityType(opts.CapacityType),
			Labels:       opts.Labels,
			Tags:         opts.Tags,
		}
		if opts.SSHKeyName != "" {
			input.RemoteAccess = &ekstypes.RemoteAccessConfig{
				Ec2SshKey: awssdk.String(opts.SSHKeyName),
			}
		}

		_, err := c.eks.CreateNodegroup(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to create node group %s: %w", opts.Name, err)
		}
		log.Printf("Node group %s creating, waiting for it to become active...", opts.Name)
	} else {
		if existing.MinSize != opts.MinSize || existing.MaxSize != opts.MaxSize {
			return nil, fmt.Errorf("node group %s exists but with scaling bounds %d-%d (expected %d-%d)",
				opts.Name, existing.MinSize, existing.MaxSize, opts.MinSize, opts.MaxSize)
		}
		if existing.Status == string(ekstypes.NodegroupStatusActive) {
			return existing, nil
		}
		log.Printf("Node group %s is %s, waiting for it to become active...", opts.Name, existing.Status)
	}

	waiter := eks.NewNodegroupActiveWaiter(c.eks)
	err = waiter.Wait(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   awssdk.String(opts.ClusterName),
		NodegroupName: awssdk.String(opts.Name),
	}, nodeGroupActiveTimeout)
	if err != nil {
		return nil, fmt.Errorf("node group %s did not become active: %w", opts.Name, err)
	}

	return c.getNodeGroup(ctx, opts.ClusterName, opts.Name)
}

// ListNodeGroups returns the names of the cluster's node groups. A missing
// cluster yields an empty list.
func (c *RealClient) ListNodeGroups(ctx context.Context, clusterName string) ([]string, error) {
	out, err := c.eks.ListNodegroups(ctx, &eks.ListNodegroupsInput{
		ClusterName: awssdk.String(clusterName),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list node groups of %s: %w", clusterName, err)
	}
	return out.Nodegroups, nil
}

// DeleteNodeGroup deletes a node group and waits for it to be gone.
func (c *RealClient) DeleteNodeGroup(ctx context.Context, clusterName, name string) error {
	_, err := c.eks.DeleteNodegroup(ctx, &eks.DeleteNodegroupInput{
		ClusterName:   awssdk.String(clusterName),
		NodegroupName: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete node group %s: %w", name, err)
	}

	waiter := eks.NewNodegroupDeletedWaiter(c.eks)
	err = waiter.Wait(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   awssdk.String(clusterName),
		NodegroupName: awssdk.String(name),
	}, nodeGroupDeleteTimeout)
	if err != nil {
		return fmt.Errorf("node group %s was not deleted: %w", name, err)
	}
	return nil
}

// getNodeGroup returns the node group, or nil if it does not exist.
func (c *RealClient) getNodeGroup(ctx context.Context, clusterName, name string) (*NodeGroup, error) {
	out, err := c.eks.DescribeNodegroup(ctx, &eks.DescribeNodegroupInput{
		ClusterName:   awssdk.String(clusterName),
		NodegroupName: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe node group %s: %w", name, err)
	}

	group := &NodeGroup{
		Name:   awssdk.ToString(out.Nodegroup.NodegroupName),
		Status: string(out.Nodegroup.Status),
	}
	if scaling := out.Nodegroup.ScalingConfig; scaling != nil {
		group.MinSize = awssdk.ToInt32(scaling.MinSize)
		group.MaxSize = awssdk.ToInt32(scaling.MaxSize)
		group.DesiredSize = awssdk.ToInt32(scaling.DesiredSize)
	}
	return group, nil
}

// capacityType maps the config value to the EKS API enum.
func capacityType(value string) ekstypes.CapacityTypes {
	if value == "spot" {
		return ekstypes.CapacityTypesSpot
	}
	return ekstypes.CapacityTypesOnDemand
}
