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

// Control plane provisioning and teardown can each take a while.
const (
	clusterActiveTimeout = 25 * time.Minute
	clusterDeleteTimeout = 15 * time.Minute
)

// EnsureCluster creates the control plane unless it exists and waits until
// it is active. An existing cluster with a different platform version is
// treated as drift and returned as an error.
func (c *RealClient) EnsureCluster(ctx context.Context, opts ClusterOpts) (*Cluster, error) {
	existing, err := c.GetCluster(ctx, opts.Name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		input := &eks.CreateClusterInput{
			Name:    awssdk.String(opts.Name),
			Version: awssdk.String(opts.Version),
			RoleArn: awssdk.String(opts.RoleARN),
			ResourcesVpcConfig: &ekstypes.VpcConfigRequest{
				SubnetIds:             opts.SubnetIDs,
				EndpointPublicAccess:  awssdk.Bool(opts.PublicEndpoint),
				EndpointPrivateAccess: awssdk.Bool(true),
			},
			AccessConfig: &ekstypes.CreateAccessConfigRequest{
				AuthenticationMode:                      ekstypes.AuthenticationModeApiAndConfigMap,
				BootstrapClusterCreatorAdminPermissions: awssdk.Bool(opts.CreatorAdmin),
			},
			Tags: opts.Tags,
		}

		_, err := c.eks.CreateCluster(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to create cluster %s: %w", opts.Name, err)
		}
		log.Printf("Cluster %s creating, waiting for it to become active...", opts.Name)
	} else {
		if existing.Version != opts.Version {
			return nil, fmt.Errorf("cluster %s exists but with platform version %s (expected %s)",
				opts.Name, existing.Version, opts.Version)
		}
		if existing.Status == string(ekstypes.ClusterStatusActive) {
			return existing, nil
		}
		log.Printf("Cluster %s is %s, waiting for it to become active...", opts.Name, existing.Status)
	}

	waiter := eks.NewClusterActiveWaiter(c.eks)
	err = waiter.Wait(ctx, &eks.DescribeClusterInput{
		Name: awssdk.String(opts.Name),
	}, clusterActiveTimeout)
	if err != nil {
		return nil, fmt.Errorf("cluster %s did not become active: %w", opts.Name, err)
	}

	return c.GetCluster(ctx, opts.Name)
}

// GetCluster returns the cluster, or nil if it does not exist.
func (c *RealClient) GetCluster(ctx context.Context, name string) (*Cluster, error) {
	out, err := c.eks.DescribeCluster(ctx, &eks.DescribeClusterInput{
		Name: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe cluster %s: %w", name, err)
	}

	cluster := &Cluster{
		Name:     awssdk.ToString(out.Cluster.Name),
		ARN:      awssdk.ToString(out.Cluster.Arn),
		Endpoint: awssdk.ToString(out.Cluster.Endpoint),
		Version:  awssdk.ToString(out.Cluster.Version),
		Status:   string(out.Cluster.Status),
	}
	if out.Cluster.CertificateAuthority != nil {
		cluster.CertificateAuthority = awssdk.ToString(out.Cluster.CertificateAuthority.Data)
	}
	return cluster, nil
}

// DeleteCluster deletes the control plane and waits for it to be gone.
// A missing cluster is not an error.
func (c *RealClient) DeleteCluster(ctx context.Context, name string) error {
	_, err := c.eks.DeleteCluster(ctx, &eks.DeleteClusterInput{
		Name: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete cluster %s: %w", name, err)
	}

	waiter := eks.NewClusterDeletedWaiter(c.eks)
	err = waiter.Wait(ctx, &eks.DescribeClusterInput{
		Name: awssdk.String(name),
	}, clusterDeleteTimeout)
	if err != nil {
		return fmt.Errorf("cluster %s was not deleted: %w", name, err)
	}
	return nil
}
