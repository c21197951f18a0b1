package aws

import (
	"context"
	"fmt"
	"sort"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// Managed policy ARNs required by EKS control planes and nodes.
const (
	clusterPolicyARN  = "arn:aws:iam::aws:policy/AmazonEKSClusterPolicy"
	workerPolicyARN   = "arn:aws:iam::aws:policy/AmazonEKSWorkerNodePolicy"
	cniPolicyARN      = "arn:aws:iam::aws:policy/AmazonEKS_CNI_Policy"
	registryPolicyARN = "arn:aws:iam::aws:policy/AmazonEC2ContainerRegistryReadOnly"
)

const eksTrustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"Service": "eks.amazonaws.com"},
    "Action": "sts:AssumeRole"
  }]
}`

const ec2TrustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"Service": "ec2.amazonaws.com"},
    "Action": "sts:AssumeRole"
  }]
}`

// EnsureClusterRole creates the control plane service role with the EKS
// cluster policy attached. Returns the role ARN.
func (c *RealClient) EnsureClusterRole(ctx context.Context, name string, tags map[string]string) (string, error) {
	return c.ensureRole(ctx, name, eksTrustPolicy, []string{clusterPolicyARN}, tags)
}

// EnsureNodeRole creates the node instance role with the worker, CNI, and
// registry policies attached. Returns the role ARN.
func (c *RealClient) EnsureNodeRole(ctx context.Context, name string, tags map[string]string) (string, error) {
	return c.ensureRole(ctx, name, ec2TrustPolicy, []string{workerPolicyARN, cniPolicyARN, registryPolicyARN}, tags)
}

// ensureRole creates the role unless it exists, then attaches any missing
// managed policies.
func (c *RealClient) ensureRole(ctx context.Context, name, trustPolicy string, policyARNs []string, tags map[string]string) (string, error) {
	var roleARN string

	existing, err := c.iam.GetRole(ctx, &iam.GetRoleInput{RoleName: awssdk.String(name)})
	switch {
	case err == nil:
		roleARN = awssdk.ToString(existing.Role.Arn)
	case IsNotFound(err):
		created, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
			RoleName:                 awssdk.String(name),
			AssumeRolePolicyDocument: awssdk.String(trustPolicy),
			Tags:                     toIAMTags(tags),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create role %s: %w", name, err)
		}
		roleARN = awssdk.ToString(created.Role.Arn)
	default:
		return "", fmt.Errorf("failed to get role %s: %w", name, err)
	}

	attached, err := c.attachedPolicies(ctx, name)
	if err != nil {
		return "", err
	}

	for _, policyARN := range policyARNs {
		if attached[policyARN] {
			continue
		}
		_, err := c.iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  awssdk.String(name),
			PolicyArn: awssdk.String(policyARN),
		})
		if err != nil {
			return "", fmt.Errorf("failed to attach policy %s to role %s: %w", policyARN, name, err)
		}
	}

	return roleARN, nil
}

// DeleteRole detaches all managed policies and deletes the role. A missing
// role is not an error.
func (c *RealClient) DeleteRole(ctx context.Context, name string) error {
	attached, err := c.attachedPolicies(ctx, name)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}

	arns := make([]string, 0, len(attached))
	for arn := range attached {
		arns = append(arns, arn)
	}
	sort.Strings(arns)

	for _, arn := range arns {
		_, err := c.iam.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
			RoleName:  awssdk.String(name),
			PolicyArn: awssdk.String(arn),
		})
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to detach policy %s from role %s: %w", arn, name, err)
		}
	}

	_, err = c.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: awssdk.String(name)})
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete role %s: %w", name, err)
	}
	return nil
}

// attachedPolicies returns the ARNs of the role's attached managed policies.
func (c *RealClient) attachedPolicies(ctx context.Context, name string) (map[string]bool, error) {
	out, err := c.iam.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to list policies of role %s: %w", name, err)
	}

	attached := make(map[string]bool, len(out.AttachedPolicies))
	for _, policy := range out.AttachedPolicies {
		attached[awssdk.ToString(policy.PolicyArn)] = true
	}
	return attached, nil
}

// toIAMTags converts a tag map to the IAM API representation, sorted by key.
func toIAMTags(tags map[string]string) []iamtypes.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]iamtypes.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, iamtypes.Tag{Key: awssdk.String(k), Value: awssdk.String(tags[k])})
	}
	return result
}
