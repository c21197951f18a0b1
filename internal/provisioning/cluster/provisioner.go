// Package cluster provisions the managed control plane and its node
// groups inside the network created by the infrastructure phase.
package cluster

import (
	"fmt"
	"sort"

	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/util/keygen"
	"github.com/imamik/eksail/internal/util/naming"
	"github.com/imamik/eksail/internal/util/tags"
)

// Provisioner creates the IAM roles, the control plane, and the managed
// node groups.
type Provisioner struct{}

// NewProvisioner creates the cluster phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return "cluster" }

// Provision implements provisioning.Phase. The network output is a hard
// precondition: without a VPC and one private subnet per zone the phase
// fails before any AWS call.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if !ctx.State.Network.Complete(cfg.Network.ZoneCount) {
		return fmt.Errorf("network output is missing or incomplete, cannot place cluster (vpc=%v, private subnets=%d, expected %d)",
			networkID(ctx.State.Network), privateCount(ctx.State.Network), cfg.Network.ZoneCount)
	}

	base := tags.New(cfg.ClusterName, cfg.Environment).Build()

	clusterRoleARN, err := ctx.Infra.EnsureClusterRole(ctx, naming.ClusterRole(cfg.ClusterName), base)
	if err != nil {
		return fmt.Errorf("failed to ensure cluster role: %w", err)
	}
	ctx.State.ClusterRoleARN = clusterRoleARN

	nodeRoleARN, err := ctx.Infra.EnsureNodeRole(ctx, naming.NodeRole(cfg.ClusterName), base)
	if err != nil {
		return fmt.Errorf("failed to ensure node role: %w", err)
	}
	ctx.State.NodeRoleARN = nodeRoleARN

	if err := p.ensureRemoteAccessKey(ctx); err != nil {
		return err
	}

	cluster, err := ctx.Infra.EnsureCluster(ctx, aws.ClusterOpts{
		Name:           cfg.ClusterName,
		Version:        cfg.Cluster.Version,
		RoleARN:        clusterRoleARN,
		SubnetIDs:      ctx.State.Network.PrivateSubnetIDs,
		PublicEndpoint: *cfg.Cluster.PublicEndpoint,
		CreatorAdmin:   *cfg.Cluster.CreatorAdmin,
		Tags:           base,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure cluster: %w", err)
	}
	ctx.Observer.Event(provisioning.Event{
		Type: provisioning.EventResourceReady, Phase: p.Name(), Resource: cluster.Name,
		Fields: map[string]string{"endpoint": cluster.Endpoint},
	})

	if err := p.provisionNodeGroups(ctx, nodeRoleARN, base); err != nil {
		return err
	}

	ctx.State.Cluster = &provisioning.ClusterOutput{
		ClusterName:          cluster.Name,
		EndpointURL:          cluster.Endpoint,
		ARN:                  cluster.ARN,
		CertificateAuthority: cluster.CertificateAuthority,
		Version:              cluster.Version,
	}
	return nil
}

// ensureRemoteAccessKey generates and imports an SSH key pair when any
// node group requests remote access.
func (p *Provisioner) ensureRemoteAccessKey(ctx *provisioning.Context) error {
	cfg := ctx.Config

	wanted := false
	for _, group := range cfg.NodeGroups {
		if group.RemoteAccess {
			wanted = true
			break
		}
	}
	if !wanted {
		return nil
	}

	keyName := naming.KeyPair(cfg.ClusterName)
	pair, err := keygen.GenerateKeyPair(keyName)
	if err != nil {
		return fmt.Errorf("failed to generate node SSH key: %w", err)
	}

	err = ctx.Infra.ImportKeyPair(ctx, keyName, pair.PublicKey,
		tags.New(cfg.ClusterName, cfg.Environment).WithName(keyName).Build())
	if err != nil {
		return fmt.Errorf("failed to import node SSH key: %w", err)
	}

	ctx.State.SSHKeyName = keyName
	ctx.State.SSHPrivateKey = pair.PrivateKey
	return nil
}

// provisionNodeGroups creates every configured node group, sorted by name
// for deterministic ordering.
func (p *Provisioner) provisionNodeGroups(ctx *provisioning.Context, nodeRoleARN string, base map[string]string) error {
	cfg := ctx.Config

	names := make([]string, 0, len(cfg.NodeGroups))
	for name := range cfg.NodeGroups {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		group := cfg.NodeGroups[name]

		sshKey := ""
		if group.RemoteAccess {
			sshKey = ctx.State.SSHKeyName
		}

		_, err := ctx.Infra.EnsureNodeGroup(ctx, aws.NodeGroupOpts{
			ClusterName:   cfg.ClusterName,
			Name:          name,
			RoleARN:       nodeRoleARN,
			SubnetIDs:     ctx.State.Network.PrivateSubnetIDs,
			InstanceTypes: group.InstanceTypes,
			MinSize:       int32(group.MinSize),
			MaxSize:       int32(group.MaxSize),
			DesiredSize:   int32(group.DesiredSize),
			CapacityType:  group.CapacityType,
			SSHKeyName:    sshKey,
			Labels:        group.Labels,
			Tags:          base,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure node group %s: %w", name, err)
		}
		ctx.Observer.Progress(p.Name(), i+1, len(names))
	}
	return nil
}

func networkID(output *provisioning.NetworkOutput) string {
	if output == nil {
		return "<none>"
	}
	return output.VPCID
}

func privateCount(output *provisioning.NetworkOutput) int {
	if output == nil {
		return 0
	}
	return len(output.PrivateSubnetIDs)
}
