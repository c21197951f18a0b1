// Package destroy tears down everything an apply created, in reverse
// dependency order.
package destroy

import (
	"fmt"
	"sort"

	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/util/naming"
)

// Provisioner deletes node groups, the control plane, the IAM roles, the
// node key pair, and finally the network. Every step tolerates resources
// that are already gone, so a partially failed destroy can be re-run.
type Provisioner struct{}

// NewProvisioner creates the destroy phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return "destroy" }

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if err := p.deleteNodeGroups(ctx); err != nil {
		return err
	}

	ctx.Observer.Event(provisioning.Event{
		Type: provisioning.EventResourceDeleting, Phase: p.Name(), Resource: cfg.ClusterName,
	})
	if err := ctx.Infra.DeleteCluster(ctx, cfg.ClusterName); err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}

	for _, role := range []string{naming.ClusterRole(cfg.ClusterName), naming.NodeRole(cfg.ClusterName)} {
		if err := ctx.Infra.DeleteRole(ctx, role); err != nil {
			return fmt.Errorf("failed to delete role %s: %w", role, err)
		}
	}

	if err := ctx.Infra.DeleteKeyPair(ctx, naming.KeyPair(cfg.ClusterName)); err != nil {
		return fmt.Errorf("failed to delete key pair: %w", err)
	}

	if err := ctx.Infra.DeleteNetwork(ctx, cfg.ClusterName); err != nil {
		return fmt.Errorf("failed to delete network: %w", err)
	}

	ctx.Observer.Event(provisioning.Event{
		Type: provisioning.EventResourceDeleted, Phase: p.Name(), Resource: cfg.ClusterName,
	})
	return nil
}

// deleteNodeGroups removes every node group before the control plane.
// Discovery goes through the API rather than the config so groups removed
// from the config are still cleaned up.
func (p *Provisioner) deleteNodeGroups(ctx *provisioning.Context) error {
	names, err := ctx.Infra.ListNodeGroups(ctx, ctx.Config.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to list node groups: %w", err)
	}
	sort.Strings(names)

	for i, name := range names {
		if err := ctx.Infra.DeleteNodeGroup(ctx, ctx.Config.ClusterName, name); err != nil {
			return fmt.Errorf("failed to delete node group %s: %w", name, err)
		}
		ctx.Observer.Progress(p.Name(), i+1, len(names))
	}
	return nil
}
