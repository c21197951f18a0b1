// Package infrastructure provisions the network: VPC, per-zone subnets,
// internet gateway, NAT path, and route tables.
package infrastructure

import (
	"fmt"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/util/naming"
	"github.com/imamik/eksail/internal/util/tags"
)

// Provisioner creates the network and publishes its NetworkOutput into the
// shared state.
type Provisioner struct{}

// NewProvisioner creates the infrastructure phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string { return "infrastructure" }

// Provision implements provisioning.Phase. Preflight must have populated
// the zone slice.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if len(ctx.State.Zones) != cfg.Network.ZoneCount {
		return fmt.Errorf("zone slice not resolved, expected %d zones, got %d",
			cfg.Network.ZoneCount, len(ctx.State.Zones))
	}

	base := tags.New(cfg.ClusterName, cfg.Environment)

	vpc, err := ctx.Infra.EnsureVPC(ctx,
		naming.VPC(cfg.ClusterName),
		cfg.Network.IPv4CIDR,
		*cfg.Network.DNSHostnames,
		base.WithName(naming.VPC(cfg.ClusterName)).Build(),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure vpc: %w", err)
	}
	ctx.Observer.Event(provisioning.Event{
		Type: provisioning.EventResourceReady, Phase: p.Name(), Resource: vpc.ID,
	})

	output := &provisioning.NetworkOutput{VPCID: vpc.ID}

	// Public subnets first, the NAT gateways live there.
	for i, cidr := range cfg.Network.PublicCIDRs {
		name := naming.PublicSubnet(cfg.ClusterName, i)
		subnet, err := ctx.Infra.EnsureSubnet(ctx, vpc.ID, name, cidr, ctx.State.Zones[i], true,
			tags.New(cfg.ClusterName, cfg.Environment).WithName(name).WithRole(tags.RolePublic).Build())
		if err != nil {
			return fmt.Errorf("failed to ensure public subnet %s: %w", name, err)
		}
		output.PublicSubnetIDs = append(output.PublicSubnetIDs, subnet.ID)
		ctx.Observer.Progress(p.Name(), i+1, len(cfg.Network.PublicCIDRs))
	}

	for i, cidr := range cfg.Network.PrivateCIDRs {
		name := naming.PrivateSubnet(cfg.ClusterName, i)
		subnet, err := ctx.Infra.EnsureSubnet(ctx, vpc.ID, name, cidr, ctx.State.Zones[i], false,
			tags.New(cfg.ClusterName, cfg.Environment).WithName(name).WithRole(tags.RolePrivate).Build())
		if err != nil {
			return fmt.Errorf("failed to ensure private subnet %s: %w", name, err)
		}
		output.PrivateSubnetIDs = append(output.PrivateSubnetIDs, subnet.ID)
		ctx.Observer.Progress(p.Name(), i+1, len(cfg.Network.PrivateCIDRs))
	}

	igwName := naming.InternetGateway(cfg.ClusterName)
	igwID, err := ctx.Infra.EnsureInternetGateway(ctx, vpc.ID, igwName,
		tags.New(cfg.ClusterName, cfg.Environment).WithName(igwName).Build())
	if err != nil {
		return fmt.Errorf("failed to ensure internet gateway: %w", err)
	}

	rtName := naming.PublicRouteTable(cfg.ClusterName)
	_, err = ctx.Infra.EnsurePublicRoutes(ctx, vpc.ID, rtName, igwID, output.PublicSubnetIDs,
		tags.New(cfg.ClusterName, cfg.Environment).WithName(rtName).Build())
	if err != nil {
		return fmt.Errorf("failed to ensure public routes: %w", err)
	}

	if err := p.provisionNAT(ctx, cfg, vpc.ID, output); err != nil {
		return err
	}

	ctx.State.Network = output
	ctx.Observer.Printf("Network ready: vpc=%s private_subnets=%v", output.VPCID, output.PrivateSubnetIDs)
	return nil
}

// provisionNAT creates the outbound path for private subnets: either one
// shared NAT gateway or one per zone, each with its own route table.
func (p *Provisioner) provisionNAT(ctx *provisioning.Context, cfg *config.Config, vpcID string, output *provisioning.NetworkOutput) error {
	natCount := 1
	if cfg.Network.NATMode == config.NATModePerZone {
		natCount = cfg.Network.ZoneCount
	}

	for i := 0; i < natCount; i++ {
		natName := naming.NATGateway(cfg.ClusterName, i)
		nat, err := ctx.Infra.EnsureNATGateway(ctx, output.PublicSubnetIDs[i], natName,
			naming.NATAddress(cfg.ClusterName, i),
			tags.New(cfg.ClusterName, cfg.Environment).WithName(natName).Build())
		if err != nil {
			return fmt.Errorf("failed to ensure NAT gateway %s: %w", natName, err)
		}

		// With a shared gateway every private subnet routes through it;
		// per-zone mode routes each zone's subnet through its own.
		subnetIDs := output.PrivateSubnetIDs
		if cfg.Network.NATMode == config.NATModePerZone {
			subnetIDs = output.PrivateSubnetIDs[i : i+1]
		}

		rtName := naming.PrivateRouteTable(cfg.ClusterName, i)
		_, err = ctx.Infra.EnsurePrivateRoutes(ctx, vpcID, rtName, nat.ID, subnetIDs,
			tags.New(cfg.ClusterName, cfg.Environment).WithName(rtName).Build())
		if err != nil {
			return fmt.Errorf("failed to ensure private routes %s: %w", rtName, err)
		}
	}
	return nil
}
