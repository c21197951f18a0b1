package provisioning

import (
	"fmt"
)

// Preflight resolves the availability zones of the target region, checks
// that the configured zone count does not exceed them, and stores the zone
// slice used for subnet placement.
type Preflight struct{}

// NewPreflight creates the preflight phase.
func NewPreflight() *Preflight {
	return &Preflight{}
}

// Name implements Phase.
func (p *Preflight) Name() string { return "preflight" }

// Provision implements Phase.
func (p *Preflight) Provision(ctx *Context) error {
	zones, err := ctx.Infra.AvailableZones(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve availability zones: %w", err)
	}

	want := ctx.Config.Network.ZoneCount
	if want > len(zones) {
		return fmt.Errorf("network.zone_count is %d but region %s only has %d availability zones",
			want, ctx.Config.Region, len(zones))
	}

	ctx.State.Zones = zones[:want]
	ctx.Observer.Printf("Using availability zones: %v", ctx.State.Zones)
	return nil
}
