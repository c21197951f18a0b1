package config

// Defaults applied by LoadFile when the corresponding field is unset.
const (
	// DefaultIPv4CIDR is the base address block for the VPC.
	DefaultIPv4CIDR = "10.0.0.0/16"

	// DefaultZoneCount is the number of availability zones used when the
	// config does not specify one.
	DefaultZoneCount = 3

	// DefaultVersion is the Kubernetes platform version.
	DefaultVersion = "1.32"

	// DefaultNATMode provisions one shared NAT gateway for all private
	// subnets.
	DefaultNATMode = NATModeSingle

	// DefaultInstanceType is used by the init wizard's default node group.
	DefaultInstanceType = "t3.medium"

	// DefaultNodeGroupName names the node group created by the wizard.
	DefaultNodeGroupName = "example"

	// DefaultKubeconfigPath is where apply writes cluster credentials.
	DefaultKubeconfigPath = "kubeconfig"

	// subnetPrefixLen is the prefix length of derived per-zone subnets.
	subnetPrefixLen = 24
)

// NAT topology modes for private subnet egress.
const (
	// NATModeSingle shares one NAT gateway across all private subnets.
	NATModeSingle = "single"
	// NATModePerZone provisions one NAT gateway per availability zone.
	NATModePerZone = "per-zone"
)

// Capacity types for managed node groups.
const (
	CapacityOnDemand = "on-demand"
	CapacitySpot     = "spot"
)
