package config

// Config holds the full eksail.yaml document.
type Config struct {
	ClusterName string `yaml:"cluster_name"`
	Region      string `yaml:"region"` // e.g. eu-central-1, us-east-1
	Environment string `yaml:"environment"`

	// Network Configuration
	Network NetworkConfig `yaml:"network"`

	// Cluster (control plane) Configuration
	Cluster ClusterConfig `yaml:"cluster"`

	// NodeGroups maps group name to its scaling and instance configuration.
	NodeGroups map[string]NodeGroupConfig `yaml:"node_groups"`

	// Addons Configuration (installed after the cluster is active)
	Addons AddonsConfig `yaml:"addons"`

	// Export Configuration (optional S3 upload of access data)
	Export ExportConfig `yaml:"export"`

	// KubeconfigPath specifies where to write the kubeconfig file.
	// Default: kubeconfig in the working directory.
	KubeconfigPath string `yaml:"kubeconfig_path"`
}

// NetworkConfig defines the VPC layout.
type NetworkConfig struct {
	// Name of the VPC. Defaults to the cluster name.
	Name string `yaml:"name"`

	// IPv4CIDR is the base address block carved into per-zone subnets.
	IPv4CIDR string `yaml:"ipv4_cidr"`

	// ZoneCount is the number of availability zones to spread subnets
	// across. Must not exceed the zones available in the region.
	ZoneCount int `yaml:"zone_count"`

	// PrivateCIDRs and PublicCIDRs override the derived subnet layout.
	// When empty, one private and one public /24 per zone is carved out
	// of IPv4CIDR.
	PrivateCIDRs []string `yaml:"private_cidrs"`
	PublicCIDRs  []string `yaml:"public_cidrs"`

	// NATMode selects the outbound NAT topology for private subnets:
	// "single" (one shared NAT gateway) or "per-zone".
	NATMode string `yaml:"nat_mode"`

	// DNSHostnames enables DNS hostname resolution inside the VPC.
	// Default: true.
	DNSHostnames *bool `yaml:"dns_hostnames"`
}

// ClusterConfig defines the managed control plane.
type ClusterConfig struct {
	// Version is the Kubernetes platform version, e.g. "1.32".
	Version string `yaml:"version"`

	// PublicEndpoint exposes the API server endpoint publicly.
	// Default: true.
	PublicEndpoint *bool `yaml:"public_endpoint"`

	// CreatorAdmin grants the identity creating the cluster admin
	// permissions via an access entry. Default: true.
	CreatorAdmin *bool `yaml:"creator_admin"`
}

// NodeGroupConfig defines a managed node group.
type NodeGroupConfig struct {
	InstanceTypes []string `yaml:"instance_types"`
	MinSize       int      `yaml:"min_size"`
	MaxSize       int      `yaml:"max_size"`
	DesiredSize   int      `yaml:"desired_size"`

	// CapacityType is "on-demand" (default) or "spot".
	CapacityType string `yaml:"capacity_type"`

	// Labels are applied as Kubernetes node labels.
	Labels map[string]string `yaml:"labels"`

	// RemoteAccess generates an SSH key pair and imports it as an EC2
	// key pair for node access. The private key is written next to the
	// kubeconfig.
	RemoteAccess bool `yaml:"remote_access"`
}

// AddonsConfig lists cluster addons installed via Helm after bootstrap.
type AddonsConfig struct {
	MetricsServer AddonConfig `yaml:"metrics_server"`
}

// AddonConfig holds per-addon settings.
type AddonConfig struct {
	Enabled bool `yaml:"enabled"`
	// Version pins the chart version. Empty means latest.
	Version string `yaml:"version"`
}

// ExportConfig uploads the kubeconfig and cluster outputs to S3 after a
// successful apply.
type ExportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
}
