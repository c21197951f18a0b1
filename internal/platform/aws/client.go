package aws

import (
	"context"
)

// VPC describes a provisioned virtual network.
type VPC struct {
	ID   string
	CIDR string
}

// Subnet describes a provisioned subnet.
type Subnet struct {
	ID     string
	CIDR   string
	Zone   string
	Public bool
}

// NATGateway describes a provisioned NAT gateway and its elastic IP.
type NATGateway struct {
	ID           string
	AllocationID string
	SubnetID     string
}

// Cluster describes a provisioned EKS control plane.
type Cluster struct {
	Name                 string
	ARN                  string
	Endpoint             string
	Version              string
	Status               string
	CertificateAuthority string // base64 encoded CA bundle
}

// NodeGroup describes a provisioned managed node group.
type NodeGroup struct {
	Name        string
	Status      string
	MinSize     int32
	MaxSize     int32
	DesiredSize int32
}

// NodeGroupOpts holds all parameters for creating a managed node group.
type NodeGroupOpts struct {
	ClusterName   string
	Name          string
	RoleARN       string
	SubnetIDs     []string
	InstanceTypes []string
	MinSize       int32
	MaxSize       int32
	DesiredSize   int32
	CapacityType  string // "on-demand" or "spot"
	SSHKeyName    string // optional remote access key
	Labels        map[string]string
	Tags          map[string]string
}

// ClusterOpts holds all parameters for creating an EKS control plane.
type ClusterOpts struct {
	Name           string
	Version        string
	RoleARN        string
	SubnetIDs      []string
	PublicEndpoint bool
	CreatorAdmin   bool
	Tags           map[string]string
}

// ZoneResolver resolves the availability zones of the target region.
type ZoneResolver interface {
	// AvailableZones returns the names of all available zones, sorted.
	AvailableZones(ctx context.Context) ([]string, error)
}

// NetworkManager manages the VPC, its subnets, and the outbound path.
type NetworkManager interface {
	// EnsureVPC creates the VPC with the given base block unless a VPC
	// with the same Name tag already exists. DNS hostname resolution is
	// enabled when dnsHostnames is true.
	EnsureVPC(ctx context.Context, name, cidr string, dnsHostnames bool, tags map[string]string) (*VPC, error)

	// EnsureSubnet creates a subnet in the given zone unless one with the
	// same CIDR already exists in the VPC.
	EnsureSubnet(ctx context.Context, vpcID, name, cidr, zone string, public bool, tags map[string]string) (*Subnet, error)

	// EnsureInternetGateway creates and attaches the gateway serving the
	// public subnets.
	EnsureInternetGateway(ctx context.Context, vpcID, name string, tags map[string]string) (string, error)

	// EnsureNATGateway allocates an elastic IP named addressName and
	// creates a NAT gateway in the given public subnet, waiting until it
	// is available.
	EnsureNATGateway(ctx context.Context, subnetID, name, addressName string, tags map[string]string) (*NATGateway, error)

	// EnsurePublicRoutes creates the public route table with a default
	// route through the internet gateway and associates every public
	// subnet with it.
	EnsurePublicRoutes(ctx context.Context, vpcID, name, igwID string, subnetIDs []string, tags map[string]string) (string, error)

	// EnsurePrivateRoutes creates a private route table with a default
	// route through the NAT gateway and associates the given subnets.
	EnsurePrivateRoutes(ctx context.Context, vpcID, name, natID string, subnetIDs []string, tags map[string]string) (string, error)

	// DeleteNetwork tears down the whole network in dependency order:
	// NAT gateways and their addresses, route tables, the internet
	// gateway, subnets, and finally the VPC. Resources are discovered by
	// the cluster tag.
	DeleteNetwork(ctx context.Context, clusterName string) error
}

// ClusterManager manages the EKS control plane and its node groups.
type ClusterManager interface {
	// EnsureCluster creates the control plane unless it exists and waits
	// until it is active.
	EnsureCluster(ctx context.Context, opts ClusterOpts) (*Cluster, error)

	// GetCluster returns the cluster, or nil if it does not exist.
	GetCluster(ctx context.Context, name string) (*Cluster, error)

	// EnsureNodeGroup creates the node group unless it exists and waits
	// until it is active.
	EnsureNodeGroup(ctx context.Context, opts NodeGroupOpts) (*NodeGroup, error)

	// ListNodeGroups returns the names of the cluster's node groups.
	ListNodeGroups(ctx context.Context, clusterName string) ([]string, error)

	// DeleteNodeGroup deletes a node group and waits for it to be gone.
	DeleteNodeGroup(ctx context.Context, clusterName, name string) error

	// DeleteCluster deletes the control plane and waits for it to be gone.
	DeleteCluster(ctx context.Context, name string) error
}

// RoleManager manages the IAM roles assumed by the control plane and nodes.
type RoleManager interface {
	// EnsureClusterRole creates the control plane service role with the
	// EKS cluster policy attached. Returns the role ARN.
	EnsureClusterRole(ctx context.Context, name string, tags map[string]string) (string, error)

	// EnsureNodeRole creates the node instance role with the worker,
	// CNI, and registry policies attached. Returns the role ARN.
	EnsureNodeRole(ctx context.Context, name string, tags map[string]string) (string, error)

	// DeleteRole detaches all managed policies and deletes the role.
	DeleteRole(ctx context.Context, name string) error
}

// KeyPairManager manages EC2 key pairs for node remote access.
type KeyPairManager interface {
	// ImportKeyPair imports a public key unless the key name exists.
	ImportKeyPair(ctx context.Context, name string, publicKey []byte, tags map[string]string) error

	// DeleteKeyPair deletes the key pair if it exists.
	DeleteKeyPair(ctx context.Context, name string) error
}

// IdentityResolver returns the calling AWS identity.
type IdentityResolver interface {
	// CallerIdentity returns the account ID and ARN of the caller.
	CallerIdentity(ctx context.Context) (account, arn string, err error)
}

// InfrastructureManager combines all platform interfaces.
type InfrastructureManager interface {
	ZoneResolver
	NetworkManager
	ClusterManager
	RoleManager
	KeyPairManager
	IdentityResolver

	// Region returns the region this client operates in.
	Region() string
}
