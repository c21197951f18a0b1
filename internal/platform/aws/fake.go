package aws

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// FakeClient is an in-memory InfrastructureManager for tests. It records
// every mutating call in Calls so tests can assert ordering, and fails on
// demand through FailOn.
type FakeClient struct {
	mu sync.Mutex

	// Calls records mutating operations in invocation order, e.g.
	// "EnsureVPC example-vpc" or "DeleteCluster example".
	Calls []string

	// FailOn maps an operation name (e.g. "EnsureCluster") to an error
	// returned instead of performing the operation.
	FailOn map[string]error

	// Zones returned by AvailableZones. Defaults to three zones.
	Zones []string

	vpcs       map[string]*VPC    // name -> vpc
	subnets    map[string]*Subnet // cidr -> subnet
	nats       map[string]*NATGateway
	clusters   map[string]*Cluster
	nodeGroups map[string]map[string]*NodeGroup // cluster -> group name
	roles      map[string]string                // name -> arn
	keyPairs   map[string][]byte
}

// NewFakeClient creates an empty fake with three zones available.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		FailOn:     make(map[string]error),
		Zones:      []string{"eu-central-1a", "eu-central-1b", "eu-central-1c"},
		vpcs:       make(map[string]*VPC),
		subnets:    make(map[string]*Subnet),
		nats:       make(map[string]*NATGateway),
		clusters:   make(map[string]*Cluster),
		nodeGroups: make(map[string]map[string]*NodeGroup),
		roles:      make(map[string]string),
		keyPairs:   make(map[string][]byte),
	}
}

var _ InfrastructureManager = (*FakeClient)(nil)

func (f *FakeClient) record(op string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := op
	for _, arg := range args {
		call += " " + arg
	}
	f.Calls = append(f.Calls, call)
	if err, ok := f.FailOn[op]; ok {
		return err
	}
	return nil
}

// Region implements InfrastructureManager.
func (f *FakeClient) Region() string { return "eu-central-1" }

// AvailableZones implements ZoneResolver.
func (f *FakeClient) AvailableZones(_ context.Context) ([]string, error) {
	if err, ok := f.FailOn["AvailableZones"]; ok {
		return nil, err
	}
	zones := append([]string{}, f.Zones...)
	sort.Strings(zones)
	return zones, nil
}

// EnsureVPC implements NetworkManager.
func (f *FakeClient) EnsureVPC(_ context.Context, name, cidr string, _ bool, _ map[string]string) (*VPC, error) {
	if err := f.record("EnsureVPC", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.vpcs[name]; ok {
		if existing.CIDR != cidr {
			return nil, fmt.Errorf("vpc %s exists but with different base block %s (expected %s)", name, existing.CIDR, cidr)
		}
		return existing, nil
	}
	vpc := &VPC{ID: fmt.Sprintf("vpc-%08d", len(f.vpcs)+1), CIDR: cidr}
	f.vpcs[name] = vpc
	return vpc, nil
}

// EnsureSubnet implements NetworkManager.
func (f *FakeClient) EnsureSubnet(_ context.Context, _, name, cidr, zone string, public bool, _ map[string]string) (*Subnet, error) {
	if err := f.record("EnsureSubnet", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.subnets[cidr]; ok {
		return existing, nil
	}
	subnet := &Subnet{
		ID:     fmt.Sprintf("subnet-%08d", len(f.subnets)+1),
		CIDR:   cidr,
		Zone:   zone,
		Public: public,
	}
	f.subnets[cidr] = subnet
	return subnet, nil
}

// EnsureInternetGateway implements NetworkManager.
func (f *FakeClient) EnsureInternetGateway(_ context.Context, _, name string, _ map[string]string) (string, error) {
	if err := f.record("EnsureInternetGateway", name); err != nil {
		return "", err
	}
	return "igw-00000001", nil
}

// EnsureNATGateway implements NetworkManager.
func (f *FakeClient) EnsureNATGateway(_ context.Context, subnetID, name, addressName string, _ map[string]string) (*NATGateway, error) {
	if err := f.record("EnsureNATGateway", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	existing, ok := f.nats[subnetID]
	f.mu.Unlock()
	if ok {
		return existing, nil
	}
	if err := f.record("AllocateAddress", addressName); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	nat := &NATGateway{
		ID:           fmt.Sprintf("nat-%08d", len(f.nats)+1),
		AllocationID: fmt.Sprintf("eipalloc-%08d", len(f.nats)+1),
		SubnetID:     subnetID,
	}
	f.nats[subnetID] = nat
	return nat, nil
}

// EnsurePublicRoutes implements NetworkManager.
func (f *FakeClient) EnsurePublicRoutes(_ context.Context, _, name, _ string, _ []string, _ map[string]string) (string, error) {
	if err := f.record("EnsurePublicRoutes", name); err != nil {
		return "", err
	}
	return "rtb-public", nil
}

// EnsurePrivateRoutes implements NetworkManager.
func (f *FakeClient) EnsurePrivateRoutes(_ context.Context, _, name, _ string, _ []string, _ map[string]string) (string, error) {
	if err := f.record("EnsurePrivateRoutes", name); err != nil {
		return "", err
	}
	return "rtb-" + name, nil
}

// DeleteNetwork implements NetworkManager.
func (f *FakeClient) DeleteNetwork(_ context.Context, clusterName string) error {
	if err := f.record("DeleteNetwork", clusterName); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vpcs = make(map[string]*VPC)
	f.subnets = make(map[string]*Subnet)
	f.nats = make(map[string]*NATGateway)
	return nil
}

// EnsureCluster implements ClusterManager.
func (f *FakeClient) EnsureCluster(_ context.Context, opts ClusterOpts) (*Cluster, error) {
	if err := f.record("EnsureCluster", opts.Name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.clusters[opts.Name]; ok {
		return existing, nil
	}
	cluster := &Cluster{
		Name:                 opts.Name,
		ARN:                  "arn:aws:eks:eu-central-1:000000000000:cluster/" + opts.Name,
		Endpoint:             "https://" + opts.Name + ".eks.example.invalid",
		Version:              opts.Version,
		Status:               "ACTIVE",
		CertificateAuthority: "dGVzdC1jYS1kYXRh",
	}
	f.clusters[opts.Name] = cluster
	return cluster, nil
}

// GetCluster implements ClusterManager.
func (f *FakeClient) GetCluster(_ context.Context, name string) (*Cluster, error) {
	if err, ok := f.FailOn["GetCluster"]; ok {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clusters[name], nil
}

// EnsureNodeGroup implements ClusterManager.
func (f *FakeClient) EnsureNodeGroup(_ context.Context, opts NodeGroupOpts) (*NodeGroup, error) {
	if err := f.record("EnsureNodeGroup", opts.Name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	groups, ok := f.nodeGroups[opts.ClusterName]
	if !ok {
		groups = make(map[string]*NodeGroup)
		f.nodeGroups[opts.ClusterName] = groups
	}
	if existing, ok := groups[opts.Name]; ok {
		return existing, nil
	}
	group := &NodeGroup{
		Name:        opts.Name,
		Status:      "ACTIVE",
		MinSize:     opts.MinSize,
		MaxSize:     opts.MaxSize,
		DesiredSize: opts.DesiredSize,
	}
	groups[opts.Name] = group
	return group, nil
}

// ListNodeGroups implements ClusterManager.
func (f *FakeClient) ListNodeGroups(_ context.Context, clusterName string) ([]string, error) {
	if err, ok := f.FailOn["ListNodeGroups"]; ok {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.nodeGroups[clusterName]))
	for name := range f.nodeGroups[clusterName] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteNodeGroup implements ClusterManager.
func (f *FakeClient) DeleteNodeGroup(_ context.Context, clusterName, name string) error {
	if err := f.record("DeleteNodeGroup", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.nodeGroups[clusterName], name)
	return nil
}

// DeleteCluster implements ClusterManager.
func (f *FakeClient) DeleteCluster(_ context.Context, name string) error {
	if err := f.record("DeleteCluster", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clusters, name)
	return nil
}

// EnsureClusterRole implements RoleManager.
func (f *FakeClient) EnsureClusterRole(_ context.Context, name string, _ map[string]string) (string, error) {
	if err := f.record("EnsureClusterRole", name); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	arn := "arn:aws:iam::000000000000:role/" + name
	f.roles[name] = arn
	return arn, nil
}

// EnsureNodeRole implements RoleManager.
func (f *FakeClient) EnsureNodeRole(_ context.Context, name string, _ map[string]string) (string, error) {
	if err := f.record("EnsureNodeRole", name); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	arn := "arn:aws:iam::000000000000:role/" + name
	f.roles[name] = arn
	return arn, nil
}

// DeleteRole implements RoleManager.
func (f *FakeClient) DeleteRole(_ context.Context, name string) error {
	if err := f.record("DeleteRole", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, name)
	return nil
}

// ImportKeyPair implements KeyPairManager.
func (f *FakeClient) ImportKeyPair(_ context.Context, name string, publicKey []byte, _ map[string]string) error {
	if err := f.record("ImportKeyPair", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keyPairs[name]; !ok {
		f.keyPairs[name] = publicKey
	}
	return nil
}

// DeleteKeyPair implements KeyPairManager.
func (f *FakeClient) DeleteKeyPair(_ context.Context, name string) error {
	if err := f.record("DeleteKeyPair", name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keyPairs, name)
	return nil
}

// CallerIdentity implements IdentityResolver.
func (f *FakeClient) CallerIdentity(_ context.Context) (string, string, error) {
	if err, ok := f.FailOn["CallerIdentity"]; ok {
		return "", "", err
	}
	return "000000000000", "arn:aws:iam::000000000000:user/test", nil
}

// VPCCount returns the number of stored VPCs (test helper).
func (f *FakeClient) VPCCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.vpcs)
}

// SubnetCount returns the number of stored subnets (test helper).
func (f *FakeClient) SubnetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subnets)
}

// NATCount returns the number of stored NAT gateways (test helper).
func (f *FakeClient) NATCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nats)
}
