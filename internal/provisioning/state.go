package provisioning

// NetworkOutput holds the identifiers the network phase produces and the
// cluster phase consumes. This is the only cross-phase data dependency:
// the cluster phase refuses to run without a complete NetworkOutput.
type NetworkOutput struct {
	VPCID            string
	PrivateSubnetIDs []string
	PublicSubnetIDs  []string
}

// Complete reports whether the output carries a VPC and one private subnet
// per expected zone.
func (o *NetworkOutput) Complete(zoneCount int) bool {
	return o != nil && o.VPCID != "" && len(o.PrivateSubnetIDs) == zoneCount
}

// ClusterOutput holds the final outputs of an apply.
type ClusterOutput struct {
	ClusterName          string
	EndpointURL          string
	ARN                  string
	CertificateAuthority string
	Version              string
}

// State holds the shared results of provisioning phases. It is
// progressively populated as each phase completes and is passed to
// subsequent phases that need earlier results.
type State struct {
	// Preflight results
	Zones []string // the zone slice used for subnet placement

	// Infrastructure results (populated by the network provisioner)
	Network *NetworkOutput

	// IAM results (populated by the cluster provisioner)
	ClusterRoleARN string
	NodeRoleARN    string

	// Node access (populated when a node group requests remote access)
	SSHKeyName    string
	SSHPrivateKey []byte

	// Cluster results (populated by the cluster provisioner)
	Cluster *ClusterOutput
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
