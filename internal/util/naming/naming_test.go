package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example-vpc", VPC("example"))
	assert.Equal(t, "example-igw", InternetGateway("example"))
	assert.Equal(t, "example-public-0", PublicSubnet("example", 0))
	assert.Equal(t, "example-private-2", PrivateSubnet("example", 2))
	assert.Equal(t, "example-nat-0", NATGateway("example", 0))
	assert.Equal(t, "example-nat-eip-1", NATAddress("example", 1))
	assert.Equal(t, "example-public-rt", PublicRouteTable("example"))
	assert.Equal(t, "example-private-rt-1", PrivateRouteTable("example", 1))
	assert.Equal(t, "example-cluster-role", ClusterRole("example"))
	assert.Equal(t, "example-node-role", NodeRole("example"))
	assert.Equal(t, "example-node-key", KeyPair("example"))
}
