// Package naming defines the resource naming convention.
//
// All AWS resources follow consistent naming patterns so they can be
// identified and cleaned up by name or Name tag.
package naming

import "fmt"

func VPC(cluster string) string {
	return fmt.Sprintf("%s-vpc", cluster)
}

func InternetGateway(cluster string) string {
	return fmt.Sprintf("%s-igw", cluster)
}

func PublicSubnet(cluster string, index int) string {
	return fmt.Sprintf("%s-public-%d", cluster, index)
}

func PrivateSubnet(cluster string, index int) string {
	return fmt.Sprintf("%s-private-%d", cluster, index)
}

func NATGateway(cluster string, index int) string {
	return fmt.Sprintf("%s-nat-%d", cluster, index)
}

func NATAddress(cluster string, index int) string {
	return fmt.Sprintf("%s-nat-eip-%d", cluster, index)
}

func PublicRouteTable(cluster string) string {
	return fmt.Sprintf("%s-public-rt", cluster)
}

func PrivateRouteTable(cluster string, index int) string {
	return fmt.Sprintf("%s-private-rt-%d", cluster, index)
}

func ClusterRole(cluster string) string {
	return fmt.Sprintf("%s-cluster-role", cluster)
}

func NodeRole(cluster string) string {
	return fmt.Sprintf("%s-node-role", cluster)
}

func KeyPair(cluster string) string {
	return fmt.Sprintf("%s-node-key", cluster)
}
