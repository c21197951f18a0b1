// Package tags provides consistent tagging for AWS resources.
//
// Every resource provisioned by eksail carries the same fixed tag set so
// ownership can be tracked and teardown can discover resources by tag.
package tags

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Standard tag keys.
const (
	// KeyName is the display name of a resource.
	KeyName = "Name"

	// KeyEnvironment carries the environment tag from the config.
	KeyEnvironment = "Environment"

	// KeyManagedBy marks resources provisioned by this tool.
	KeyManagedBy = "eksail.io/managed-by"

	// KeyCluster identifies which cluster a resource belongs to.
	KeyCluster = "eksail.io/cluster"

	// KeyRole identifies the role of a subnet (public, private).
	KeyRole = "eksail.io/role"
)

// ManagedBy is the fixed value of KeyManagedBy.
const ManagedBy = "eksail"

// Subnet role values.
const (
	RolePublic  = "public"
	RolePrivate = "private"
)

// Builder assembles the tag map for a resource.
type Builder struct {
	tags map[string]string
}

// New creates a Builder carrying the fixed ownership tags for a cluster.
func New(clusterName, environment string) *Builder {
	return &Builder{
		tags: map[string]string{
			KeyCluster:     clusterName,
			KeyEnvironment: environment,
			KeyManagedBy:   ManagedBy,
		},
	}
}

// WithName sets the Name tag.
func (b *Builder) WithName(name string) *Builder {
	b.tags[KeyName] = name
	return b
}

// WithRole sets the subnet role tag.
func (b *Builder) WithRole(role string) *Builder {
	b.tags[KeyRole] = role
	return b
}

// With adds an arbitrary tag pair.
func (b *Builder) With(key, value string) *Builder {
	b.tags[key] = value
	return b
}

// Build returns a copy of the tag map.
func (b *Builder) Build() map[string]string {
	result := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		result[k] = v
	}
	return result
}

// EC2 converts the tags to the EC2 API representation, sorted by key for
// deterministic request bodies.
func (b *Builder) EC2() []ec2types.Tag {
	return ToEC2(b.Build())
}

// ToEC2 converts a tag map to the EC2 API representation.
func ToEC2(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return result
}

// ClusterFilter returns the tag key/value pair selecting all resources of a
// cluster.
func ClusterFilter(clusterName string) (string, string) {
	return KeyCluster, clusterName
}
