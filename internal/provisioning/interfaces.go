// Package provisioning provides shared types and interfaces for cluster
// provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - infrastructure/ — VPC, subnets, gateways, routing
//   - cluster/ — IAM roles, control plane, managed node groups
//   - destroy/ — reverse-order teardown
//
// This root package contains the phase pipeline, the shared state passed
// between phases, and the observer used for progress reporting.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Logger is the minimal logging interface used throughout provisioning.
type Logger interface {
	Printf(format string, v ...interface{})
}
