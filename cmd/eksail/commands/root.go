// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the eksail CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eksail",
		Short: "Provision Amazon EKS clusters from a single YAML file",
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Status())

	// Cluster access
	cmd.AddCommand(Kubeconfig())
	cmd.AddCommand(Sample())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
