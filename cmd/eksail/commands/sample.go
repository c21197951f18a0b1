package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Sample returns the sample command.
//
// The sample command deploys a small nginx workload as a smoke test for a
// freshly provisioned cluster.
func Sample() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Deploy a sample workload as a smoke test",
		Long: `Deploy a sample nginx workload and wait for it to become ready.

This is a quick end-to-end check of a freshly provisioned cluster: it
exercises the node groups, image pulls through the NAT path, and the
cluster network. Re-running updates the workload in place.

Example:
  eksail sample -c eksail.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Sample(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksail.yaml)")

	return cmd
}
