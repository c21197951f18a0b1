package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Status returns the status command.
//
// Status is read-only: it queries the control plane and node group state
// from AWS without changing anything.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current state of the cluster",
		Long: `Show the current state of the cluster.

Queries AWS for the control plane status, the node groups and their
scaling bounds, and the network. If a kubeconfig is present, node
readiness is reported as well.

Example:
  eksail status -c eksail.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksail.yaml)")

	return cmd
}
