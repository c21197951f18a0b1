package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes all cluster resources from AWS in reverse
// dependency order: node groups, the control plane, IAM roles, the node
// key pair, and finally the network.
func Destroy() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the cluster and all associated resources",
		Long: `Destroy removes all cluster resources from AWS.

Resources are deleted in reverse dependency order:
  - Managed node groups
  - EKS control plane
  - IAM roles
  - Node SSH key pair
  - NAT gateways and elastic IPs
  - Route tables, internet gateway, subnets
  - VPC

Re-running destroy after a partial failure continues where it stopped.

Example:
  eksail destroy -c eksail.yaml

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to cluster configuration file (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
