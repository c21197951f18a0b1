package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Apply returns the command for provisioning or updating a cluster.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: auto-detect eksail.yaml)
//
// AWS credentials come from the default credential chain (environment,
// shared config, instance profile).
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the cluster",
		Long: `Create or update your EKS cluster.

This command provisions the network (VPC, subnets, internet and NAT
gateways, route tables), the IAM roles, the EKS control plane, and the
managed node groups. All operations are idempotent: re-running apply
after a change or a failure converges on the configured state.

If no config file is specified, it looks for eksail.yaml in the current
directory. Use 'eksail init' to create a configuration file.

Examples:
  # Create cluster using eksail.yaml in current directory
  eksail apply

  # Create cluster using specific config file
  eksail apply -c production.yaml

  # Re-apply after configuration changes
  eksail apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksail.yaml)")

	return cmd
}
