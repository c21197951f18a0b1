package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Kubeconfig returns the kubeconfig command.
func Kubeconfig() *cobra.Command {
	var (
		configPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "kubeconfig",
		Short: "Write a kubeconfig for the cluster",
		Long: `Write a kubeconfig for the cluster.

The generated kubeconfig authenticates through 'aws eks get-token', so
it needs no embedded credentials and stays valid as long as your AWS
credentials do. Requires the aws CLI on PATH when used.

Example:
  eksail kubeconfig -c eksail.yaml -o kubeconfig
  KUBECONFIG=./kubeconfig kubectl get nodes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Kubeconfig(cmd.Context(), configPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksail.yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: from config)")

	return cmd
}
