package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksail/cmd/eksail/handlers"
)

// Init returns the command for interactively creating a cluster
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "eksail.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a cluster configuration",
		Long: `Interactively create a cluster configuration file.

This command guides you through configuring your EKS cluster step by
step. It will ask about:

  - Cluster name and AWS region
  - Environment tag
  - Node instance type
  - Desired node count

The network layout (VPC base block and per-zone subnets) is derived
automatically and written out explicitly, so the generated YAML can be
edited by hand afterwards.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "eksail.yaml", "Output file path")

	return cmd
}
