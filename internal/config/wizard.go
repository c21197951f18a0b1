package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// regionOptions are the regions offered by the init wizard. The tool works
// with any region; this list only seeds the selector.
var regionOptions = []huh.Option[string]{
	huh.NewOption("Frankfurt (eu-central-1)", "eu-central-1"),
	huh.NewOption("Ireland (eu-west-1)", "eu-west-1"),
	huh.NewOption("N. Virginia (us-east-1)", "us-east-1"),
	huh.NewOption("Oregon (us-west-2)", "us-west-2"),
	huh.NewOption("Singapore (ap-southeast-1)", "ap-southeast-1"),
}

// instanceTypeOptions are the node instance types offered by the wizard.
var instanceTypeOptions = []huh.Option[string]{
	huh.NewOption("t3.medium - 2 vCPU, 4GB RAM", "t3.medium"),
	huh.NewOption("t3.large - 2 vCPU, 8GB RAM", "t3.large"),
	huh.NewOption("m5.large - 2 vCPU, 8GB RAM", "m5.large"),
	huh.NewOption("m5.xlarge - 4 vCPU, 16GB RAM", "m5.xlarge"),
	huh.NewOption("c5.large - 2 vCPU, 4GB RAM", "c5.large"),
}

// RunWizard interactively collects a minimal cluster configuration and
// returns it with defaults applied and validated.
func RunWizard() (*Config, error) {
	var (
		clusterName  = "example"
		region       = "eu-central-1"
		environment  = "dev"
		instanceType = DefaultInstanceType
		desiredStr   = "2"
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Value(&clusterName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("cluster name must not be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("AWS region").
				Options(regionOptions...).
				Value(&region),
			huh.NewInput().
				Title("Environment tag").
				Value(&environment),
			huh.NewSelect[string]().
				Title("Node instance type").
				Options(instanceTypeOptions...).
				Value(&instanceType),
			huh.NewInput().
				Title("Desired node count").
				Value(&desiredStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard aborted: %w", err)
	}

	desired, err := strconv.Atoi(desiredStr)
	if err != nil {
		return nil, fmt.Errorf("invalid desired node count: %w", err)
	}

	return NewDefault(clusterName, region, environment, instanceType, desired)
}

// NewDefault builds a validated configuration with one node group scaling
// between one node and five, matching the documented example.
func NewDefault(clusterName, region, environment, instanceType string, desired int) (*Config, error) {
	maxSize := desired
	if maxSize < 5 {
		maxSize = 5
	}

	cfg := &Config{
		ClusterName: clusterName,
		Region:      region,
		Environment: environment,
		NodeGroups: map[string]NodeGroupConfig{
			DefaultNodeGroupName: {
				InstanceTypes: []string{instanceType},
				MinSize:       1,
				MaxSize:       maxSize,
				DesiredSize:   desired,
			},
		},
	}

	cfg.applyDefaults()
	if err := cfg.DeriveSubnets(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
