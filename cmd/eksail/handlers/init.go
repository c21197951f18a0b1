package handlers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imamik/eksail/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard
)

// Init runs the configuration wizard and writes the result to a file.
func Init(outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	cfg, err := runWizard()
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := writeFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("eksail - EKS clusters from a single YAML file")
	fmt.Println("=============================================")
	fmt.Println()
	fmt.Println("This wizard creates a cluster configuration with sensible defaults.")
	fmt.Println("The generated YAML is fully expanded and can be edited by hand.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:        %s\n", cfg.ClusterName)
	fmt.Printf("  Region:      %s\n", cfg.Region)
	fmt.Printf("  Version:     %s\n", cfg.Cluster.Version)
	fmt.Printf("  Network:     %s across %d zones\n", cfg.Network.IPv4CIDR, cfg.Network.ZoneCount)
	for name, group := range cfg.NodeGroups {
		fmt.Printf("  Node group:  %s (%d-%d x %s)\n",
			name, group.MinSize, group.MaxSize, group.InstanceTypes[0])
	}
	fmt.Println()

	fmt.Println("Next steps:")
	fmt.Printf("  eksail apply -c %s\n", outputPath)
}
