package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/eksail/internal/k8s"
)

// nodeReporter reports node readiness through the Kubernetes API.
type nodeReporter interface {
	Nodes(ctx context.Context) (k8s.NodeStatus, error)
}

// Factory function variables for status - can be replaced in tests.
var (
	// newNodeReporter creates a Kubernetes client from a kubeconfig file.
	newNodeReporter = func(kubeconfigPath string) (nodeReporter, error) {
		return k8s.NewClient(kubeconfigPath)
	}
)

// Status prints the current state of the cluster: the calling identity,
// control plane, node groups, and (when a kubeconfig is available) node
// readiness. It is read-only.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	account, arn, err := infra.CallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	fmt.Printf("Cluster:  %s (%s)\n", cfg.ClusterName, cfg.Region)
	fmt.Printf("Identity: %s (account %s)\n\n", arn, account)

	found, err := infra.GetCluster(ctx, cfg.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to query cluster: %w", err)
	}
	if found == nil {
		fmt.Println("Control plane: not found (run 'eksail apply')")
		return nil
	}

	fmt.Println("Control plane:")
	fmt.Printf("  status:   %s\n", found.Status)
	fmt.Printf("  version:  %s\n", found.Version)
	fmt.Printf("  endpoint: %s\n", found.Endpoint)

	groups, err := infra.ListNodeGroups(ctx, cfg.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to list node groups: %w", err)
	}
	fmt.Printf("\nNode groups (%d):\n", len(groups))
	for _, name := range groups {
		fmt.Printf("  %s\n", name)
	}

	printNodeReadiness(ctx, cfg.KubeconfigPath)
	return nil
}

// printNodeReadiness reports ready nodes when a kubeconfig is available.
// Failures here are informational, not fatal: the AWS view above is the
// authoritative status.
func printNodeReadiness(ctx context.Context, kubeconfigPath string) {
	if !fileExists(kubeconfigPath) {
		return
	}

	reporter, err := newNodeReporter(kubeconfigPath)
	if err != nil {
		fmt.Printf("\nNodes: unavailable (%v)\n", err)
		return
	}

	status, err := reporter.Nodes(ctx)
	if err != nil {
		fmt.Printf("\nNodes: unavailable (%v)\n", err)
		return
	}
	fmt.Printf("\nNodes: %d/%d ready\n", status.Ready, status.Total)
}
