package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/k8s"
	"github.com/imamik/eksail/internal/kubeconfig"
	"github.com/imamik/eksail/internal/platform/aws"
	"github.com/imamik/eksail/internal/platform/s3"
	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/provisioning/cluster"
	"github.com/imamik/eksail/internal/provisioning/infrastructure"
	"github.com/imamik/eksail/internal/ui"
)

// addonInstaller installs cluster addons from their chart repositories.
type addonInstaller interface {
	InstallMetricsServer(kubeconfig []byte, version string) error
}

// Factory function variables for apply - can be replaced in tests.
var (
	// applyPhases builds the provisioning pipeline.
	applyPhases = func() []provisioning.Phase {
		return []provisioning.Phase{
			provisioning.NewPreflight(),
			infrastructure.NewProvisioner(),
			cluster.NewProvisioner(),
		}
	}

	// runWithUI drives the pipeline behind the progress dashboard.
	runWithUI = ui.Run

	// newAddonInstaller creates the Helm-backed addon installer.
	newAddonInstaller = func() addonInstaller {
		return k8s.NewHelmClient()
	}

	// newObjectStore creates the S3 client for the export bundle.
	newObjectStore = func(ctx context.Context, region string) (s3.ObjectStore, error) {
		return s3.NewClient(ctx, region)
	}
)

// Apply provisions the cluster described by the configuration file.
//
// The workflow:
//  1. Load and validate the configuration (all violations fail before any
//     AWS call, naming the offending field)
//  2. Run the provisioning pipeline: preflight, network, cluster
//  3. Write the kubeconfig and, when remote access was requested, the
//     node SSH private key
//  4. Install configured addons
//  5. Upload the export bundle when export is enabled
//
// Every provisioning operation is idempotent, so a failed apply can be
// re-run and converges on the configured state.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Applying configuration for cluster: %s", cfg.ClusterName)

	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	pCtx := provisioning.NewContext(ctx, cfg, infra)
	phases := applyPhases()

	names := make([]string, len(phases))
	for i, phase := range phases {
		names[i] = phase.Name()
	}

	err = runWithUI("apply", cfg.ClusterName, cfg.Region, names, func(obs provisioning.Observer) error {
		pCtx.Observer = obs
		return provisioning.RunPhases(pCtx, phases)
	})
	if err != nil {
		return err
	}

	kubeconfigData, err := writeAccessFiles(cfg, pCtx.State)
	if err != nil {
		return err
	}

	if err := installAddons(cfg, kubeconfigData); err != nil {
		return err
	}

	if err := exportBundle(ctx, cfg, infra, pCtx.State, kubeconfigData); err != nil {
		return err
	}

	printOutputs(cfg, pCtx.State)
	return nil
}

// writeAccessFiles writes the kubeconfig and the node SSH key, and returns
// the kubeconfig bytes for later use.
func writeAccessFiles(cfg *config.Config, state *provisioning.State) ([]byte, error) {
	opts, err := kubeconfig.FromState(state, cfg.Region)
	if err != nil {
		return nil, err
	}

	data, err := kubeconfig.Generate(opts)
	if err != nil {
		return nil, err
	}
	if err := writeFile(cfg.KubeconfigPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write kubeconfig: %w", err)
	}
	log.Printf("Wrote kubeconfig to %s", cfg.KubeconfigPath)

	if len(state.SSHPrivateKey) > 0 {
		keyPath := cfg.ClusterName + "-node-key.pem"
		if err := writeFile(keyPath, state.SSHPrivateKey, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write node SSH key: %w", err)
		}
		log.Printf("Wrote node SSH key to %s", keyPath)
	}

	return data, nil
}

// installAddons installs the enabled addons through Helm.
func installAddons(cfg *config.Config, kubeconfigData []byte) error {
	if !cfg.Addons.MetricsServer.Enabled {
		return nil
	}

	log.Println("Installing metrics-server...")
	installer := newAddonInstaller()
	if err := installer.InstallMetricsServer(kubeconfigData, cfg.Addons.MetricsServer.Version); err != nil {
		return fmt.Errorf("failed to install metrics-server: %w", err)
	}
	return nil
}

// exportBundle uploads outputs and kubeconfig to S3 when export is enabled.
// The outputs document records the applying identity so consumers know who
// holds the initial cluster access.
func exportBundle(ctx context.Context, cfg *config.Config, infra aws.InfrastructureManager, state *provisioning.State, kubeconfigData []byte) error {
	if !cfg.Export.Enabled {
		return nil
	}

	store, err := newObjectStore(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	outputs, err := s3.OutputsFromState(state, cfg.Region)
	if err != nil {
		return err
	}

	_, arn, err := infra.CallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	outputs.CreatedBy = arn

	exporter := s3.NewExporter(store, cfg.Export.Bucket, cfg.Export.Prefix)
	if err := exporter.Export(ctx, outputs, kubeconfigData); err != nil {
		return fmt.Errorf("failed to upload export bundle: %w", err)
	}
	log.Printf("Uploaded export bundle to s3://%s/%s", cfg.Export.Bucket, cfg.Export.Prefix)
	return nil
}

// printOutputs prints the apply outputs.
func printOutputs(cfg *config.Config, state *provisioning.State) {
	fmt.Println()
	fmt.Printf("Cluster %s is ready.\n", cfg.ClusterName)
	fmt.Println()
	fmt.Printf("  cluster_name: %s\n", state.Cluster.ClusterName)
	fmt.Printf("  endpoint_url: %s\n", state.Cluster.EndpointURL)
	fmt.Printf("  network_id:   %s\n", state.Network.VPCID)
	fmt.Println()
	fmt.Printf("  KUBECONFIG=%s kubectl get nodes\n", cfg.KubeconfigPath)
}
