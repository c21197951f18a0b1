package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/eksail/internal/kubeconfig"
)

// Kubeconfig queries the running cluster and writes a kubeconfig for it.
// Unlike apply, this works without provisioning state: the endpoint and
// certificate authority come from the EKS API.
func Kubeconfig(ctx context.Context, configPath, outputPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = cfg.KubeconfigPath
	}

	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	found, err := infra.GetCluster(ctx, cfg.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to query cluster: %w", err)
	}
	if found == nil {
		return fmt.Errorf("cluster %s does not exist, run 'eksail apply' first", cfg.ClusterName)
	}

	data, err := kubeconfig.Generate(kubeconfig.Options{
		ClusterName:          found.Name,
		Region:               cfg.Region,
		EndpointURL:          found.Endpoint,
		CertificateAuthority: found.CertificateAuthority,
	})
	if err != nil {
		return err
	}

	if err := writeFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}

	log.Printf("Wrote kubeconfig to %s", outputPath)
	return nil
}
