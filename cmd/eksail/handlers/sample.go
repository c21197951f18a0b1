package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imamik/eksail/internal/k8s"
)

const sampleTimeout = 5 * time.Minute

// sampleDeployer deploys and watches the smoke-test workload.
type sampleDeployer interface {
	EnsureSampleWorkload(ctx context.Context) error
	WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error
}

// Factory function variables for sample - can be replaced in tests.
var (
	// newSampleDeployer creates a Kubernetes client from a kubeconfig file.
	newSampleDeployer = func(kubeconfigPath string) (sampleDeployer, error) {
		return k8s.NewClient(kubeconfigPath)
	}
)

// Sample deploys the nginx smoke-test workload and waits for it to become
// ready. A passing run confirms nodes can pull images through the NAT path
// and schedule pods.
func Sample(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !fileExists(cfg.KubeconfigPath) {
		return fmt.Errorf("kubeconfig %s not found, run 'eksail kubeconfig' first", cfg.KubeconfigPath)
	}

	deployer, err := newSampleDeployer(cfg.KubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	log.Printf("Deploying sample workload %s/%s...", k8s.SampleNamespace, k8s.SampleName)
	if err := deployer.EnsureSampleWorkload(ctx); err != nil {
		return err
	}

	log.Println("Waiting for the sample workload to become ready...")
	if err := deployer.WaitForDeployment(ctx, k8s.SampleNamespace, k8s.SampleName, sampleTimeout); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Sample workload is ready. Try it:\n")
	fmt.Printf("  KUBECONFIG=%s kubectl port-forward svc/%s 8080:80\n", cfg.KubeconfigPath, k8s.SampleName)
	return nil
}
