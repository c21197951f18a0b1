package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"

	"github.com/imamik/eksail/internal/provisioning"
	"github.com/imamik/eksail/internal/provisioning/destroy"
)

// Provisioner interface for testing - matches provisioning.Phase.
type Provisioner interface {
	Provision(ctx *provisioning.Context) error
}

// Factory function variables for destroy - can be replaced in tests.
var (
	// newDestroyProvisioner creates the destroy phase.
	newDestroyProvisioner = func() Provisioner {
		return destroy.NewProvisioner()
	}

	// confirmDestroy asks the user to confirm the teardown.
	confirmDestroy = func(clusterName string) (bool, error) {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Destroy cluster %q and all its resources?", clusterName)).
			Description("This operation is irreversible.").
			Affirmative("Destroy").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		return confirmed, err
	}
)

// Destroy tears down the cluster and everything apply created for it.
// Resources are deleted in reverse dependency order and already-deleted
// resources are skipped, so an interrupted destroy can be re-run.
func Destroy(ctx context.Context, configPath string, skipConfirm bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !skipConfirm {
		confirmed, err := confirmDestroy(cfg.ClusterName)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			log.Println("Destroy canceled")
			return nil
		}
	}

	log.Printf("Destroying cluster: %s", cfg.ClusterName)

	infra, err := newInfraClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	pCtx := provisioning.NewContext(ctx, cfg, infra)

	if err := newDestroyProvisioner().Provision(pCtx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	log.Printf("Cluster %s destroyed", cfg.ClusterName)
	return nil
}
