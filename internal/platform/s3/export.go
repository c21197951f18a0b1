package s3

import (
	"context"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/imamik/eksail/internal/provisioning"
)

// Outputs is the YAML document written alongside the kubeconfig. It
// carries everything needed to consume the cluster from elsewhere.
type Outputs struct {
	ClusterName      string   `yaml:"cluster_name"`
	EndpointURL      string   `yaml:"endpoint_url"`
	NetworkID        string   `yaml:"network_id"`
	PrivateSubnetIDs []string `yaml:"private_subnet_ids"`
	Region           string   `yaml:"region"`

	// CreatedBy is the ARN of the identity that ran the apply. With
	// creator admin access enabled this is the identity that holds
	// initial cluster access.
	CreatedBy string `yaml:"created_by,omitempty"`
}

// Exporter uploads the export bundle to a bucket.
type Exporter struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewExporter creates an Exporter writing under bucket/prefix.
func NewExporter(store ObjectStore, bucket, prefix string) *Exporter {
	return &Exporter{store: store, bucket: bucket, prefix: prefix}
}

// OutputsFromState builds the Outputs document from a completed apply.
func OutputsFromState(state *provisioning.State, region string) (Outputs, error) {
	if state.Cluster == nil {
		return Outputs{}, fmt.Errorf("cluster output is missing, apply first")
	}
	if state.Network == nil {
		return Outputs{}, fmt.Errorf("network output is missing, apply first")
	}
	return Outputs{
		ClusterName:      state.Cluster.ClusterName,
		EndpointURL:      state.Cluster.EndpointURL,
		NetworkID:        state.Network.VPCID,
		PrivateSubnetIDs: state.Network.PrivateSubnetIDs,
		Region:           region,
	}, nil
}

// Export uploads outputs.yaml and the kubeconfig. The bucket must already
// exist, eksail does not create buckets.
func (e *Exporter) Export(ctx context.Context, outputs Outputs, kubeconfig []byte) error {
	exists, err := e.store.BucketExists(ctx, e.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("export.bucket %s does not exist", e.bucket)
	}

	data, err := yaml.Marshal(outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	if err := e.store.PutObject(ctx, e.bucket, e.key(outputs.ClusterName, "outputs.yaml"), data); err != nil {
		return err
	}
	if err := e.store.PutObject(ctx, e.bucket, e.key(outputs.ClusterName, "kubeconfig"), kubeconfig); err != nil {
		return err
	}
	return nil
}

func (e *Exporter) key(clusterName, name string) string {
	return path.Join(e.prefix, clusterName, name)
}
