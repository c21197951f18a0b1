// Package kubeconfig renders a kubeconfig for a provisioned cluster. The
// generated config authenticates through the aws CLI's exec credential
// plugin, so it stays valid as long as the caller's AWS credentials do.
package kubeconfig

import (
	"encoding/base64"
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"github.com/imamik/eksail/internal/provisioning"
)

// Options describe the cluster the kubeconfig points at.
type Options struct {
	ClusterName          string
	Region               string
	EndpointURL          string
	CertificateAuthority string // base64 encoded CA bundle
}

// FromState builds Options from a completed apply.
func FromState(state *provisioning.State, region string) (Options, error) {
	if state.Cluster == nil || state.Cluster.EndpointURL == "" {
		return Options{}, fmt.Errorf("cluster output is missing, apply first")
	}
	return Options{
		ClusterName:          state.Cluster.ClusterName,
		Region:               region,
		EndpointURL:          state.Cluster.EndpointURL,
		CertificateAuthority: state.Cluster.CertificateAuthority,
	}, nil
}

// Generate renders the kubeconfig as YAML bytes.
func Generate(opts Options) ([]byte, error) {
	if opts.EndpointURL == "" {
		return nil, fmt.Errorf("endpoint URL is required")
	}

	caData, err := base64.StdEncoding.DecodeString(opts.CertificateAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate authority: %w", err)
	}

	contextName := fmt.Sprintf("%s@%s", opts.ClusterName, opts.Region)

	config := clientcmdapi.NewConfig()
	config.Clusters[opts.ClusterName] = &clientcmdapi.Cluster{
		Server:                   opts.EndpointURL,
		CertificateAuthorityData: caData,
	}
	config.AuthInfos[opts.ClusterName] = &clientcmdapi.AuthInfo{
		Exec: &clientcmdapi.ExecConfig{
			APIVersion: "client.authentication.k8s.io/v1beta1",
			Command:    "aws",
			Args: []string{
				"eks", "get-token",
				"--cluster-name", opts.ClusterName,
				"--region", opts.Region,
				"--output", "json",
			},
			InteractiveMode: clientcmdapi.NeverExecInteractiveMode,
		},
	}
	config.Contexts[contextName] = &clientcmdapi.Context{
		Cluster:  opts.ClusterName,
		AuthInfo: opts.ClusterName,
	}
	config.CurrentContext = contextName

	data, err := clientcmd.Write(*config)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize kubeconfig: %w", err)
	}
	return data, nil
}

// WriteFile renders the kubeconfig and writes it to path with owner-only
// permissions.
func WriteFile(path string, opts Options) error {
	data, err := Generate(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}
	return nil
}
