// Package k8s wraps the Kubernetes API operations eksail performs after
// the control plane is up: node readiness checks, the sample workload,
// and addon installation.
package k8s

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

const pollInterval = 5 * time.Second

// Client wraps a Kubernetes clientset. The interface type keeps it
// testable with a fake clientset.
type Client struct {
	Clientset kubernetes.Interface
}

// NewClient creates a client from a kubeconfig file.
func NewClient(kubeconfigPath string) (*Client, error) {
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{Clientset: clientset}, nil
}

// NewClientFromBytes creates a client from kubeconfig bytes.
func NewClientFromBytes(kubeconfigData []byte) (*Client, error) {
	config, err := clientcmd.RESTConfigFromKubeConfig(kubeconfigData)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig from bytes: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{Clientset: clientset}, nil
}

// NodeStatus summarizes node readiness.
type NodeStatus struct {
	Ready int
	Total int
}

// Nodes returns the readiness summary of all nodes.
func (c *Client) Nodes(ctx context.Context) (NodeStatus, error) {
	nodes, err := c.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return NodeStatus{}, fmt.Errorf("failed to list nodes: %w", err)
	}

	status := NodeStatus{Total: len(nodes.Items)}
	for _, node := range nodes.Items {
		if isNodeReady(&node) {
			status.Ready++
		}
	}
	return status, nil
}

// WaitForNodesReady blocks until at least count nodes report Ready.
func (c *Client) WaitForNodesReady(ctx context.Context, count int, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			status, err := c.Nodes(ctx)
			if err != nil {
				return false, nil
			}
			return status.Ready >= count, nil
		})
	if err != nil {
		return fmt.Errorf("timed out waiting for %d ready nodes: %w", count, err)
	}
	return nil
}

func isNodeReady(node *corev1.Node) bool {
	for _, condition := range node.Status.Conditions {
		if condition.Type == corev1.NodeReady &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
