package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/imamik/eksail/internal/util/ptr"
)

const (
	// SampleName is the name of the smoke-test deployment and service.
	SampleName = "eksail-sample"

	// SampleNamespace is where the smoke-test workload lives.
	SampleNamespace = "default"

	sampleImage    = "public.ecr.aws/nginx/nginx:stable"
	sampleReplicas = 2
	samplePort     = 80
)

// EnsureSampleWorkload deploys a small nginx deployment with a ClusterIP
// service in front of it. Re-running updates the existing objects, so the
// operation can be repeated safely.
func (c *Client) EnsureSampleWorkload(ctx context.Context) error {
	labels := map[string]string{"app.kubernetes.io/name": SampleName}

	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      SampleName,
			Namespace: SampleNamespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.Int32(sampleReplicas),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  "nginx",
						Image: sampleImage,
						Ports: []corev1.ContainerPort{{ContainerPort: samplePort}},
					}},
				},
			},
		},
	}

	deployments := c.Clientset.AppsV1().Deployments(SampleNamespace)
	if _, err := deployments.Create(ctx, deployment, metav1.CreateOptions{}); err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create sample deployment: %w", err)
		}
		if _, err := deployments.Update(ctx, deployment, metav1.UpdateOptions{}); err != nil {
			return fmt.Errorf("failed to update sample deployment: %w", err)
		}
	}

	service := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      SampleName,
			Namespace: SampleNamespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Type:     corev1.ServiceTypeClusterIP,
			Ports: []corev1.ServicePort{{
				Port:       samplePort,
				TargetPort: intstr.FromInt32(samplePort),
			}},
		},
	}

	services := c.Clientset.CoreV1().Services(SampleNamespace)
	if _, err := services.Create(ctx, service, metav1.CreateOptions{}); err != nil {
		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("failed to create sample service: %w", err)
		}
		// Service ClusterIP is immutable, leave the existing one alone.
	}

	return nil
}

// WaitForDeployment blocks until the deployment reports all replicas
// available.
func (c *Client) WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			deployment, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
			if err != nil {
				return false, nil
			}
			return isDeploymentReady(deployment), nil
		})
	if err != nil {
		return fmt.Errorf("timed out waiting for deployment %s/%s: %w", namespace, name, err)
	}
	return nil
}

func isDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Spec.Replicas == nil {
		return false
	}
	want := *deployment.Spec.Replicas
	if deployment.Status.UpdatedReplicas != want ||
		deployment.Status.AvailableReplicas != want {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
