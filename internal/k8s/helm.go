package k8s

import (
	"fmt"
	"log"
	"os"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
)

const (
	metricsServerRepo  = "https://kubernetes-sigs.github.io/metrics-server/"
	metricsServerChart = "metrics-server"
	helmTimeout        = 5 * time.Minute
)

// HelmClient installs the optional cluster addons from their upstream
// chart repositories.
type HelmClient struct {
	settings *cli.EnvSettings
}

// NewHelmClient creates a HelmClient with default environment settings.
func NewHelmClient() *HelmClient {
	return &HelmClient{settings: cli.New()}
}

// InstallMetricsServer installs or upgrades the metrics-server addon into
// kube-system. An empty version installs the latest chart.
func (h *HelmClient) InstallMetricsServer(kubeconfig []byte, version string) error {
	return h.installOrUpgrade(kubeconfig, "kube-system", metricsServerChart,
		metricsServerRepo, metricsServerChart, version, nil)
}

// installOrUpgrade installs a chart release, or upgrades it when a release
// with the same name already exists.
func (h *HelmClient) installOrUpgrade(kubeconfig []byte, namespace, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create rest config: %w", err)
	}

	actionConfig := new(action.Configuration)
	clientGetter := &restClientGetter{config: restConfig, namespace: namespace}

	if err := actionConfig.Init(clientGetter, namespace, os.Getenv("HELM_DRIVER"), log.Printf); err != nil {
		return fmt.Errorf("failed to init helm action config: %w", err)
	}

	cp := &action.ChartPathOptions{RepoURL: repoURL, Version: version}
	chartPath, err := cp.LocateChart(chartName, h.settings)
	if err != nil {
		return fmt.Errorf("failed to locate chart %s: %w", chartName, err)
	}

	chart, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load chart %s: %w", chartName, err)
	}

	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err == nil {
		upgrade := action.NewUpgrade(actionConfig)
		upgrade.Namespace = namespace
		upgrade.Wait = true
		upgrade.Timeout = helmTimeout
		if _, err := upgrade.Run(releaseName, chart, values); err != nil {
			return fmt.Errorf("helm upgrade %s failed: %w", releaseName, err)
		}
		return nil
	}

	install := action.NewInstall(actionConfig)
	install.Namespace = namespace
	install.ReleaseName = releaseName
	install.CreateNamespace = true
	install.Wait = true
	install.Timeout = helmTimeout
	if _, err := install.Run(chart, values); err != nil {
		return fmt.Errorf("helm install %s failed: %w", releaseName, err)
	}
	return nil
}

// restClientGetter implements the minimal RESTClientGetter Helm needs when
// driven from an in-memory rest.Config instead of a kubeconfig file.
type restClientGetter struct {
	config    *rest.Config
	namespace string
}

func (g *restClientGetter) ToRESTConfig() (*rest.Config, error) {
	return g.config, nil
}

func (g *restClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(g.config)
	if err != nil {
		return nil, err
	}
	return memory.NewMemCacheClient(discoveryClient), nil
}

func (g *restClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	discoveryClient, err := g.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	return restmapper.NewDeferredDiscoveryRESTMapper(discoveryClient), nil
}

func (g *restClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return clientcmd.NewDefaultClientConfig(*clientcmdapi.NewConfig(), &clientcmd.ConfigOverrides{})
}
