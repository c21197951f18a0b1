package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name apply looks for when no --config flag
// is given.
const DefaultConfigFile = "eksail.yaml"

// LoadFile reads the configuration from a YAML file, applies defaults,
// derives the subnet layout, and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses raw YAML configuration bytes.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.DeriveSubnets(); err != nil {
		return nil, fmt.Errorf("failed to derive subnets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		return "", fmt.Errorf("%s not found in current directory", DefaultConfigFile)
	}
	return DefaultConfigFile, nil
}

// applyDefaults fills unset fields with their documented defaults.
func (c *Config) applyDefaults() {
	if c.Network.Name == "" {
		c.Network.Name = c.ClusterName
	}
	if c.Network.IPv4CIDR == "" {
		c.Network.IPv4CIDR = DefaultIPv4CIDR
	}
	if c.Network.ZoneCount == 0 {
		c.Network.ZoneCount = DefaultZoneCount
	}
	if c.Network.NATMode == "" {
		c.Network.NATMode = DefaultNATMode
	}
	if c.Network.DNSHostnames == nil {
		c.Network.DNSHostnames = boolPtr(true)
	}

	if c.Cluster.Version == "" {
		c.Cluster.Version = DefaultVersion
	}
	if c.Cluster.PublicEndpoint == nil {
		c.Cluster.PublicEndpoint = boolPtr(true)
	}
	if c.Cluster.CreatorAdmin == nil {
		c.Cluster.CreatorAdmin = boolPtr(true)
	}

	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.KubeconfigPath == "" {
		c.KubeconfigPath = DefaultKubeconfigPath
	}

	for name, group := range c.NodeGroups {
		if group.CapacityType == "" {
			group.CapacityType = CapacityOnDemand
			c.NodeGroups[name] = group
		}
	}
}

func boolPtr(b bool) *bool { return &b }
