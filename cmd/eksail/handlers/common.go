// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework. Dependencies are
// bound through package-level factory variables that tests replace.
package handlers

import (
	"context"
	"os"

	"github.com/imamik/eksail/internal/config"
	"github.com/imamik/eksail/internal/platform/aws"
)

// Factory function variables shared across handlers - can be replaced in
// tests for dependency injection.
var (
	// newInfraClient creates the AWS infrastructure client.
	newInfraClient = func(ctx context.Context, region string) (aws.InfrastructureManager, error) {
		return aws.NewRealClient(ctx, region)
	}

	// loadConfigFile loads config from a file.
	loadConfigFile = config.LoadFile

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// writeFile writes data to a file.
	writeFile = os.WriteFile
)

// loadConfig resolves the config path (auto-detect when empty) and loads
// the configuration.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = path
	}
	return loadConfigFile(configPath)
}
