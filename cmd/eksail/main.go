// Package main is the entry point for the eksail CLI.
//
// eksail is a command-line tool for provisioning Amazon EKS clusters with
// their full network stack (VPC, subnets, NAT path) from a single YAML
// file. It provisions idempotently: re-running apply converges on the
// configured state instead of duplicating resources.
//
// Commands: init, apply, destroy, status, kubeconfig, sample.
//
// For detailed usage information, run:
//
//	eksail --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/eksail/cmd/eksail/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
