package main

import (
	"context"
	"fmt"
	"os"

	"github.com/curlpit-sh/cli/internal/installer"
)

var version = "unknown"

// embeddedVersion is the version to install when the environment sets none.
func embeddedVersion() string {
	if version == "unknown" {
		return ""
	}
	return version
}

// main installs the curlpit binary configured entirely through
// CURLPIT_INSTALL_* environment variables. It is meant to run
// non-interactively from package manager install hooks.
func main() {
	cfg := installer.ConfigFromEnv(embeddedVersion())
	if cfg.SkipInstall {
		fmt.Println("skipping install")
		return
	}
	dest, err := installer.Install(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error installing %s: %v\n", installer.ProductName, err)
		os.Exit(1)
	}
	fmt.Printf("installed %s to %s\n", installer.ProductName, dest)
}
