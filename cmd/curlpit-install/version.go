package main

import "github.com/alecthomas/kong"

var version = "unknown"

// embeddedVersion is the version to install when no config sets one.
func embeddedVersion() string {
	if version == "unknown" {
		return ""
	}
	return version
}

type versionCmd struct{}

func (*versionCmd) Run(k *kong.Context) error {
	k.Printf("version %s", version)
	return nil
}
