package main

import (
	"slices"

	"github.com/curlpit-sh/cli/internal/installer"
	"github.com/posener/complete"
)

func platformNames() []string {
	var names []string
	for _, target := range installer.SupportedTargets() {
		name := string(target.Platform)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func archNames() []string {
	var names []string
	for _, target := range installer.SupportedTargets() {
		name := string(target.Arch)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

var platformCompleter = complete.PredictFunc(func(complete.Args) []string {
	return platformNames()
})

var archCompleter = complete.PredictFunc(func(complete.Args) []string {
	return archNames()
})
