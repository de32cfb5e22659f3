package main

import (
	"encoding/json"
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type planCmd struct {
	targetFlags
	releaseFlags
	JSON bool `kong:"help=${json_output_help}"`
}

func (c *planCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, &c.targetFlags, &c.releaseFlags)
	if err != nil {
		return err
	}
	plan, err := installer.ResolvePlan(ctx, cfg)
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.stdout, string(data))
		return nil
	}
	fmt.Fprintf(ctx.stdout, "platform: %s\n", plan.Platform)
	fmt.Fprintf(ctx.stdout, "arch: %s\n", plan.Arch)
	fmt.Fprintf(ctx.stdout, "tag: %s\n", plan.Tag)
	fmt.Fprintf(ctx.stdout, "artifact: %s\n", plan.Target.ArtifactName)
	fmt.Fprintf(ctx.stdout, "bin: %s\n", plan.Target.BinName)
	fmt.Fprintf(ctx.stdout, "artifact url: %s\n", plan.ArtifactURL)
	fmt.Fprintf(ctx.stdout, "checksum url: %s\n", plan.ChecksumURL)
	return nil
}
