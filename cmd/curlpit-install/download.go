package main

import (
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type downloadCmd struct {
	targetFlags
	releaseFlags
	Output       string `kong:"type=path,help=${output_help}"`
	SkipChecksum bool   `kong:"name='skip-checksum',help=${skip_checksum_help}"`
}

func (c *downloadCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, &c.targetFlags, &c.releaseFlags)
	if err != nil {
		return err
	}
	if c.SkipChecksum {
		cfg.SkipChecksum = true
	}
	outDir := c.Output
	if outDir == "" {
		outDir = "."
	}
	pth, err := installer.Download(ctx, cfg, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.stdout, "downloaded %s to %s\n", installer.ProductName, pth)
	return nil
}
