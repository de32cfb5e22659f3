package main

import (
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type extractCmd struct {
	targetFlags
	releaseFlags
	Output       string `kong:"type=path,help=${output_help}"`
	Tar          string `kong:"help=${tar_help}"`
	SkipChecksum bool   `kong:"name='skip-checksum',help=${skip_checksum_help}"`
}

func (c *extractCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, &c.targetFlags, &c.releaseFlags)
	if err != nil {
		return err
	}
	setNonEmpty(&cfg.TarPath, c.Tar)
	if c.SkipChecksum {
		cfg.SkipChecksum = true
	}
	outDir := c.Output
	if outDir == "" {
		outDir = "."
	}
	pth, err := installer.Extract(ctx, cfg, outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.stdout, "extracted %s to %s\n", installer.ProductName, pth)
	return nil
}
