package main

import (
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type installCmd struct {
	targetFlags
	releaseFlags
	BinDir       string `kong:"name='bin-dir',type=path,help=${bin_dir_help}"`
	LocalBinary  string `kong:"name='local-binary',type=path,help=${local_binary_help}"`
	Tar          string `kong:"help=${tar_help}"`
	SkipChecksum bool   `kong:"name='skip-checksum',help=${skip_checksum_help}"`
}

func (c *installCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, &c.targetFlags, &c.releaseFlags)
	if err != nil {
		return err
	}
	setNonEmpty(&cfg.BinDir, c.BinDir)
	setNonEmpty(&cfg.LocalBinary, c.LocalBinary)
	setNonEmpty(&cfg.TarPath, c.Tar)
	if c.SkipChecksum {
		cfg.SkipChecksum = true
	}
	dest, err := installer.Install(ctx, cfg)
	if err != nil {
		return err
	}
	if dest == "" {
		fmt.Fprintln(ctx.stdout, "skipping install")
		return nil
	}
	fmt.Fprintf(ctx.stdout, "installed %s to %s\n", installer.ProductName, dest)
	return nil
}
