package main

import (
	"encoding/json"
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type checkCmd struct {
	releaseFlags
	JSON bool `kong:"help=${json_output_help}"`
}

func (c *checkCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, nil, &c.releaseFlags)
	if err != nil {
		return err
	}
	statuses, err := installer.CheckRelease(ctx, cfg)
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.stdout, string(data))
	} else {
		for _, status := range statuses {
			if status.OK() {
				fmt.Fprintf(ctx.stdout, "%s ok\n", status.Target)
				continue
			}
			for _, missing := range status.Missing {
				fmt.Fprintf(ctx.stdout, "%s missing %s\n", status.Target, missing)
			}
		}
	}
	var missing int
	for _, status := range statuses {
		if !status.OK() {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d targets have missing artifacts", missing, len(statuses))
	}
	return nil
}
