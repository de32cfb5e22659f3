package main

import (
	"fmt"

	"github.com/curlpit-sh/cli/internal/installer"
)

type latestCmd struct {
	Repo       string `kong:"help=${repo_help}"`
	APIBaseURL string `kong:"hidden,name='api-base-url'"`
}

func (c *latestCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, nil, nil)
	if err != nil {
		return err
	}
	setNonEmpty(&cfg.Repo, c.Repo)
	setNonEmpty(&cfg.APIBaseURL, c.APIBaseURL)
	latest, err := installer.LatestRelease(ctx, cfg.Repo, cfg.GitHubToken, cfg.APIBaseURL)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.stdout, latest)
	return nil
}
