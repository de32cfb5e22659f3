package main

import (
	"github.com/curlpit-sh/cli/internal/cache"
)

type cacheCmd struct {
	Clear cacheClearCmd `kong:"cmd,help='remove everything from the cache'"`
}

type cacheClearCmd struct{}

func (c *cacheClearCmd) Run(ctx *runContext) error {
	cfg, err := buildConfig(ctx, nil, nil)
	if err != nil {
		return err
	}
	if cfg.CacheDir == "" {
		return nil
	}
	return cache.RemoveRoot(cfg.CacheDir)
}
