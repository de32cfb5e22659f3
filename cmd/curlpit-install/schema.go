package main

import (
	"fmt"

	"github.com/curlpit-sh/cli/internal/configfile"
)

type schemaCmd struct{}

func (c *schemaCmd) Run(ctx *runContext) error {
	fmt.Fprint(ctx.stdout, configfile.Schema())
	return nil
}
