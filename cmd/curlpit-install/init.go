package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/curlpit-sh/cli/internal/configfile"
	"github.com/curlpit-sh/cli/internal/installer"
)

type initCmd struct {
	Yes bool `kong:"help=${init_yes_help}"`
}

func (c *initCmd) Run(ctx *runContext) error {
	filename := ctx.rootCmd.Configfile
	if filename == "" {
		if found := configfile.Find("."); found != "" {
			return fmt.Errorf("%s already exists", found)
		}
		filename = configfile.DefaultFilenames[0]
	} else if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("%s already exists", filename)
	}
	cfg := configfile.Config{
		Version: installer.VersionLatest,
		BinDir:  installer.DefaultBinDir(),
	}
	if !c.Yes {
		err := c.prompt(ctx, &cfg)
		if err != nil {
			return err
		}
	}
	return configfile.New(filename, cfg).Write(false)
}

// prompt fills cfg interactively. "auto" answers for platform and
// architecture leave the fields empty so installs follow the host.
func (c *initCmd) prompt(ctx *runContext, cfg *configfile.Config) error {
	questions := []*survey.Question{
		{
			Name: "platform",
			Prompt: &survey.Select{
				Message: "platform",
				Options: append([]string{"auto"}, platformNames()...),
				Default: "auto",
			},
		},
		{
			Name: "arch",
			Prompt: &survey.Select{
				Message: "architecture",
				Options: append([]string{"auto"}, archNames()...),
				Default: "auto",
			},
		},
		{
			Name: "version",
			Prompt: &survey.Input{
				Message: "version",
				Default: cfg.Version,
			},
		},
		{
			Name: "bindir",
			Prompt: &survey.Input{
				Message: "bin directory",
				Default: cfg.BinDir,
			},
		},
		{
			Name: "verify",
			Prompt: &survey.Confirm{
				Message: "verify checksums",
				Default: true,
			},
		},
	}
	answers := struct {
		Platform string
		Arch     string
		Version  string
		BinDir   string `survey:"bindir"`
		Verify   bool
	}{}
	err := survey.Ask(questions, &answers, survey.WithStdio(ctx.stdin, ctx.stdout, nil), survey.WithShowCursor(true))
	if err != nil {
		return err
	}
	if answers.Platform != "auto" {
		cfg.Platform = answers.Platform
	}
	if answers.Arch != "auto" {
		cfg.Arch = answers.Arch
	}
	cfg.Version = answers.Version
	cfg.BinDir = answers.BinDir
	cfg.SkipChecksum = !answers.Verify
	return nil
}
