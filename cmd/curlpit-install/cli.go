package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/curlpit-sh/cli/internal/configfile"
	"github.com/curlpit-sh/cli/internal/installer"
	"github.com/willabides/kongplete"
)

var kongVars = kong.Vars{
	"configfile_help":                 `file with install config. default is the first one of .curlpit-install.yaml, .curlpit-install.yml or .curlpit-install.json`,
	"cache_help":                      `directory downloads will be cached`,
	"platform_help":                   `target platform. one of darwin, linux or windows`,
	"arch_help":                       `target architecture. one of x64 or arm64`,
	"version_help":                    `version to install. "latest" resolves the newest release`,
	"repo_help":                       `github repository to download from, in owner/name form`,
	"base_url_help":                   `base url for release downloads`,
	"bin_dir_help":                    `directory the binary is installed to`,
	"local_binary_help":               `install this binary instead of downloading a release`,
	"tar_help":                        `tar command used for tarball extraction`,
	"skip_checksum_help":              `skip checksum verification`,
	"output_help":                     `directory to write to`,
	"install_help":                    `download, extract and install the curlpit binary`,
	"download_help":                   `download and verify a release artifact but don't extract or install it`,
	"extract_help":                    `download, verify and extract a release artifact but don't install it`,
	"plan_help":                       `show the urls an install would use`,
	"check_help":                      `check that a release has artifacts for every supported target`,
	"latest_help":                     `show the latest release version`,
	"init_help":                       `create a config file`,
	"init_yes_help":                   `accept defaults instead of prompting`,
	"config_format_help":              `formats the config file`,
	"schema_help":                     `print the json schema for config files`,
	"json_output_help":                `output json`,
	"config_install_completions_help": `install shell completions`,
}

type rootCmd struct {
	Configfile string `kong:"type=path,help=${configfile_help},env='CURLPIT_INSTALL_CONFIG'"`
	CacheDir   string `kong:"name=cache,type=path,help=${cache_help}"`
	Quiet      bool   `kong:"short='q',help='suppress output to stdout'"`

	Install  installCmd  `kong:"cmd,help=${install_help}"`
	Download downloadCmd `kong:"cmd,help=${download_help}"`
	Extract  extractCmd  `kong:"cmd,help=${extract_help}"`
	Plan     planCmd     `kong:"cmd,help=${plan_help}"`
	Check    checkCmd    `kong:"cmd,help=${check_help}"`
	Latest   latestCmd   `kong:"cmd,help=${latest_help}"`
	Init     initCmd     `kong:"cmd,help=${init_help}"`
	Format   fmtCmd      `kong:"cmd,help=${config_format_help}"`
	Schema   schemaCmd   `kong:"cmd,help=${schema_help}"`
	Cache    cacheCmd    `kong:"cmd,help='manage the download cache'"`

	Version            versionCmd                   `kong:"cmd,help='show curlpit-install version'"`
	InstallCompletions kongplete.InstallCompletions `kong:"cmd,help=${config_install_completions_help}"`
}

// targetFlags selects the platform and architecture an operation targets.
type targetFlags struct {
	Platform string `kong:"help=${platform_help},predictor=platform"`
	Arch     string `kong:"help=${arch_help},predictor=arch"`
}

// releaseFlags selects the release an operation works on.
type releaseFlags struct {
	Version    string `kong:"help=${version_help}"`
	Repo       string `kong:"help=${repo_help}"`
	BaseURL    string `kong:"name='base-url',help=${base_url_help}"`
	APIBaseURL string `kong:"hidden,name='api-base-url'"`
}

// buildConfig layers the install configuration. Defaults are overridden by the
// config file, then environment variables, then flags.
func buildConfig(ctx *runContext, target *targetFlags, release *releaseFlags) (*installer.Config, error) {
	cfg := installer.DefaultConfig(embeddedVersion())
	filename := ctx.rootCmd.Configfile
	if filename == "" {
		filename = configfile.Find(".")
	}
	if filename != "" {
		fileCfg, err := configfile.LoadConfigFile(ctx, filename)
		if err != nil {
			return nil, err
		}
		applyFileConfig(cfg, &fileCfg.Config)
	}
	cfg.ApplyEnv()
	if target != nil {
		setNonEmpty(&cfg.Platform, target.Platform)
		setNonEmpty(&cfg.Arch, target.Arch)
	}
	if release != nil {
		setNonEmpty(&cfg.Version, release.Version)
		setNonEmpty(&cfg.Repo, release.Repo)
		setNonEmpty(&cfg.BaseURL, release.BaseURL)
		setNonEmpty(&cfg.APIBaseURL, release.APIBaseURL)
	}
	setNonEmpty(&cfg.CacheDir, ctx.rootCmd.CacheDir)
	return cfg, nil
}

func applyFileConfig(cfg *installer.Config, file *configfile.Config) {
	setNonEmpty(&cfg.Platform, file.Platform)
	setNonEmpty(&cfg.Arch, file.Arch)
	setNonEmpty(&cfg.Repo, file.Repo)
	setNonEmpty(&cfg.Version, file.Version)
	setNonEmpty(&cfg.BaseURL, file.BaseURL)
	setNonEmpty(&cfg.BinDir, file.BinDir)
	setNonEmpty(&cfg.LocalBinary, file.LocalBinary)
	setNonEmpty(&cfg.TarPath, file.Tar)
	setNonEmpty(&cfg.CacheDir, file.CacheDir)
	if file.SkipChecksum {
		cfg.SkipChecksum = true
	}
}

func setNonEmpty(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

// fileWriter covers terminal.FileWriter. Needed for survey
type fileWriter interface {
	io.Writer
	Fd() uintptr
}

type SimpleFileWriter struct {
	io.Writer
}

func (s SimpleFileWriter) Fd() uintptr {
	return 0
}

// fileReader covers terminal.FileReader. Needed for survey
type fileReader interface {
	io.Reader
	Fd() uintptr
}

type runContext struct {
	parent  context.Context
	stdin   fileReader
	stdout  fileWriter
	stderr  fileWriter
	rootCmd *rootCmd
}

func newRunContext(ctx context.Context) *runContext {
	return &runContext{
		parent: ctx,
	}
}

func (r *runContext) Deadline() (deadline time.Time, ok bool) {
	return r.parent.Deadline()
}

func (r *runContext) Done() <-chan struct{} {
	return r.parent.Done()
}

func (r *runContext) Err() error {
	return r.parent.Err()
}

func (r *runContext) Value(key any) any {
	return r.parent.Value(key)
}

type runOpts struct {
	stdin       fileReader
	stdout      fileWriter
	stderr      fileWriter
	cmdName     string
	exitHandler func(int)
}

// Run let's light this candle
func Run(ctx context.Context, args []string, opts *runOpts) {
	if opts == nil {
		opts = &runOpts{}
	}
	var root rootCmd
	runCtx := newRunContext(ctx)
	runCtx.rootCmd = &root
	runCtx.stdin = opts.stdin
	if runCtx.stdin == nil {
		runCtx.stdin = os.Stdin
	}
	runCtx.stdout = opts.stdout
	if runCtx.stdout == nil {
		runCtx.stdout = os.Stdout
	}
	runCtx.stderr = opts.stderr
	if runCtx.stderr == nil {
		runCtx.stderr = os.Stderr
	}

	kongOptions := []kong.Option{
		kong.HelpOptions{Compact: true},
		kong.BindTo(runCtx, &runCtx),
		kongVars,
		kong.UsageOnError(),
		kong.Writers(runCtx.stdout, runCtx.stderr),
	}
	if opts.exitHandler != nil {
		kongOptions = append(kongOptions, kong.Exit(opts.exitHandler))
	}
	if opts.cmdName != "" {
		kongOptions = append(kongOptions, kong.Name(opts.cmdName))
	}

	parser := kong.Must(&root, kongOptions...)
	runCompletion(parser)

	kongCtx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	if root.Quiet {
		runCtx.stdout = SimpleFileWriter{io.Discard}
		kongCtx.Stdout = io.Discard
	}
	err = kongCtx.Run()
	kongCtx.FatalIfErrorf(err)
}

func runCompletion(parser *kong.Kong) {
	kongplete.Complete(parser,
		kongplete.WithPredictor("platform", platformCompleter),
		kongplete.WithPredictor("arch", archCompleter),
	)
}

type fmtCmd struct{}

func (c fmtCmd) Run(ctx *runContext) error {
	filename := ctx.rootCmd.Configfile
	if filename == "" {
		filename = configfile.Find(".")
	}
	if filename == "" {
		return fmt.Errorf("no config file found")
	}
	config, err := configfile.LoadConfigFile(ctx, filename)
	if err != nil {
		return err
	}
	return config.Write(false)
}
