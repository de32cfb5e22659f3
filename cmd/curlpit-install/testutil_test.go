package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/curlpit-sh/cli/internal/configfile"
	"github.com/curlpit-sh/cli/internal/installer"
	"github.com/stretchr/testify/assert"
)

type cmdRunner struct {
	t          testing.TB
	configFile string
	cache      string
	tmpDir     string
	stdin      fileReader
}

func newCmdRunner(t testing.TB) *cmdRunner {
	t.Helper()
	dir := t.TempDir()
	runner := &cmdRunner{
		t:      t,
		cache:  filepath.Join(dir, "cache"),
		tmpDir: dir,
	}
	for _, name := range []string{
		"CURLPIT_INSTALL_CONFIG",
		installer.EnvPlatform,
		installer.EnvArch,
		installer.EnvRepo,
		installer.EnvVersion,
		installer.EnvBaseURL,
		installer.EnvSkipChecksum,
		installer.EnvSkipInstall,
		installer.EnvLocalBinary,
		installer.EnvBinDir,
		installer.EnvTarPath,
		installer.EnvCacheDir,
		installer.EnvGitHubToken,
	} {
		unsetEnv(t, name)
	}
	t.Setenv("HOME", dir)
	t.Cleanup(func() {
		// ignore the result because it fails on tests with invalid config files
		runner.run("cache", "clear")
	})
	return runner
}

func (c *cmdRunner) run(commandLine ...string) *runCmdResult {
	ctx := context.Background()
	c.t.Helper()
	result := runCmdResult{t: c.t}
	if c.configFile != "" {
		commandLine = append(commandLine, "--configfile", c.configFile)
	}
	if c.cache != "" {
		commandLine = append(commandLine, "--cache", c.cache)
	}
	Run(
		ctx,
		commandLine,
		&runOpts{
			stdin:   c.stdin,
			stdout:  SimpleFileWriter{&result.stdOut},
			stderr:  SimpleFileWriter{&result.stdErr},
			cmdName: "cmd",
			exitHandler: func(i int) {
				result.exited = true
				result.exitVal = i
			},
		},
	)
	return &result
}

// useConfigFile makes the runner pass --configfile without requiring the file
// to exist yet.
func (c *cmdRunner) useConfigFile() string {
	if c.configFile == "" {
		c.configFile = filepath.Join(c.tmpDir, configfile.DefaultFilenames[0])
	}
	return c.configFile
}

func (c *cmdRunner) writeConfigYaml(content string) {
	c.t.Helper()
	err := os.WriteFile(c.useConfigFile(), []byte(content), 0o600)
	assert.NoError(c.t, err)
}

func (c *cmdRunner) getConfigFile() *configfile.ConfigFile {
	c.t.Helper()
	cfgFile, err := configfile.LoadConfigFile(context.Background(), c.configFile)
	assert.NoError(c.t, err)
	return cfgFile
}

func (c *cmdRunner) assertConfigYaml(want string) {
	c.t.Helper()
	got, err := os.ReadFile(c.configFile)
	if !assert.NoError(c.t, err) {
		return
	}
	assert.Equal(c.t, strings.TrimSpace(want), strings.TrimSpace(string(got)))
}

type runCmdResult struct {
	t       testing.TB
	stdOut  bytes.Buffer
	stdErr  bytes.Buffer
	exited  bool
	exitVal int
}

func (r *runCmdResult) assertStdOut(want string) {
	r.t.Helper()
	assertEqualOrMatch(r.t, want, r.stdOut.String())
}

func (r *runCmdResult) assertStdErr(want string) {
	r.t.Helper()
	assertEqualOrMatch(r.t, want, r.stdErr.String())
}

// getInstalledBin returns the path an install reported writing to.
func (r *runCmdResult) getInstalledBin() string {
	r.t.Helper()
	return r.matchOutputPath(`(?m)^installed .+ to (.*)$`)
}

// getExtractedBin returns the path an extract reported discovering.
func (r *runCmdResult) getExtractedBin() string {
	r.t.Helper()
	return r.matchOutputPath(`(?m)^extracted .+ to (.*)$`)
}

func (r *runCmdResult) matchOutputPath(pattern string) string {
	r.t.Helper()
	re := regexp.MustCompile(pattern)
	matches := re.FindStringSubmatch(r.stdOut.String())
	if !assert.Len(r.t, matches, 2) {
		return ""
	}
	return matches[1]
}

type resultState struct {
	stdout string
	stderr string
	exit   int
}

func (r *runCmdResult) assertState(state resultState) {
	r.t.Helper()
	r.assertStdOut(state.stdout)
	r.assertStdErr(state.stderr)
	assert.Equal(r.t, state.exit, r.exitVal)
	assert.Equal(r.t, state.exit != 0, r.exited)
}

func assertEqualOrMatch(t testing.TB, want, got string) {
	t.Helper()
	if want == "" {
		assert.Equal(t, "", got)
		return
	}
	want = strings.TrimSpace(want)
	got = strings.TrimSpace(got)
	if want == got {
		return
	}
	re, err := regexp.Compile(want)
	if err != nil {
		assert.Equal(t, strings.TrimSpace(want), got)
		return
	}
	assert.Regexp(t, re, got)
}

func unsetEnv(t testing.TB, name string) {
	t.Helper()
	orig, existed := os.LookupEnv(name)
	assert.NoError(t, os.Unsetenv(name))
	t.Cleanup(func() {
		if existed {
			assert.NoError(t, os.Setenv(name, orig))
		}
	})
}

func skipWithoutCommands(t *testing.T, commands ...string) {
	t.Helper()
	for _, command := range commands {
		_, err := exec.LookPath(command)
		if err != nil {
			t.Skipf("requires %s in PATH", command)
		}
	}
}

func testInDir(t testing.TB, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if !assert.NoError(t, err) {
		return
	}
	t.Cleanup(func() {
		assert.NoError(t, os.Chdir(orig))
	})
	assert.NoError(t, os.Chdir(dir))
}
