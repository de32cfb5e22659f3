package installer

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// DefaultRepo is the repository curlpit releases are published from.
	DefaultRepo = "curlpit-sh/cli"

	// DefaultBaseURL is the host release download URLs are built on.
	DefaultBaseURL = "https://github.com"
)

// Environment variables recognized by ConfigFromEnv and the cli.
const (
	EnvPlatform     = "CURLPIT_INSTALL_PLATFORM"
	EnvArch         = "CURLPIT_INSTALL_ARCH"
	EnvRepo         = "CURLPIT_INSTALL_REPO"
	EnvVersion      = "CURLPIT_INSTALL_VERSION"
	EnvBaseURL      = "CURLPIT_INSTALL_BASE_URL"
	EnvSkipChecksum = "CURLPIT_INSTALL_SKIP_CHECKSUM"
	EnvSkipInstall  = "CURLPIT_INSTALL_SKIP"
	EnvLocalBinary  = "CURLPIT_INSTALL_LOCAL_BINARY"
	EnvBinDir       = "CURLPIT_INSTALL_BIN_DIR"
	EnvTarPath      = "CURLPIT_INSTALL_TAR"
	EnvCacheDir     = "CURLPIT_INSTALL_CACHE_DIR"
	EnvGitHubToken  = "GITHUB_TOKEN"
)

// Config carries every input the install pipeline reads. Front-ends build one
// at startup and nothing downstream reads process state on its own.
type Config struct {
	// Platform and Arch are raw names as reported by the host or an
	// override. They are normalized during planning.
	Platform string
	Arch     string

	// Repo is the github repository releases are downloaded from, in
	// owner/name form.
	Repo string

	// Version to install, with or without a leading v. "latest" resolves
	// against the repository's newest release.
	Version string

	// BaseURL is the host release download URLs are built on.
	BaseURL string

	// APIBaseURL overrides the release api host. Empty means the public
	// github api.
	APIBaseURL string

	// BinDir is the directory the binary is installed to.
	BinDir string

	// LocalBinary, when set, is installed as-is and nothing is downloaded.
	LocalBinary string

	// TarPath overrides the tar command used for tarball extraction.
	TarPath string

	// CacheDir, when set, keeps downloaded artifacts for reuse.
	CacheDir string

	// GitHubToken authenticates release lookups when set.
	GitHubToken string

	// SkipChecksum disables checksum verification.
	SkipChecksum bool

	// SkipInstall makes the whole run a no-op.
	SkipInstall bool
}

// DefaultBinDir is where installs land when nothing overrides it.
func DefaultBinDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "bin")
	}
	return filepath.Join(home, ".curlpit", "bin")
}

// DefaultConfig returns a Config for the host system installing
// embeddedVersion. An empty embeddedVersion means the latest release.
func DefaultConfig(embeddedVersion string) *Config {
	version := embeddedVersion
	if version == "" {
		version = VersionLatest
	}
	return &Config{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		Repo:     DefaultRepo,
		Version:  version,
		BaseURL:  DefaultBaseURL,
		BinDir:   DefaultBinDir(),
	}
}

// ConfigFromEnv is DefaultConfig with CURLPIT_INSTALL_* overrides applied. It
// is the post-install hook's whole configuration surface.
func ConfigFromEnv(embeddedVersion string) *Config {
	cfg := DefaultConfig(embeddedVersion)
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays CURLPIT_INSTALL_* variables onto c. Unset variables leave
// the current values alone.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Platform, EnvPlatform)
	setFromEnv(&c.Arch, EnvArch)
	setFromEnv(&c.Repo, EnvRepo)
	setFromEnv(&c.Version, EnvVersion)
	setFromEnv(&c.BaseURL, EnvBaseURL)
	setFromEnv(&c.BinDir, EnvBinDir)
	setFromEnv(&c.LocalBinary, EnvLocalBinary)
	setFromEnv(&c.TarPath, EnvTarPath)
	setFromEnv(&c.CacheDir, EnvCacheDir)
	setFromEnv(&c.GitHubToken, EnvGitHubToken)
	setBoolFromEnv(&c.SkipChecksum, EnvSkipChecksum)
	setBoolFromEnv(&c.SkipInstall, EnvSkipInstall)
}

func setFromEnv(dst *string, name string) {
	if val := os.Getenv(name); val != "" {
		*dst = val
	}
}

// setBoolFromEnv treats any value except "0" and "false" as true. An empty or
// unset variable leaves dst alone.
func setBoolFromEnv(dst *bool, name string) {
	val := strings.ToLower(os.Getenv(name))
	if val == "" {
		return
	}
	*dst = val != "0" && val != "false"
}
