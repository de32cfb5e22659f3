package configfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the set of install options a project can keep in a config file.
type Config struct {
	// Platform overrides the operating system the install targets.
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`

	// Arch overrides the cpu architecture the install targets.
	Arch string `json:"arch,omitempty" yaml:"arch,omitempty"`

	// Repo is the github repository releases are downloaded from, in owner/name form.
	Repo string `json:"repo,omitempty" yaml:"repo,omitempty"`

	// Version of curlpit to install. "latest" resolves the newest release.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// BaseURL is the host release download urls are built on.
	BaseURL string `json:"base-url,omitempty" yaml:"base-url,omitempty"`

	// BinDir is the directory the binary is installed to.
	BinDir string `json:"bin-dir,omitempty" yaml:"bin-dir,omitempty"`

	// LocalBinary is a pre-built binary to install instead of downloading a release.
	LocalBinary string `json:"local-binary,omitempty" yaml:"local-binary,omitempty"`

	// Tar overrides the tar command used for tarball extraction.
	Tar string `json:"tar,omitempty" yaml:"tar,omitempty"`

	// CacheDir is a directory where downloaded artifacts are kept for reuse.
	CacheDir string `json:"cache-dir,omitempty" yaml:"cache-dir,omitempty"`

	// SkipChecksum disables checksum verification.
	SkipChecksum bool `json:"skip-checksum,omitempty" yaml:"skip-checksum,omitempty"`
}

// ConfigFile is a file containing config
type ConfigFile struct {
	filename string
	Config
}

// New returns a new *ConfigFile
func New(filename string, config Config) *ConfigFile {
	return &ConfigFile{
		filename: filename,
		Config:   config,
	}
}

// DefaultFilenames are the names probed by Find, in order.
var DefaultFilenames = []string{
	".curlpit-install.yaml",
	".curlpit-install.yml",
	".curlpit-install.json",
}

// Find returns the first default config file present in dir. It returns an
// empty string when none exists.
func Find(dir string) string {
	for _, name := range DefaultFilenames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// LoadConfigFile loads a config file
func LoadConfigFile(ctx context.Context, filename string) (*ConfigFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	result := ConfigFile{
		filename: filename,
	}
	err = validateConfig(ctx, data)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, &result.Config)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Write writes a file to disk
func (c *ConfigFile) Write(outputJSON bool) error {
	var data []byte
	var err error
	if filepath.Ext(c.filename) == ".json" {
		outputJSON = true
	}
	switch outputJSON {
	case true:
		data, err = json.MarshalIndent(&c.Config, "", "  ")
	case false:
		data, err = yaml.Marshal(&c.Config)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(c.filename, data, 0o600)
}

// Filename returns the path this config was loaded from or will be written to.
func (c *ConfigFile) Filename() string {
	return c.filename
}
