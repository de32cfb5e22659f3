package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Install runs the whole pipeline for cfg and returns the path of the
// installed binary. With SkipInstall set nothing happens and the returned
// path is empty. With LocalBinary set the network is never touched and the
// caller's file is installed in place of a release artifact.
func Install(ctx context.Context, cfg *Config) (_ string, errOut error) {
	if cfg.SkipInstall {
		return "", nil
	}
	if cfg.LocalBinary != "" {
		return installLocalBinary(cfg)
	}
	plan, err := ResolvePlan(ctx, cfg)
	if err != nil {
		return "", err
	}
	workspace, cleanup, err := newWorkspace()
	if err != nil {
		return "", err
	}
	defer cleanup()
	archivePath, unlock, err := fetchArtifact(ctx, cfg, plan, workspace)
	if err != nil {
		return "", err
	}
	defer deferErr(&errOut, unlock)
	err = extractArchive(ctx, archivePath, workspace, plan.Platform, cfg.TarPath)
	if err != nil {
		return "", err
	}
	binPath, err := discoverBinary(workspace, ProductName, archivePath)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(cfg.BinDir, plan.Target.BinName)
	err = installFromFile(binPath, dest, plan.Platform)
	if err != nil {
		return "", err
	}
	return dest, nil
}

// ResolvePlan resolves cfg's version and returns the plan a release install
// would execute. An unsupported platform/arch pair fails before the release
// api is consulted.
func ResolvePlan(ctx context.Context, cfg *Config) (*Plan, error) {
	_, _, _, err := resolveTarget(cfg.Platform, cfg.Arch)
	if err != nil {
		return nil, err
	}
	version, err := resolveVersion(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPlan(cfg.Platform, cfg.Arch, version, cfg.Repo, cfg.BaseURL)
}

// Download fetches and verifies cfg's release artifact into outDir without
// installing anything. It returns the artifact's path. The cache is not
// consulted.
func Download(ctx context.Context, cfg *Config, outDir string) (string, error) {
	plan, err := ResolvePlan(ctx, cfg)
	if err != nil {
		return "", err
	}
	archivePath := filepath.Join(outDir, plan.Target.ArtifactName)
	_, err = downloadFile(ctx, archivePath, plan.ArtifactURL)
	if err != nil {
		return "", err
	}
	if !cfg.SkipChecksum {
		want, err := fetchChecksum(ctx, plan.ChecksumURL)
		if err != nil {
			return "", err
		}
		err = verifyChecksum(archivePath, want)
		if err != nil {
			return "", err
		}
	}
	return archivePath, nil
}

// Extract downloads, verifies and extracts cfg's release artifact into
// outDir and returns the path of the discovered binary. The archive itself
// lands in a scratch directory that is removed before returning.
func Extract(ctx context.Context, cfg *Config, outDir string) (_ string, errOut error) {
	plan, err := ResolvePlan(ctx, cfg)
	if err != nil {
		return "", err
	}
	workspace, cleanup, err := newWorkspace()
	if err != nil {
		return "", err
	}
	defer cleanup()
	archivePath, unlock, err := fetchArtifact(ctx, cfg, plan, workspace)
	if err != nil {
		return "", err
	}
	defer deferErr(&errOut, unlock)
	err = extractArchive(ctx, archivePath, outDir, plan.Platform, cfg.TarPath)
	if err != nil {
		return "", err
	}
	return discoverBinary(outDir, ProductName, archivePath)
}

// fetchArtifact downloads and verifies plan's artifact, directly into
// destDir or through the configured cache. unlock must be called when the
// file is no longer needed.
func fetchArtifact(ctx context.Context, cfg *Config, plan *Plan, destDir string) (archivePath string, unlock func() error, _ error) {
	var err error
	if cfg.CacheDir != "" {
		archivePath, unlock, err = downloadCached(ctx, cfg.CacheDir, plan)
		if err != nil {
			return "", nil, err
		}
	} else {
		archivePath = filepath.Join(destDir, plan.Target.ArtifactName)
		unlock = func() error { return nil }
		_, err = downloadFile(ctx, archivePath, plan.ArtifactURL)
		if err != nil {
			return "", nil, err
		}
	}
	if !cfg.SkipChecksum {
		want, err := fetchChecksum(ctx, plan.ChecksumURL)
		if err != nil {
			return "", nil, errors.Join(err, unlock())
		}
		err = verifyChecksum(archivePath, want)
		if err != nil {
			return "", nil, errors.Join(err, unlock())
		}
	}
	return archivePath, unlock, nil
}

func installLocalBinary(cfg *Config) (string, error) {
	platform, err := ParsePlatform(cfg.Platform)
	if err != nil {
		return "", err
	}
	arch, err := ParseArch(cfg.Arch)
	if err != nil {
		return "", err
	}
	target, ok := LookupTarget(platform, arch)
	if !ok {
		return "", fmt.Errorf("unsupported platform/architecture combination: %s/%s", platform, arch)
	}
	dest := filepath.Join(cfg.BinDir, target.BinName)
	err = installLocal(cfg.LocalBinary, dest, platform)
	if err != nil {
		return "", err
	}
	return dest, nil
}
