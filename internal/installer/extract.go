package installer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"
)

// archiveFormat is the decompression strategy selected from an artifact's
// suffix.
type archiveFormat int

const (
	formatTarGz archiveFormat = iota
	formatTarXz
	formatZip
)

// formatForPath selects the archiveFormat for an artifact path.
func formatForPath(path string) (archiveFormat, error) {
	switch {
	case strings.HasSuffix(path, ".tar.gz"):
		return formatTarGz, nil
	case strings.HasSuffix(path, ".tar.xz"):
		return formatTarXz, nil
	case strings.HasSuffix(path, ".zip"):
		return formatZip, nil
	}
	return 0, fmt.Errorf("unsupported archive format: %s", filepath.Base(path))
}

// extractArchive unpacks archivePath into destDir. System tools do the work.
// When the default tool is missing from the path, extraction falls back to an
// in-process extractor. tarPath overrides which tar binary runs for tarballs
// and must exist when set.
func extractArchive(ctx context.Context, archivePath, destDir string, platform PlatformTag, tarPath string) error {
	format, err := formatForPath(archivePath)
	if err != nil {
		return err
	}
	err = os.MkdirAll(destDir, 0o750)
	if err != nil {
		return err
	}
	switch format {
	case formatTarGz:
		return runTar(ctx, tarPath, "-xzf", archivePath, destDir)
	case formatTarXz:
		return runTar(ctx, tarPath, "-xJf", archivePath, destDir)
	default:
		return runUnzip(ctx, archivePath, destDir, platform)
	}
}

func runTar(ctx context.Context, tarPath, flag, archivePath, destDir string) error {
	if tarPath == "" {
		if _, err := exec.LookPath("tar"); err != nil {
			return extractInProcess(archivePath, destDir)
		}
		tarPath = "tar"
	} else if _, err := exec.LookPath(tarPath); err != nil {
		return fmt.Errorf("tar command %q not found", tarPath)
	}
	return runTool(ctx, tarPath, flag, archivePath, "-C", destDir)
}

func runUnzip(ctx context.Context, archivePath, destDir string, platform PlatformTag) error {
	if platform == PlatformWindows {
		if _, err := exec.LookPath("powershell"); err != nil {
			return extractInProcess(archivePath, destDir)
		}
		command := fmt.Sprintf(
			"Expand-Archive -LiteralPath '%s' -DestinationPath '%s' -Force",
			archivePath, destDir,
		)
		return runTool(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", command)
	}
	if _, err := exec.LookPath("unzip"); err != nil {
		return extractInProcess(archivePath, destDir)
	}
	return runTool(ctx, "unzip", "-q", archivePath, "-d", destDir)
}

// runTool invokes an external extraction tool and waits for it to finish. A
// non-zero exit surfaces the tool's stderr in the returned error.
func runTool(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s %s: %v", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("%s %s: %v: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

func extractInProcess(archivePath, destDir string) error {
	return archiver.Unarchive(archivePath, destDir)
}

// maxDiscoveryDepth bounds how far discoverBinary descends into an extracted
// tree.
const maxDiscoveryDepth = 16

// discoverBinary walks dir depth-first and returns the first regular file
// whose name starts with prefix. Walk order is lexical, so repeated runs on
// the same tree find the same file. archivePath is never a candidate.
func discoverBinary(dir, prefix, archivePath string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if entry.IsDir() {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return relErr
			}
			if strings.Count(rel, string(filepath.Separator))+1 >= maxDiscoveryDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if path == archivePath {
			return nil
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no %s binary found in %s", prefix, filepath.Base(archivePath))
	}
	return found, nil
}
