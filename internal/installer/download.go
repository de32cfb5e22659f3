package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/curlpit-sh/cli/internal/cache"
)

// downloadFile downloads the file at url to targetPath. It returns the
// checksum of the file.
func downloadFile(ctx context.Context, targetPath, url string) (_ string, errOut error) {
	hasher := sha256.New()
	err := os.MkdirAll(filepath.Dir(targetPath), 0o750)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer deferErr(&errOut, resp.Body.Close)
	bodyReader := io.TeeReader(resp.Body, hasher)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed downloading %s: %s", url, resp.Status)
	}
	out, err := os.Create(targetPath)
	if err != nil {
		return "", err
	}
	defer deferErr(&errOut, out.Close)
	_, err = io.Copy(out, bodyReader)
	if err != nil {
		return "", err
	}
	sum := hex.EncodeToString(hasher.Sum(nil))
	return sum, nil
}

// fetchChecksum downloads the checksum file at url and returns its first
// whitespace-delimited field. Anything after the digest, usually a filename,
// is ignored.
func fetchChecksum(ctx context.Context, url string) (_ string, errOut error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer deferErr(&errOut, resp.Body.Close)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed downloading %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(body))
	if len(fields) == 0 {
		return "", fmt.Errorf("checksum file at %s is empty", url)
	}
	return fields[0], nil
}

// verifyChecksum compares the file's checksum to want. On mismatch the file
// is deleted so a later run cannot pick up a corrupt download.
func verifyChecksum(filename, want string) error {
	got, err := fileChecksum(filename)
	if err != nil {
		return err
	}
	if got != want {
		defer func() {
			delErr := os.RemoveAll(filename)
			if delErr != nil {
				log.Printf("Error deleting suspicious file at %q. Please delete it manually", filename)
			}
		}()
		return fmt.Errorf(`checksum mismatch in downloaded file %q
wanted: %s
got: %s`, filename, want, got)
	}
	return nil
}

func cacheKey(hashMaterial string) string {
	hasher := fnv.New64a()
	mustWriteToHash(hasher, []byte(hashMaterial))
	return hex.EncodeToString(hasher.Sum(nil))
}

// downloadCached downloads plan's artifact through a cache rooted at
// cacheRoot. The artifact's own checksum recorded at populate time guards
// reuse. The returned path is valid until unlock is called.
func downloadCached(ctx context.Context, cacheRoot string, plan *Plan) (cachedFile string, unlock func() error, _ error) {
	dlCache := &cache.Cache{Root: filepath.Join(cacheRoot, "downloads")}
	key := cacheKey(plan.ArtifactURL)
	dlFile := plan.Target.ArtifactName
	sumFile := dlFile + checksumSuffix

	validator := func(dir string) error {
		sum, err := os.ReadFile(filepath.Join(dir, sumFile))
		if err != nil {
			return err
		}
		ok, err := fileExistsWithChecksum(filepath.Join(dir, dlFile), strings.TrimSpace(string(sum)))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cached %s does not match its recorded checksum", dlFile)
		}
		return nil
	}
	populator := func(dir string) error {
		sum, err := downloadFile(ctx, filepath.Join(dir, dlFile), plan.ArtifactURL)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, sumFile), []byte(sum), 0o644)
	}

	dir, unlock, err := dlCache.Dir(key, validator, populator)
	if err != nil {
		return "", nil, err
	}
	return filepath.Join(dir, dlFile), unlock, nil
}
