package installer

import (
	"log"
	"os"
)

// workspacePrefix names scratch directories so a human browsing the temp dir
// can tell whose they are.
const workspacePrefix = "curlpit-install-"

// newWorkspace creates the scratch directory for one installation attempt.
// cleanup removes it and only logs failures, so a bad cleanup can never mask
// the attempt's real outcome.
func newWorkspace() (dir string, cleanup func(), _ error) {
	dir, err := os.MkdirTemp("", workspacePrefix)
	if err != nil {
		return "", nil, err
	}
	cleanup = func() {
		rmErr := os.RemoveAll(dir)
		if rmErr != nil {
			log.Printf("error removing temporary directory %q: %v", dir, rmErr)
		}
	}
	return dir, cleanup, nil
}
