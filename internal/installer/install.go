package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// installFromFile copies a resolved binary into place and marks it executable
// on non-windows targets. Re-running replaces the previous install.
func installFromFile(src, dest string, platform PlatformTag) error {
	err := os.MkdirAll(filepath.Dir(dest), 0o755)
	if err != nil {
		return err
	}
	err = copyFile(src, dest)
	if err != nil {
		return err
	}
	if platform == PlatformWindows {
		return nil
	}
	destStat, err := os.Stat(dest)
	if err != nil {
		return err
	}
	return os.Chmod(dest, addExec(destStat.Mode()))
}

// installLocal installs a caller-supplied binary, refusing anything that does
// not already exist as an executable.
func installLocal(src, dest string, platform PlatformTag) error {
	stat, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("local binary %q does not exist", src)
		}
		return err
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("local binary %q is not a regular file", src)
	}
	if !isExecutable(stat.Mode(), src, platform) {
		return fmt.Errorf("local binary %q is not executable", src)
	}
	return installFromFile(src, dest, platform)
}

// isExecutable reports whether a file can run on the target platform. Windows
// has no exec bit, so the .exe suffix stands in for it there.
func isExecutable(mode os.FileMode, path string, platform PlatformTag) bool {
	if platform == PlatformWindows {
		return strings.HasSuffix(path, ".exe") || mode.Perm()&0o100 != 0
	}
	return mode.Perm()&0o100 != 0
}

// addExec adds the executable bit corresponding to each readable bit in mode
func addExec(mode os.FileMode) os.FileMode {
	if mode&0o4 != 0 {
		mode |= 0o1
	}
	if mode&0o40 != 0 {
		mode |= 0o10
	}
	if mode&0o400 != 0 {
		mode |= 0o100
	}
	return mode
}
