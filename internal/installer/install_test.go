package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_installFromFile(t *testing.T) {
	writeSrc := func(t *testing.T, mode os.FileMode) string {
		t.Helper()
		src := filepath.Join(t.TempDir(), "curlpit")
		require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho curlpit\n"), mode))
		return src
	}

	t.Run("creates the bin dir and adds exec", func(t *testing.T) {
		src := writeSrc(t, 0o644)
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		require.NoError(t, installFromFile(src, dest, PlatformLinux))
		stat, err := os.Stat(dest)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), stat.Mode().Perm())
	})

	t.Run("windows leaves the mode alone", func(t *testing.T) {
		src := writeSrc(t, 0o644)
		dest := filepath.Join(t.TempDir(), "bin", "curlpit.exe")
		require.NoError(t, installFromFile(src, dest, PlatformWindows))
		stat, err := os.Stat(dest)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o644), stat.Mode().Perm())
	})

	t.Run("replaces a previous install", func(t *testing.T) {
		src := writeSrc(t, 0o755)
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
		require.NoError(t, os.WriteFile(dest, []byte("old install"), 0o755))
		require.NoError(t, installFromFile(src, dest, PlatformDarwin))
		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		require.Equal(t, "#!/bin/sh\necho curlpit\n", string(content))
	})

	t.Run("missing source", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		require.Error(t, installFromFile(filepath.Join(t.TempDir(), "nope"), dest, PlatformLinux))
	})
}

func Test_installLocal(t *testing.T) {
	t.Run("installs an executable", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "curlpit")
		require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho local\n"), 0o755))
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		require.NoError(t, installLocal(src, dest, PlatformLinux))
		stat, err := os.Stat(dest)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), stat.Mode().Perm())
	})

	t.Run("missing source", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "curlpit")
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		err := installLocal(src, dest, PlatformLinux)
		require.EqualError(t, err, fmt.Sprintf("local binary %q does not exist", src))
	})

	t.Run("not executable", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "curlpit")
		require.NoError(t, os.WriteFile(src, []byte("data"), 0o644))
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		err := installLocal(src, dest, PlatformLinux)
		require.EqualError(t, err, fmt.Sprintf("local binary %q is not executable", src))
	})

	t.Run("directory source", func(t *testing.T) {
		src := t.TempDir()
		dest := filepath.Join(t.TempDir(), "bin", "curlpit")
		err := installLocal(src, dest, PlatformLinux)
		require.EqualError(t, err, fmt.Sprintf("local binary %q is not a regular file", src))
	})
}

func Test_isExecutable(t *testing.T) {
	require.True(t, isExecutable(0o755, "curlpit", PlatformLinux))
	require.False(t, isExecutable(0o644, "curlpit", PlatformLinux))
	require.True(t, isExecutable(0o644, "curlpit.exe", PlatformWindows))
	require.True(t, isExecutable(0o755, "curlpit", PlatformWindows))
	require.False(t, isExecutable(0o644, "curlpit", PlatformWindows))
}

func Test_addExec(t *testing.T) {
	for input, want := range map[os.FileMode]os.FileMode{
		0o444: 0o555,
		0o640: 0o750,
		0o600: 0o700,
		0o755: 0o755,
		0:     0,
	} {
		require.Equal(t, want, addExec(input), input.String())
	}
}
