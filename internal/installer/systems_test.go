package installer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePlatform(t *testing.T) {
	for input, want := range map[string]PlatformTag{
		"darwin":  PlatformDarwin,
		"Darwin":  PlatformDarwin,
		"macos":   PlatformDarwin,
		"osx":     PlatformDarwin,
		"linux":   PlatformLinux,
		"Linux":   PlatformLinux,
		" linux ": PlatformLinux,
		"windows": PlatformWindows,
		"win32":   PlatformWindows,
	} {
		got, ok := NormalizePlatform(input)
		require.True(t, ok, input)
		require.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "plan9", "freebsd", "osx2"} {
		_, ok := NormalizePlatform(input)
		require.False(t, ok, input)
	}
}

func TestNormalizeArch(t *testing.T) {
	for input, want := range map[string]ArchTag{
		"x64":     ArchX64,
		"x86_64":  ArchX64,
		"X86_64":  ArchX64,
		"amd64":   ArchX64,
		"arm64":   ArchArm64,
		"aarch64": ArchArm64,
	} {
		got, ok := NormalizeArch(input)
		require.True(t, ok, input)
		require.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "mips", "386", "armv7"} {
		_, ok := NormalizeArch(input)
		require.False(t, ok, input)
	}
}

func TestParsePlatform(t *testing.T) {
	got, err := ParsePlatform("macos")
	require.NoError(t, err)
	require.Equal(t, PlatformDarwin, got)

	_, err = ParsePlatform("plan9")
	require.EqualError(t, err, `unsupported platform "plan9"`)
}

func TestParseArch(t *testing.T) {
	got, err := ParseArch("aarch64")
	require.NoError(t, err)
	require.Equal(t, ArchArm64, got)

	_, err = ParseArch("mips")
	require.EqualError(t, err, `unsupported architecture "mips"`)
}
