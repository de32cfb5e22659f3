package installer

import (
	"fmt"
	"strings"
)

// PlatformTag is a normalized operating system name.
type PlatformTag string

const (
	PlatformDarwin  PlatformTag = "darwin"
	PlatformLinux   PlatformTag = "linux"
	PlatformWindows PlatformTag = "windows"
)

// ArchTag is a normalized cpu architecture name.
type ArchTag string

const (
	ArchX64   ArchTag = "x64"
	ArchArm64 ArchTag = "arm64"
)

var platformAliases = map[string]PlatformTag{
	"darwin":  PlatformDarwin,
	"macos":   PlatformDarwin,
	"osx":     PlatformDarwin,
	"linux":   PlatformLinux,
	"windows": PlatformWindows,
	"win32":   PlatformWindows,
}

var archAliases = map[string]ArchTag{
	"x64":     ArchX64,
	"x86_64":  ArchX64,
	"amd64":   ArchX64,
	"arm64":   ArchArm64,
	"aarch64": ArchArm64,
}

// NormalizePlatform maps a reported operating system name to its tag. ok is
// false for names with no mapping.
func NormalizePlatform(platform string) (_ PlatformTag, ok bool) {
	tag, ok := platformAliases[strings.ToLower(strings.TrimSpace(platform))]
	return tag, ok
}

// NormalizeArch maps a reported cpu architecture name to its tag. ok is false
// for names with no mapping.
func NormalizeArch(arch string) (_ ArchTag, ok bool) {
	tag, ok := archAliases[strings.ToLower(strings.TrimSpace(arch))]
	return tag, ok
}

// ParsePlatform is NormalizePlatform for callers that cannot proceed with an
// unsupported value.
func ParsePlatform(platform string) (PlatformTag, error) {
	tag, ok := NormalizePlatform(platform)
	if !ok {
		return "", fmt.Errorf("unsupported platform %q", platform)
	}
	return tag, nil
}

// ParseArch is NormalizeArch for callers that cannot proceed with an
// unsupported value.
func ParseArch(arch string) (ArchTag, error) {
	tag, ok := NormalizeArch(arch)
	if !ok {
		return "", fmt.Errorf("unsupported architecture %q", arch)
	}
	return tag, nil
}
