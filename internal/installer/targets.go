package installer

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ProductName is the name of the binary this module installs.
const ProductName = "curlpit"

// Target is a supported platform/architecture pair.
type Target struct {
	Platform PlatformTag `json:"platform"`
	Arch     ArchTag     `json:"arch"`
}

func (t Target) String() string {
	return string(t.Platform) + "/" + string(t.Arch)
}

// TargetDescriptor names the release artifact published for a target and the
// binary expected inside it.
type TargetDescriptor struct {
	ArtifactName string `json:"artifact"`
	BinName      string `json:"bin"`
}

var targets = map[Target]TargetDescriptor{
	{PlatformLinux, ArchX64}:     {"curlpit-x86_64-unknown-linux-gnu.tar.xz", "curlpit"},
	{PlatformLinux, ArchArm64}:   {"curlpit-aarch64-unknown-linux-gnu.tar.xz", "curlpit"},
	{PlatformDarwin, ArchX64}:    {"curlpit-x86_64-apple-darwin.tar.gz", "curlpit"},
	{PlatformDarwin, ArchArm64}:  {"curlpit-aarch64-apple-darwin.tar.gz", "curlpit"},
	{PlatformWindows, ArchX64}:   {"curlpit-x86_64-pc-windows-msvc.zip", "curlpit.exe"},
	{PlatformWindows, ArchArm64}: {"curlpit-aarch64-pc-windows-msvc.zip", "curlpit.exe"},
}

// LookupTarget returns the release descriptor for a platform/architecture
// pair. ok is false for pairs with no published artifact.
func LookupTarget(platform PlatformTag, arch ArchTag) (_ TargetDescriptor, ok bool) {
	desc, ok := targets[Target{Platform: platform, Arch: arch}]
	return desc, ok
}

// SupportedTargets returns every pair with a published artifact, sorted by
// platform then architecture.
func SupportedTargets() []Target {
	result := maps.Keys(targets)
	slices.SortFunc(result, func(a, b Target) bool {
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		return a.Arch < b.Arch
	})
	return result
}
