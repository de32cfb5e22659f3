package installer

import (
	"fmt"
	"strings"
)

// checksumSuffix is appended to an artifact URL to locate its published
// digest.
const checksumSuffix = ".sha256"

// Plan is the resolved set of URLs and target metadata for one release
// install. It is fully determined by NewPlan's arguments.
type Plan struct {
	Platform    PlatformTag      `json:"platform"`
	Arch        ArchTag          `json:"arch"`
	Target      TargetDescriptor `json:"target"`
	Tag         string           `json:"tag"`
	ArtifactURL string           `json:"artifact_url"`
	ChecksumURL string           `json:"checksum_url"`
}

// resolveTarget normalizes a raw platform and arch pair and looks up its
// release target.
func resolveTarget(platform, arch string) (PlatformTag, ArchTag, TargetDescriptor, error) {
	platformTag, ok := NormalizePlatform(platform)
	if !ok {
		return "", "", TargetDescriptor{}, fmt.Errorf("unsupported platform/architecture combination: %s/%s", platform, arch)
	}
	archTag, ok := NormalizeArch(arch)
	if !ok {
		return "", "", TargetDescriptor{}, fmt.Errorf("unsupported platform/architecture combination: %s/%s", platform, arch)
	}
	target, ok := LookupTarget(platformTag, archTag)
	if !ok {
		return "", "", TargetDescriptor{}, fmt.Errorf("unsupported platform/architecture combination: %s/%s", platformTag, archTag)
	}
	return platformTag, archTag, target, nil
}

// NewPlan resolves the artifact and checksum URLs for one release install. It
// performs no I/O. platform and arch may be raw host-reported names, version
// may carry a leading v or not.
func NewPlan(platform, arch, version, repo, baseURL string) (*Plan, error) {
	platformTag, archTag, target, err := resolveTarget(platform, arch)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("no version specified")
	}
	if repo == "" {
		return nil, fmt.Errorf("no repository specified")
	}
	tag := version
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	artifactURL := fmt.Sprintf(
		"%s/%s/releases/download/%s/%s",
		strings.TrimSuffix(baseURL, "/"), repo, tag, target.ArtifactName,
	)
	return &Plan{
		Platform:    platformTag,
		Arch:        archTag,
		Target:      target,
		Tag:         tag,
		ArtifactURL: artifactURL,
		ChecksumURL: artifactURL + checksumSuffix,
	}, nil
}
