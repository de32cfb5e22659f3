package installer

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// TargetStatus is one target's artifact availability for a release.
type TargetStatus struct {
	Target      Target   `json:"target"`
	ArtifactURL string   `json:"artifact_url"`
	Missing     []string `json:"missing,omitempty"`
}

// OK reports whether every probed url answered.
func (s *TargetStatus) OK() bool {
	return len(s.Missing) == 0
}

// CheckRelease probes the artifact and checksum urls of every supported
// target for cfg's release. Statuses come back in SupportedTargets order.
func CheckRelease(ctx context.Context, cfg *Config) ([]TargetStatus, error) {
	version, err := resolveVersion(ctx, cfg)
	if err != nil {
		return nil, err
	}
	allTargets := SupportedTargets()
	statuses := make([]TargetStatus, len(allTargets))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, target := range allTargets {
		i, target := i, target
		group.Go(func() error {
			plan, err := NewPlan(string(target.Platform), string(target.Arch), version, cfg.Repo, cfg.BaseURL)
			if err != nil {
				return err
			}
			status := TargetStatus{Target: target, ArtifactURL: plan.ArtifactURL}
			for _, probeURL := range []string{plan.ArtifactURL, plan.ChecksumURL} {
				ok, probeErr := urlExists(groupCtx, probeURL)
				if probeErr != nil {
					return probeErr
				}
				if !ok {
					status.Missing = append(status.Missing, probeURL)
				}
			}
			statuses[i] = status
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// urlExists issues a HEAD request, following the release host's redirects.
func urlExists(ctx context.Context, url string) (_ bool, errOut error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return false, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer deferErr(&errOut, resp.Body.Close)
	return resp.StatusCode < 300, nil
}
