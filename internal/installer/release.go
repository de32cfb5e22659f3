package installer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v52/github"
	"golang.org/x/oauth2"
)

// VersionLatest marks a version that must be resolved against the release
// host before planning.
const VersionLatest = "latest"

// LatestRelease returns the version of repo's newest published release.
// token may be empty for anonymous lookups. apiBaseURL overrides the github
// api host when non-empty.
func LatestRelease(ctx context.Context, repo, token, apiBaseURL string) (string, error) {
	client, err := githubClient(ctx, token, apiBaseURL)
	if err != nil {
		return "", err
	}
	return latestReleaseVersion(ctx, client, repo)
}

// resolveVersion turns cfg.Version into a concrete version, querying the
// release host when it is "latest".
func resolveVersion(ctx context.Context, cfg *Config) (string, error) {
	if cfg.Version != "" && cfg.Version != VersionLatest {
		return cfg.Version, nil
	}
	return LatestRelease(ctx, cfg.Repo, cfg.GitHubToken, cfg.APIBaseURL)
}

func githubClient(ctx context.Context, token, apiBaseURL string) (*github.Client, error) {
	var client *github.Client
	if token == "" {
		client = github.NewClient(nil)
	} else {
		client = github.NewClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)))
	}
	if apiBaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(apiBaseURL, "/") + "/")
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
	}
	return client, nil
}

func latestReleaseVersion(ctx context.Context, client *github.Client, repo string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return "", fmt.Errorf("repository %q is not in owner/name form", repo)
	}
	release, _, err := client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		return "", err
	}
	tag := release.GetTagName()
	if tag == "" {
		return "", fmt.Errorf("%s has no published releases", repo)
	}
	return stripVersionPrefix(tag), nil
}

// stripVersionPrefix removes the leading v from tags like v1.2.3. Tags that
// do not parse as semver without it keep their prefix.
func stripVersionPrefix(tag string) string {
	if !strings.HasPrefix(tag, "v") {
		return tag
	}
	if _, err := semver.NewVersion(tag[1:]); err != nil {
		return tag
	}
	return tag[1:]
}
