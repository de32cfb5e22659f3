package installer

import (
	"context"
	"net/http"
	"testing"

	"github.com/curlpit-sh/cli/internal/testutil"
	"github.com/stretchr/testify/require"
)

func Test_stripVersionPrefix(t *testing.T) {
	for input, want := range map[string]string{
		"v0.2.7":      "0.2.7",
		"0.2.7":       "0.2.7",
		"v1.2.3-rc.1": "1.2.3-rc.1",
		"vnext":       "vnext",
		"version1":    "version1",
	} {
		require.Equal(t, want, stripVersionPrefix(input), input)
	}
}

func TestLatestRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves and strips the v", func(t *testing.T) {
		ts := testutil.ServeStrings(t, map[string]string{
			"/repos/curlpit-sh/cli/releases/latest": `{"tag_name": "v0.2.7"}`,
		})
		got, err := LatestRelease(ctx, "curlpit-sh/cli", "", ts.URL)
		require.NoError(t, err)
		require.Equal(t, "0.2.7", got)
	})

	t.Run("non-semver tag keeps its prefix", func(t *testing.T) {
		ts := testutil.ServeStrings(t, map[string]string{
			"/repos/curlpit-sh/cli/releases/latest": `{"tag_name": "vnext"}`,
		})
		got, err := LatestRelease(ctx, "curlpit-sh/cli", "", ts.URL)
		require.NoError(t, err)
		require.Equal(t, "vnext", got)
	})

	t.Run("empty tag", func(t *testing.T) {
		ts := testutil.ServeStrings(t, map[string]string{
			"/repos/curlpit-sh/cli/releases/latest": `{}`,
		})
		_, err := LatestRelease(ctx, "curlpit-sh/cli", "", ts.URL)
		require.EqualError(t, err, "curlpit-sh/cli has no published releases")
	})

	t.Run("bad repo", func(t *testing.T) {
		_, err := LatestRelease(ctx, "justaname", "", "http://127.0.0.1:1")
		require.EqualError(t, err, `repository "justaname" is not in owner/name form`)
	})

	t.Run("api error", func(t *testing.T) {
		ts := testutil.ServeErr(t, http.StatusNotFound)
		_, err := LatestRelease(ctx, "curlpit-sh/cli", "", ts.URL)
		require.Error(t, err)
	})
}

func Test_resolveVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("concrete version passes through", func(t *testing.T) {
		cfg := &Config{Version: "0.2.7", Repo: "curlpit-sh/cli"}
		got, err := resolveVersion(ctx, cfg)
		require.NoError(t, err)
		require.Equal(t, "0.2.7", got)
	})

	t.Run("v-prefixed version passes through", func(t *testing.T) {
		cfg := &Config{Version: "v0.2.7", Repo: "curlpit-sh/cli"}
		got, err := resolveVersion(ctx, cfg)
		require.NoError(t, err)
		require.Equal(t, "v0.2.7", got)
	})
}
