package sitetext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/sitetext"
)

func TestNormalize_strips_trailing_slash(t *testing.T) {
	t.Parallel()

	withSlash, err := sitetext.Normalize("https://x.com/a/")
	require.NoError(t, err)
	withoutSlash, err := sitetext.Normalize("https://x.com/a")
	require.NoError(t, err)

	assert.Equal(t, withoutSlash, withSlash)
	assert.Equal(t, "https://x.com/a", withSlash)
}

func TestNormalize_is_idempotent(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/",
		"https://example.com/docs/page/",
		"https://example.com/search?q=go&page=2",
		"http://example.com/a/b/c",
	}

	for _, raw := range urls {
		once, err := sitetext.Normalize(raw)
		require.NoError(t, err, raw)
		twice, err := sitetext.Normalize(once)
		require.NoError(t, err, raw)
		assert.Equal(t, once, twice, raw)
	}
}

func TestNormalize_strips_fragment_and_preserves_query(t *testing.T) {
	t.Parallel()

	got, err := sitetext.Normalize("https://example.com/docs?lang=fr#section-2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs?lang=fr", got)
}

func TestNormalize_root_URL(t *testing.T) {
	t.Parallel()

	got, err := sitetext.Normalize("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)
}

func TestNormalize_rejects_invalid_URLs(t *testing.T) {
	t.Parallel()

	tests := []string{
		"mailto:foo@bar.com",
		"ftp://example.com/file",
		"/relative/path",
		"",
	}

	for _, raw := range tests {
		_, err := sitetext.Normalize(raw)
		require.Error(t, err, raw)
		assert.Equal(t, sitetext.EINVALID, sitetext.ErrorCode(err), raw)
	}
}

func TestHost_returns_host_component(t *testing.T) {
	t.Parallel()

	host, err := sitetext.Host("https://example.com:8080/docs")
	require.NoError(t, err)
	assert.Equal(t, "example.com:8080", host)
}

func TestHost_rejects_hostless_URLs(t *testing.T) {
	t.Parallel()

	_, err := sitetext.Host("/just/a/path")
	require.Error(t, err)
	assert.Equal(t, sitetext.EINVALID, sitetext.ErrorCode(err))
}
