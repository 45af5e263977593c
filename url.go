package sitetext

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a URL so that equivalent forms
// compare equal. The canonical form preserves scheme, host, path, and
// query, strips the fragment, and carries no trailing slash on the path.
// Normalize is idempotent: Normalize(Normalize(u)) == Normalize(u).
//
// Only absolute http and https URLs are accepted; anything else returns
// EINVALID.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q in URL %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	if u.RawPath != "" {
		u.RawPath = strings.TrimRight(u.RawPath, "/")
	}
	return u.String(), nil
}

// Host returns the host component of a URL, or an error if the URL
// cannot be parsed. It is used to derive the crawl's scope host from
// the seed URL.
func Host(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	return u.Host, nil
}
