package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"
)

// maxSitemapDepth bounds recursion through nested sitemap index files.
const maxSitemapDepth = 5

// maxConcurrentSitemaps bounds parallel fetches of top-level sitemaps.
const maxConcurrentSitemaps = 5

// Sitemap discovers URLs from a site's sitemap via HTTP. It is used to
// seed the crawl frontier with extra starting points; every seeded URL
// still flows through the visited store before being fetched.
type Sitemap struct {
	client *http.Client
}

// NewSitemap creates a new Sitemap discoverer with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemap(client *http.Client) *Sitemap {
	if client == nil {
		client = http.DefaultClient
	}
	return &Sitemap{client: client}
}

// Discover finds URLs listed in the site's sitemaps. Sitemap locations
// are read from robots.txt, falling back to /sitemap.xml. Returns an
// empty slice (not nil) when the site has no sitemap.
func (s *Sitemap) Discover(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	// Top-level sitemaps are independent, so they are fetched in
	// parallel. Results keep the order the sitemaps were listed in.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSitemaps)

	found := make([][]string, len(sitemapURLs))
	for i, sitemapURL := range sitemapURLs {
		g.Go(func() error {
			urls, err := s.processSitemap(gctx, sitemapURL, make(map[string]bool), 0)
			if err != nil {
				return err
			}
			found[i] = urls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seenURLs := make(map[string]bool)
	var urls []string
	for _, branch := range found {
		for _, u := range branch {
			if !seenURLs[u] {
				seenURLs[u] = true
				urls = append(urls, u)
			}
		}
	}

	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// findSitemapURLs reads sitemap locations from robots.txt, falling back
// to the conventional /sitemap.xml when robots.txt is missing or lists
// none.
func (s *Sitemap) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.String() + "/robots.txt"

	var sitemaps []string
	body, err := s.get(ctx, robotsURL)
	if err == nil {
		scanner := bufio.NewScanner(strings.NewReader(body))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if rest, ok := strings.CutPrefix(line, "Sitemap:"); ok {
				if u := strings.TrimSpace(rest); u != "" {
					sitemaps = append(sitemaps, u)
				}
			}
		}
	}

	if len(sitemaps) == 0 {
		fallback := root.String() + "/sitemap.xml"
		if _, err := s.get(ctx, fallback); err == nil {
			sitemaps = append(sitemaps, fallback)
		}
	}

	return sitemaps, nil
}

// processSitemap fetches and parses one sitemap document, recursing
// into sitemap index entries.
func (s *Sitemap) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if seen[sitemapURL] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap %s: %w", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parse sitemap %s: %w", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var urls []string
	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen, depth+1)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			if text := strings.TrimSpace(loc.Text()); text != "" {
				urls = append(urls, text)
			}
		}
	}

	return urls, nil
}

func (s *Sitemap) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
