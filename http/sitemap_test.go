package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitehttp "github.com/fwojciec/sitetext/http"
)

func TestSitemap_reads_locations_from_robots_txt(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nDisallow:\nSitemap: %s/custom-sitemap.xml\n", srv.URL)
	})
	mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/page-one</loc></url>
  <url><loc>%[1]s/page-two</loc></url>
</urlset>`, srv.URL)
	})

	urls, err := sitehttp.NewSitemap(nil).Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/page-one", srv.URL + "/page-two"}, urls)
}

func TestSitemap_falls_back_to_conventional_location(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// No robots.txt handler: the request 404s and the discoverer should
	// try /sitemap.xml instead.
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/only-page</loc></url></urlset>`, srv.URL)
	})

	urls, err := sitehttp.NewSitemap(nil).Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/only-page"}, urls)
}

func TestSitemap_recurses_into_sitemap_index(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%[1]s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%[1]s/sitemap-b.xml</loc></sitemap>
  <sitemap><loc>%[1]s/sitemap-a.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/a</loc></url></urlset>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/b</loc></url></urlset>`, srv.URL)
	})

	urls, err := sitehttp.NewSitemap(nil).Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	// The repeated index entry is visited once.
	assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
}

func TestSitemap_site_without_sitemap_yields_no_URLs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	urls, err := sitehttp.NewSitemap(nil).Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemap_deduplicates_across_sitemaps(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Sitemap: %[1]s/one.xml\nSitemap: %[1]s/two.xml\n", srv.URL)
	})
	mux.HandleFunc("/one.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/shared</loc></url></urlset>`, srv.URL)
	})
	mux.HandleFunc("/two.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%[1]s/shared</loc></url><url><loc>%[1]s/extra</loc></url></urlset>`, srv.URL)
	})

	urls, err := sitehttp.NewSitemap(nil).Discover(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/shared", srv.URL + "/extra"}, urls)
}
