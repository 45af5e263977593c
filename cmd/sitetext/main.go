// Command sitetext crawls a site within one domain and writes one text
// artifact per page. Visited URLs are recorded in a SQLite database so
// re-runs resume where they left off.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/fwojciec/sitetext/goquery"
	sitehttp "github.com/fwojciec/sitetext/http"
	"github.com/fwojciec/sitetext/pdf"
	"github.com/fwojciec/sitetext/sqlite"

	sitefs "github.com/fwojciec/sitetext/fs"
	siteslog "github.com/fwojciec/sitetext/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `arg:"" required:"" help:"Seed URL to crawl (absolute, with scheme)"`
	Workers int           `short:"w" default:"5" help:"Number of concurrent crawl workers"`
	Timeout time.Duration `short:"t" default:"30s" help:"Fetch timeout per request"`
	Delay   time.Duration `short:"d" default:"1s" help:"Minimum delay between requests to the same host"`
	Output  string        `short:"o" default:"text" help:"Base directory for extracted text (a subdirectory per host is created)"`
	DB      string        `default:"crawler.db" help:"Path to the visited-URL database"`
	Sitemap bool          `help:"Seed the frontier from the site's sitemap"`
	Verbose bool          `short:"v" help:"Enable debug logging"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitetext"),
		kong.Description("Crawl a site and extract page text to local files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Validate the seed before touching storage or the network.
	seed, err := sitetext.Normalize(cli.URL)
	if err != nil {
		return err
	}
	scopeHost, err := sitetext.Host(seed)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger = logger.With("run", uuid.New().String())

	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return sitetext.Errorf(sitetext.ESTORAGE, "open visited database %s: %v", cli.DB, err)
	}
	visited := siteslog.NewVisitedStore(sqlite.NewVisitedStore(db), logger)
	defer visited.Close()

	fetcher := siteslog.NewFetcher(
		sitehttp.NewFetcher(sitehttp.WithTimeout(cli.Timeout)),
		logger,
	)

	crawler := &crawl.Crawler{
		Visited: visited,
		Fetcher: fetcher,
		Dispatch: &crawl.Dispatcher{
			HTML:   goquery.NewExtractor(),
			PDF:    pdf.NewExtractor(logger),
			Logger: logger,
		},
		Links:   goquery.NewLinkSelector(),
		Writer:  sitefs.NewWriter(filepath.Join(cli.Output, scopeHost)),
		Pacer:   crawl.NewPacer(cli.Delay),
		Logger:  logger,
		Workers: cli.Workers,
	}

	var extra []string
	if cli.Sitemap {
		extra = m.sitemapSeeds(ctx, seed, logger)
	}

	logger.Info("starting crawl",
		"seed", seed,
		"scopeHost", scopeHost,
		"workers", cli.Workers,
	)

	result, err := crawler.Run(ctx, seed, extra)
	if result != nil {
		fmt.Fprintf(stdout, "Crawl finished: %d saved, %d skipped, %d failed\n",
			result.Saved, result.Skipped, result.Failed)
	}
	return err
}

// sitemapSeeds discovers extra seed URLs from the site's sitemap.
// Sitemap failures are logged and the crawl proceeds from the seed
// alone.
func (m *Main) sitemapSeeds(ctx context.Context, seed string, logger *slog.Logger) []string {
	base, err := url.Parse(seed)
	if err != nil {
		return nil
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	seeds, err := sitehttp.NewSitemap(nil).Discover(ctx, root.String())
	if err != nil {
		logger.Warn("sitemap discovery failed", "error", err)
		return nil
	}
	logger.Info("sitemap seeds discovered", "count", len(seeds))
	return seeds
}
