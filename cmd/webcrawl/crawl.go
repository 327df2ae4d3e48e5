package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/webcrawl/internal/config"
	"github.com/nao1215/webcrawl/internal/crawler"
	"github.com/nao1215/webcrawl/internal/database"
	"github.com/nao1215/webcrawl/internal/fetcher"
	"github.com/nao1215/webcrawl/internal/log"
	"github.com/nao1215/webcrawl/internal/model"
	"github.com/nao1215/webcrawl/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <start-url> <depth>",
		Short: "Crawl breadth-first from a start address",
		Long: `Crawl walks a site breadth-first from the start address.

The seed page is depth 1. Every hyperlink discovered on a fetched page
becomes a discovery record {url, page, depth}; at most --max-links records
are emitted per page, but all of a page's links are still followed while
the depth limit allows. Unreachable pages are skipped, never fatal.

Results are written into the output directory (recreated on every run):
pages_metadata.json plus the raw body of each unique discovered URL.

Examples:
  # Crawl two levels deep
  webcrawl crawl http://example.com/ 2

  # Keep up to 25 records per page and write a Markdown summary
  webcrawl crawl --max-links 25 --markdown http://example.com/ 3

  # Use a custom configuration file with per-host overrides
  webcrawl crawl -c myconfig.yaml http://example.com/ 2`,
		Args: cobra.ExactArgs(2),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-links", "l", config.DefaultMaxLinksPerPage,
		"Maximum discovery records emitted per page")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request HTTP timeout")
	cmd.Flags().Int64P("max-body-size", "s", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header to send")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for metadata and page bodies (recreated each run)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print a Markdown crawl summary to stdout")
	cmd.Flags().IntP("concurrency", "n", config.DefaultSaveConcurrency,
		"Number of parallel page body downloads")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webcrawl in current or home directory)")

	// History database
	cmd.Flags().Bool("no-database", false,
		"Do not record this run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Seed = args[0]

	depth, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("depth must be an integer, got %q", args[1])
	}
	cfg.MaxDepth = depth

	if cfg.MaxLinksPerPage, err = cmd.Flags().GetInt("max-links"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.SaveConcurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
		return nil, err
	}

	noDatabase, err := cmd.Flags().GetBool("no-database")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDatabase

	// Load per-host configurations from the config file.
	// An explicitly specified path must exist; the default search is
	// allowed to come up empty.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	return cfg, nil
}

// runCrawl executes the traversal and persists its results.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if seedURL, err := url.Parse(cfg.Seed); err == nil && seedURL.Host != "" {
		cfg.ApplySite(seedURL.Hostname())
	}

	logger.Info("starting crawl",
		"seed", cfg.Seed,
		"maxDepth", cfg.MaxDepth,
		"maxLinksPerPage", cfg.MaxLinksPerPage,
		"outputDir", cfg.OutputDir,
	)

	httpFetcher := fetcher.NewHTTPFetcher(
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
	)

	spider := crawler.NewSpider(httpFetcher,
		crawler.WithMaxLinksPerPage(cfg.MaxLinksPerPage),
		crawler.WithLogger(logger),
	)

	startTime := time.Now()
	records := spider.Crawl(ctx, cfg.Seed, 1, cfg.MaxDepth)
	meta := model.NewMetadata(records)

	logger.Info("traversal finished",
		"records", len(records),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	// Persist metadata (this also resets the output directory) and,
	// when requested, print the Markdown summary to stdout.
	writers := []report.Writer{
		report.NewMetadataWriter(cfg.OutputDir, report.WithMetadataLogger(logger)),
	}
	if cfg.Markdown {
		writers = append(writers, report.NewSummaryWriter(os.Stdout, cfg.Seed, cfg.MaxDepth))
	}
	if _, err := report.NewMultiWriter(writers...).Write(meta); err != nil {
		return fmt.Errorf("failed to write crawl results: %w", err)
	}

	// Download the bodies of all unique discovered URLs.
	if len(meta.Pages) > 0 {
		saver := report.NewPageSaver(httpFetcher, cfg.OutputDir,
			report.WithSaveConcurrency(cfg.SaveConcurrency),
			report.WithSaverLogger(logger),
		)
		if err := saver.SaveAll(ctx, meta); err != nil {
			return fmt.Errorf("failed to save page bodies: %w", err)
		}
	}

	// History is best effort: a failed save is logged, never fatal.
	if cfg.SaveToDB {
		saveRunHistory(ctx, cfg, meta, logger)
	}

	return nil
}

// saveRunHistory records the run in the SQLite history database.
func saveRunHistory(ctx context.Context, cfg *config.Config, meta *model.Metadata, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Error("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, cfg.Seed, 1, cfg.MaxDepth, meta.Pages)
	if err != nil {
		logger.Error("failed to save run history", "error", err)
		return
	}
	logger.Info("run recorded", "runID", runID, "dir", cfg.DBDir)
}
