package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/webcrawl/internal/crawler"
	"github.com/nao1215/webcrawl/internal/model"
)

// DefaultSaveConcurrency is the number of page bodies downloaded in parallel.
// Body downloads are independent of each other and of the traversal, so a
// small pool speeds up large runs without hammering one host too hard.
const DefaultSaveConcurrency = 4

// PageSaver downloads the raw bodies of discovered URLs and writes each one
// to a file in the output directory.
//
// URLs are deduplicated with a download-tracking set that is independent of
// the traversal's visited set: a page that was never fetched during
// traversal (for example one found at the depth ceiling) is still saved.
type PageSaver struct {
	// fetcher retrieves the raw bodies. The same implementation used for
	// traversal is reused here.
	fetcher crawler.Fetcher

	// dir is the directory body files are written into.
	dir string

	// concurrency bounds parallel downloads.
	concurrency int

	// logger receives per-file progress and failures.
	logger *slog.Logger
}

// PageSaverOption configures a PageSaver.
type PageSaverOption func(*PageSaver)

// WithSaveConcurrency sets the number of parallel downloads.
// Values below one fall back to the default.
func WithSaveConcurrency(n int) PageSaverOption {
	return func(s *PageSaver) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithSaverLogger sets the logger used for download diagnostics.
func WithSaverLogger(logger *slog.Logger) PageSaverOption {
	return func(s *PageSaver) {
		s.logger = logger
	}
}

// NewPageSaver creates a PageSaver writing into dir using the given fetcher.
func NewPageSaver(fetcher crawler.Fetcher, dir string, opts ...PageSaverOption) *PageSaver {
	s := &PageSaver{
		fetcher:     fetcher,
		dir:         dir,
		concurrency: DefaultSaveConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SaveAll downloads every unique discovered URL in the metadata and writes
// its body to <dir>/<filename>. A failure on one URL is logged and skipped;
// it never aborts the batch. The only hard errors are directory creation
// failure and context cancellation.
func (s *PageSaver) SaveAll(ctx context.Context, meta *model.Metadata) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.dir, err)
	}

	downloaded := mapset.NewSet[string]()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, record := range meta.Pages {
		// Add reports insertion, so each URL is scheduled at most once no
		// matter how many records reference it.
		if !downloaded.Add(record.URL) {
			continue
		}

		pageURL := record.URL
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			s.savePage(ctx, pageURL)
			return nil
		})
	}

	return g.Wait()
}

// savePage fetches one URL and writes its body. Failures are logged only.
func (s *PageSaver) savePage(ctx context.Context, pageURL string) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger.Error("failed to fetch page body", "url", pageURL, "error", err)
		return
	}

	name, err := FileNameForURL(pageURL)
	if err != nil {
		s.logger.Error("cannot derive file name", "url", pageURL, "error", err)
		return
	}

	dest := filepath.Join(s.dir, name)
	if err := os.WriteFile(dest, []byte(body), 0600); err != nil {
		s.logger.Error("failed to write page body", "url", pageURL, "path", dest, "error", err)
		return
	}

	s.logger.Info("Saved page", "url", pageURL, "path", dest)
}

// FileNameForURL derives the body file name for a URL: the last path
// segment with query parameters and fragment stripped, given a ".html"
// suffix when it doesn't already carry one. A URL with no usable path
// segment (for example "http://example.com/") becomes "index.html".
func FileNameForURL(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." || base == "" {
		base = "index"
	}

	if !strings.HasSuffix(base, ".html") {
		base += ".html"
	}
	return base, nil
}
