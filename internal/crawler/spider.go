package crawler

import (
	"context"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/nao1215/webcrawl/internal/model"
)

// DefaultMaxLinksPerPage is the fan-out bound: the maximum number of
// discovery records emitted per fetched page. It caps what gets recorded,
// not what gets explored; all of a page's links remain eligible for
// traversal regardless of this bound.
const DefaultMaxLinksPerPage = 10

// Fetcher retrieves the markup of a page.
//
// Design decision: The spider consumes an interface rather than owning an
// HTTP client because:
//  1. Transport concerns (timeouts, proxies, body limits) stay out of the engine
//  2. Tests instrument traversal by counting Fetch calls on a fake
//  3. The same implementation is reused by the page body saver
//
// Implementations report failure through the error return and never panic.
// Any error - transport, DNS, timeout, non-2xx status - means the same thing
// to the spider: the page has no content.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Spider performs breadth-first traversal from a seed address.
// It owns no run state; each Crawl call creates its own queue and visited
// set, so a single Spider can serve concurrent traversal runs.
//
// Design decision: We call it "Spider" rather than "Crawler" because:
//  1. "Spider" is the traditional term for web crawlers
//  2. Distinguishes the component from the package name
//  3. Clearer in code: crawler.NewSpider() vs crawler.NewCrawler()
type Spider struct {
	// fetcher retrieves page markup.
	fetcher Fetcher

	// maxLinksPerPage bounds discovery records emitted per page.
	maxLinksPerPage int

	// logger receives progress and failure diagnostics.
	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxLinksPerPage sets the per-page fan-out bound for emitted records.
// Values below one fall back to the default.
func WithMaxLinksPerPage(n int) SpiderOption {
	return func(s *Spider) {
		if n > 0 {
			s.maxLinksPerPage = n
		}
	}
}

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a new Spider using the given fetcher.
//
// Design decision: We require an external fetcher because:
//  1. HTTP configuration is handled by the fetcher package
//  2. Allows deterministic fakes in tests
//  3. The engine stays a pure scheduling component
func NewSpider(fetcher Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:         fetcher,
		maxLinksPerPage: DefaultMaxLinksPerPage,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// frontierEntry is a pending unit of work: an address waiting to be fetched
// and the depth it was discovered at. Entries live only inside the run's
// queue; the same address may be queued more than once before it is visited.
type frontierEntry struct {
	address string
	depth   int
}

// Crawl traverses breadth-first from seed and returns the discovery records
// in the order they were produced: page-processing order, then per-page
// document order. Given deterministic fetch responses the output is
// byte-for-byte reproducible.
//
// startDepth is the depth assigned to the seed (typically 1). When maxDepth
// is zero or negative, Crawl returns an empty sequence without fetching
// anything; this is a deliberate fast exit, not an error.
//
// A fetch failure degrades that page to empty content - no records, no
// children - and the run continues. Context cancellation takes the same
// path: the current page is dropped and no further work is scheduled, so
// records accumulated up to that point are still returned.
func (s *Spider) Crawl(ctx context.Context, seed string, startDepth, maxDepth int) []model.DiscoveryRecord {
	records := make([]model.DiscoveryRecord, 0)
	if maxDepth <= 0 {
		return records
	}

	// Run-local state. Addresses enter visited at dequeue time, not enqueue
	// time, so duplicates may sit in the queue but are fetched at most once.
	visited := mapset.NewSet[string]()
	queue := []frontierEntry{{address: seed, depth: startDepth}}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		// Add reports whether the element was newly inserted, making the
		// check-and-insert a single atomic call.
		if !visited.Add(entry.address) {
			continue
		}

		select {
		case <-ctx.Done():
			s.logger.Info("traversal cancelled", "url", entry.address, "depth", entry.depth)
			return records
		default:
		}

		s.logger.Info("Fetching pages", "url", entry.address, "depth", entry.depth)

		markup, err := s.fetcher.Fetch(ctx, entry.address)
		if err != nil {
			s.logger.Error("failed to fetch page", "url", entry.address, "error", err)
			continue
		}

		links := s.extractLinks(markup, entry.address)

		// Fan-out bound applies to records only. The untruncated link list
		// still feeds the frontier below, so a page passes all its links
		// forward even when only the first few become records.
		for i, link := range links {
			if i >= s.maxLinksPerPage {
				break
			}
			records = append(records, model.DiscoveryRecord{
				URL:   link,
				Page:  entry.address,
				Depth: entry.depth,
			})
		}

		if entry.depth == maxDepth {
			continue
		}
		for _, link := range links {
			queue = append(queue, frontierEntry{address: link, depth: entry.depth + 1})
		}
	}

	return records
}

// extractLinks parses the page markup and returns all anchor targets
// resolved against the page address. Parse problems degrade to an empty
// link list; a page that cannot be parsed simply contributes nothing.
func (s *Spider) extractLinks(markup, pageURL string) []string {
	parser, err := NewParser(pageURL)
	if err != nil {
		s.logger.Error("invalid page address", "url", pageURL, "error", err)
		return nil
	}

	links, err := parser.ExtractLinks(strings.NewReader(markup))
	if err != nil {
		s.logger.Error("failed to parse page", "url", pageURL, "error", err)
		return nil
	}
	return links
}
