package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nao1215/webcrawl/internal/model"
)

// stubFetcher serves bodies from a map and counts fetches per URL.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newStubFetcher(pages map[string]string) *stubFetcher {
	return &stubFetcher{
		pages: pages,
		calls: make(map[string]int),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[pageURL]++
	body, ok := f.pages[pageURL]
	if !ok {
		return "", errors.New("connection refused")
	}
	return body, nil
}

func (f *stubFetcher) count(pageURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pageURL]
}

// TestPageSaverSaveAll tests body downloading and per-URL deduplication.
func TestPageSaverSaveAll(t *testing.T) {
	t.Parallel()

	t.Run("saves each unique url once", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher(map[string]string{
			"http://example.com/page1.html": "<html>one</html>",
			"http://example.com/page2.html": "<html>two</html>",
		})

		dir := filepath.Join(t.TempDir(), "pages")
		saver := NewPageSaver(fetcher, dir)

		// page1 appears twice, discovered from two different pages.
		meta := model.NewMetadata([]model.DiscoveryRecord{
			{URL: "http://example.com/page1.html", Page: "http://example.com/", Depth: 1},
			{URL: "http://example.com/page2.html", Page: "http://example.com/", Depth: 1},
			{URL: "http://example.com/page1.html", Page: "http://example.com/page2.html", Depth: 2},
		})

		if err := saver.SaveAll(context.Background(), meta); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if fetcher.count("http://example.com/page1.html") != 1 {
			t.Errorf("page1 downloaded %d times", fetcher.count("http://example.com/page1.html"))
		}

		body, err := os.ReadFile(filepath.Join(dir, "page1.html"))
		if err != nil {
			t.Fatalf("page1 body not saved: %v", err)
		}
		if string(body) != "<html>one</html>" {
			t.Errorf("unexpected body: %q", body)
		}
		if _, err := os.Stat(filepath.Join(dir, "page2.html")); err != nil {
			t.Errorf("page2 body not saved: %v", err)
		}
	})

	t.Run("one failed download does not abort the batch", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher(map[string]string{
			"http://example.com/good.html": "<html>good</html>",
		})

		dir := filepath.Join(t.TempDir(), "pages")
		saver := NewPageSaver(fetcher, dir)

		meta := model.NewMetadata([]model.DiscoveryRecord{
			{URL: "http://example.com/dead.html", Page: "http://example.com/", Depth: 1},
			{URL: "http://example.com/good.html", Page: "http://example.com/", Depth: 1},
		})

		if err := saver.SaveAll(context.Background(), meta); err != nil {
			t.Fatalf("batch should not fail: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "good.html")); err != nil {
			t.Errorf("good page should be saved: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "dead.html")); !os.IsNotExist(err) {
			t.Error("dead page should not produce a file")
		}
	})

	t.Run("strips query parameters from file names", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher(map[string]string{
			"http://example.com/page.html?session=42": "<html>q</html>",
		})

		dir := filepath.Join(t.TempDir(), "pages")
		saver := NewPageSaver(fetcher, dir)

		meta := model.NewMetadata([]model.DiscoveryRecord{
			{URL: "http://example.com/page.html?session=42", Page: "http://example.com/", Depth: 1},
		})

		if err := saver.SaveAll(context.Background(), meta); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "page.html")); err != nil {
			t.Errorf("expected query-stripped file name: %v", err)
		}
	})
}

// TestFileNameForURL tests body file name derivation.
func TestFileNameForURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		want    string
	}{
		{"plain html page", "http://example.com/page1.html", "page1.html"},
		{"query stripped", "http://example.com/page1.html?a=1&b=2", "page1.html"},
		{"nested path", "http://example.com/docs/guide/intro.html", "intro.html"},
		{"no extension", "http://example.com/about", "about.html"},
		{"root path", "http://example.com/", "index.html"},
		{"no path", "http://example.com", "index.html"},
		{"fragment stripped", "http://example.com/page.html#top", "page.html"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FileNameForURL(tt.pageURL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
