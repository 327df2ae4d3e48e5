package model

// DiscoveryRecord represents one observed hyperlink occurrence: a target URL,
// the page it was found on, and the depth of that page in the traversal.
//
// Design decision: We use an explicit value struct with named fields rather
// than a map because:
//  1. Field presence and shape are statically guaranteed
//  2. Records are immutable once created; value semantics make that natural
//  3. JSON tags pin the persisted metadata format in one place
type DiscoveryRecord struct {
	// URL is the absolute address of the discovered link target.
	URL string `json:"url"`

	// Page is the absolute address of the page on which URL was found.
	Page string `json:"page"`

	// Depth is the traversal depth of Page, not of URL.
	// The seed page's depth is whatever start depth the caller chose
	// (typically 1).
	Depth int `json:"depth"`
}

// Metadata is the persisted crawl metadata document.
// It serializes to {"pages": [{url, page, depth}, ...]}.
type Metadata struct {
	// Pages holds the discovery records in the order they were produced:
	// page-processing order first, then per-page document order.
	Pages []DiscoveryRecord `json:"pages"`
}

// NewMetadata wraps discovery records in the persisted document shape.
// A nil slice is normalized to an empty one so the JSON output is always
// {"pages": []} rather than {"pages": null}.
func NewMetadata(records []DiscoveryRecord) *Metadata {
	if records == nil {
		records = []DiscoveryRecord{}
	}
	return &Metadata{Pages: records}
}

// UniqueURLs returns the distinct discovered target URLs in first-seen order.
// This is the set of pages the body saver downloads; it is deliberately
// independent of the traversal's visited set.
func (m *Metadata) UniqueURLs() []string {
	seen := make(map[string]bool, len(m.Pages))
	urls := make([]string, 0, len(m.Pages))
	for _, record := range m.Pages {
		if seen[record.URL] {
			continue
		}
		seen[record.URL] = true
		urls = append(urls, record.URL)
	}
	return urls
}
