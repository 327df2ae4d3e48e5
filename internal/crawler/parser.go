package crawler

import (
	"io"
	"net/url"

	"golang.org/x/net/html"
)

// Parser extracts hyperlinks from HTML content.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//  4. Standard library extension, well-maintained
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative hrefs.
	baseURL *url.URL
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// ExtractLinks parses HTML content and returns the absolute addresses of all
// anchor elements carrying an href attribute, in document order. Anchors
// without an href are skipped. Hrefs that cannot be parsed as URLs are
// skipped rather than reported as errors.
//
// Resolution is plain RFC 3986 reference resolution against the base URL.
// No further canonicalization is applied: fragments, query order, and
// trailing slashes are preserved, so two addresses are equal only when their
// resolved string forms are equal.
func (p *Parser) ExtractLinks(content io.Reader) ([]string, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := getAttr(n, "href"); ok {
				if resolved, ok := p.resolveURL(href); ok {
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// resolveURL resolves an href against the base URL.
// The second return value is false when the href is not a parseable URL.
func (p *Parser) resolveURL(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return p.baseURL.ResolveReference(u).String(), true
}

// getAttr retrieves an attribute value from an HTML node.
// The second return value reports whether the attribute is present, which
// distinguishes a missing href from an empty one (href="" resolves to the
// base URL and is still a link).
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
