package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/webcrawl/internal/model"
)

// SummaryWriter outputs a crawl summary in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown output
type SummaryWriter struct {
	baseWriter

	// seed is the address the traversal started from.
	seed string

	// maxDepth is the depth limit the traversal ran with.
	maxDepth int
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer, seed string, maxDepth int) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
		seed:       seed,
		maxDepth:   maxDepth,
	}
}

// Write outputs the crawl summary in Markdown format.
func (w *SummaryWriter) Write(meta *model.Metadata) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + w.seed + "`"},
			{"Max Depth", strconv.Itoa(w.maxDepth)},
			{"Discovery Records", strconv.Itoa(len(meta.Pages))},
			{"Unique URLs", strconv.Itoa(len(meta.UniqueURLs()))},
		},
	})
	md.PlainText("")

	w.writePages(md, meta)

	return len(md.String()), md.Build()
}

// writePages writes the per-page record counts table.
// Pages appear in processing order, which is stable across identical runs.
func (w *SummaryWriter) writePages(md *markdown.Markdown, meta *model.Metadata) {
	if len(meta.Pages) == 0 {
		md.PlainText("No pages were discovered.")
		return
	}

	counts := make(map[string]int, len(meta.Pages))
	order := make([]string, 0)
	depths := make(map[string]int, len(meta.Pages))
	for _, record := range meta.Pages {
		if _, ok := counts[record.Page]; !ok {
			order = append(order, record.Page)
			depths[record.Page] = record.Depth
		}
		counts[record.Page]++
	}

	rows := make([][]string, 0, len(order))
	for _, page := range order {
		rows = append(rows, []string{
			"`" + page + "`",
			strconv.Itoa(depths[page]),
			strconv.Itoa(counts[page]),
		})
	}

	md.H2("Pages")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Depth", "Records"},
		Rows:   rows,
	})
}
