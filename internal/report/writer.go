package report

import (
	"io"

	"github.com/nao1215/webcrawl/internal/model"
)

// Writer defines the interface for crawl result output.
// Implementations persist the discovery-record stream in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to directories, stdout, or both
// with the same API.
type Writer interface {
	// Write outputs the crawl metadata to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(meta *model.Metadata) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for persisting the JSON metadata while also printing a
// summary to the terminal.
//
// Design decision: We implement this as a separate type rather than using
// io.MultiWriter because our Writer interface is different from io.Writer -
// we write metadata documents, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the metadata to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(meta *model.Metadata) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(meta)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for stream-backed writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
