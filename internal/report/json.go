package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/webcrawl/internal/model"
)

// MetadataFileName is the name of the persisted crawl metadata document.
const MetadataFileName = "pages_metadata.json"

// MetadataWriter persists the discovery-record stream as a JSON document
// inside the output directory.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
//  1. It's part of the standard library (no extra dependencies)
//  2. It's sufficient for our needs
//  3. It provides consistent behavior across Go versions
type MetadataWriter struct {
	// dir is the output directory, recreated on every Write.
	dir string

	// logger receives diagnostics about skipped or written files.
	logger *slog.Logger
}

// MetadataWriterOption configures a MetadataWriter.
type MetadataWriterOption func(*MetadataWriter)

// WithMetadataLogger sets the logger used for write diagnostics.
func WithMetadataLogger(logger *slog.Logger) MetadataWriterOption {
	return func(w *MetadataWriter) {
		w.logger = logger
	}
}

// NewMetadataWriter creates a MetadataWriter rooted at dir.
func NewMetadataWriter(dir string, opts ...MetadataWriterOption) *MetadataWriter {
	w := &MetadataWriter{
		dir:    dir,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write recreates the output directory, removing anything left over from a
// previous run, and writes the metadata document into it. When the record
// sequence is empty no file is written; the empty run is only logged.
func (w *MetadataWriter) Write(meta *model.Metadata) (int, error) {
	if err := w.resetDir(); err != nil {
		return 0, err
	}

	if len(meta.Pages) == 0 {
		w.logger.Info("no pages discovered, skipping metadata file", "dir", w.dir)
		return 0, nil
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to serialize metadata: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, MetadataFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return 0, fmt.Errorf("failed to write metadata file: %w", err)
	}

	w.logger.Info("metadata written", "path", path, "pages", len(meta.Pages))
	return len(data), nil
}

// resetDir removes the output directory and creates it fresh.
func (w *MetadataWriter) resetDir() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to clear output directory %s: %w", w.dir, err)
	}
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}
	return nil
}
