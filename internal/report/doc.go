// Package report persists and presents crawl results.
//
// MetadataWriter writes the discovery-record stream as pages_metadata.json
// inside a freshly recreated output directory. PageSaver downloads the raw
// bodies of discovered URLs into the same directory, deduplicating with its
// own download-tracking set. SummaryWriter renders a human-readable Markdown
// summary of a run.
//
// All writers consume the engine's output; none of them participate in
// traversal decisions.
package report
