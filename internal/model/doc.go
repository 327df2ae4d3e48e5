// Package model defines the data structures shared across webcrawl.
//
// The central type is DiscoveryRecord, the (url, page, depth) triple the
// traversal engine emits for every hyperlink it observes. Metadata wraps an
// ordered record sequence in the shape persisted to pages_metadata.json.
//
// Design decision: Models are in their own package to avoid circular
// dependencies. The crawler produces records, the report package persists
// them, and the database package stores them; all three share these types.
package model
