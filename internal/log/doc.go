// Package log provides structured logging helpers built on log/slog.
//
// The crawler logs every address it touches, and crawled URLs routinely
// carry session identifiers or API keys in their query strings.
// RedactHandler wraps any slog.Handler and masks those values, so log
// output can be shared without leaking credentials embedded in URLs.
package log
