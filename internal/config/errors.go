package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSeed is returned when no start address is provided.
	ErrNoSeed = errors.New("no start address specified")

	// ErrInvalidDepth is returned when the crawl depth is not positive.
	// Depth counts the seed as 1, so zero or negative depth means nothing
	// would be fetched.
	ErrInvalidDepth = errors.New("invalid depth: must be a positive integer")

	// ErrInvalidMaxLinks is returned when the per-page record bound is not
	// positive.
	ErrInvalidMaxLinks = errors.New("invalid max links per page: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the download concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid save concurrency: must be positive")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")
)
