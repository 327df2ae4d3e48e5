package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior of the original crawler where applicable.
const (
	// DefaultMaxLinksPerPage is the per-page fan-out bound: the maximum
	// number of discovery records emitted for one fetched page. It does not
	// limit which links are followed, only which are recorded.
	DefaultMaxLinksPerPage = 10

	// DefaultOutputDir is the directory metadata and page bodies are
	// written into, relative to the working directory. It is recreated at
	// the start of every run.
	DefaultOutputDir = "pages"

	// DefaultTimeout is the per-request HTTP timeout. 30 seconds tolerates
	// slow servers without letting one dead host stall the run.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is sufficient for HTML pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies webcrawl in HTTP requests.
	// A descriptive User-Agent lets operators identify crawler traffic.
	DefaultUserAgent = "webcrawl/1.0 (+https://github.com/nao1215/webcrawl)"

	// DefaultSaveConcurrency is the number of page bodies downloaded in
	// parallel after traversal completes.
	DefaultSaveConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "webcrawl"
)

// Config holds all configuration options for webcrawl.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Seed is the address the traversal starts from.
	Seed string

	// MaxDepth is the depth limit of the traversal. The seed is depth 1;
	// zero or negative means the run produces nothing.
	MaxDepth int

	// MaxLinksPerPage bounds discovery records emitted per fetched page.
	MaxLinksPerPage int

	// OutputDir is where metadata and page bodies are written.
	OutputDir string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// SaveConcurrency is the number of parallel body downloads.
	SaveConcurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// Markdown enables writing a Markdown crawl summary to stdout after
	// the run completes.
	Markdown bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .webcrawl in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-host configurations loaded from the config file.
	SiteConfigs *File

	// SaveToDB indicates whether to record the run in the history database.
	SaveToDB bool

	// DBDir is the directory for the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users override specific
// values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, limits).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MaxLinksPerPage: DefaultMaxLinksPerPage,
		OutputDir:       DefaultOutputDir,
		Timeout:         DefaultTimeout,
		MaxBodySize:     DefaultMaxBodySize,
		UserAgent:       DefaultUserAgent,
		SaveConcurrency: DefaultSaveConcurrency,
		SaveToDB:        true,
		DBDir:           XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for webcrawl.
// On Linux: ~/.local/share/webcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for webcrawl.
// On Linux: ~/.config/webcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplySite overlays per-host overrides from the config file onto the
// global configuration. Only non-zero override fields take effect.
func (c *Config) ApplySite(host string) {
	if c.SiteConfigs == nil {
		return
	}

	site := c.SiteConfigs.GetSiteConfig(host)
	if site.Depth > 0 {
		c.MaxDepth = site.Depth
	}
	if site.MaxLinksPerPage > 0 {
		c.MaxLinksPerPage = site.MaxLinksPerPage
	}
	if site.UserAgent != "" {
		c.UserAgent = site.UserAgent
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return ErrNoSeed
	}

	if c.MaxDepth <= 0 {
		return ErrInvalidDepth
	}

	if c.MaxLinksPerPage <= 0 {
		return ErrInvalidMaxLinks
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.SaveConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	return nil
}
