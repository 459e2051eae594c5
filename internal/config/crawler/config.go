// Package crawler provides configuration management for the web crawler
// component: concurrency, request limits, and seed URLs.
package crawler

import (
	"errors"
	"time"
)

// Default configuration values.
const (
	DefaultWorkerCount        = 40
	DefaultMaxPages           = 1000
	DefaultBatchSize          = 50
	DefaultUserAgent          = "crawlsearch/1.0"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMaxRedirects       = 5
	DefaultClaimRetryDelay    = 200 * time.Millisecond
	DefaultMaxOutlinksPerPage = 0 // 0 = unlimited
)

// Config represents the crawler configuration.
type Config struct {
	// Seeds is the set of URLs the crawl starts from.
	Seeds []string `env:"CRAWLER_SEEDS"              yaml:"seeds"`
	// WorkerCount is the number of concurrent fetch workers.
	WorkerCount int `env:"CRAWLER_WORKER_COUNT"       yaml:"worker_count"`
	// MaxPages caps the number of pages fetched in one crawl run. 0 = unlimited.
	MaxPages int `env:"CRAWLER_MAX_PAGES"          yaml:"max_pages"`
	// BatchSize is the number of fetched pages between snapshot flushes.
	BatchSize int `env:"CRAWLER_BATCH_SIZE"         yaml:"batch_size"`
	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string `env:"CRAWLER_USER_AGENT"         yaml:"user_agent"`
	// RequestTimeout is the per-request HTTP timeout.
	RequestTimeout time.Duration `env:"CRAWLER_REQUEST_TIMEOUT"    yaml:"request_timeout"`
	// MaxRedirects is the maximum number of redirects to follow per request.
	MaxRedirects int `env:"CRAWLER_MAX_REDIRECTS"      yaml:"max_redirects"`
	// ClaimRetryDelay is passed to the worker pool config but not read by it:
	// idle workers block on the frontier instead of polling it.
	ClaimRetryDelay time.Duration `env:"CRAWLER_CLAIM_RETRY_DELAY"  yaml:"claim_retry_delay"`
	// MaxOutlinksPerPage caps outbound links registered per page. 0 = unlimited.
	MaxOutlinksPerPage int `env:"CRAWLER_MAX_OUTLINKS_PER_PAGE" yaml:"max_outlinks_per_page"`
}

// Validate checks that the configuration describes a runnable crawl.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return errors.New("at least one seed url is required")
	}
	if c.WorkerCount < 1 {
		return errors.New("worker_count must be positive")
	}
	if c.MaxPages < 0 {
		return errors.New("max_pages must be non-negative")
	}
	if c.BatchSize < 1 {
		return errors.New("batch_size must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.MaxOutlinksPerPage < 0 {
		return errors.New("max_outlinks_per_page must be non-negative")
	}
	return nil
}

// Option configures a Config.
type Option func(*Config)

// New creates a crawler configuration with defaults applied, then overridden
// by opts.
func New(opts ...Option) *Config {
	cfg := &Config{
		WorkerCount:        DefaultWorkerCount,
		MaxPages:           DefaultMaxPages,
		BatchSize:          DefaultBatchSize,
		UserAgent:          DefaultUserAgent,
		RequestTimeout:     DefaultRequestTimeout,
		MaxRedirects:       DefaultMaxRedirects,
		ClaimRetryDelay:    DefaultClaimRetryDelay,
		MaxOutlinksPerPage: DefaultMaxOutlinksPerPage,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithSeeds sets the crawl's seed URLs.
func WithSeeds(seeds []string) Option {
	return func(c *Config) { c.Seeds = seeds }
}

// WithWorkerCount sets the number of concurrent fetch workers.
func WithWorkerCount(n int) Option {
	return func(c *Config) { c.WorkerCount = n }
}

// WithMaxPages sets the crawl's page cap.
func WithMaxPages(n int) Option {
	return func(c *Config) { c.MaxPages = n }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Config) { c.UserAgent = agent }
}
