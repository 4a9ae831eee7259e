package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultStatusURL      = "https://api.lelang.go.id"
	DefaultBiddingURL     = "https://bidding.lelang.go.id"
	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBackoff   = 1 * time.Second
	DefaultUpdateTimeout  = 60
	DefaultPollInterval   = 3 * time.Second
	DefaultFetchTimeout   = 10 * time.Second
	DefaultMaxFetchErrors = 5
	DefaultFeedMaxAge     = 5 * time.Second
	DefaultBidTimeout     = 15 * time.Second
	DefaultFeedAddr       = ":8090"
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 10
	DefaultMinConns       = 2
	DefaultBatchSize      = 100
	DefaultFlushInterval  = 1 * time.Second
	DefaultJournalQueue   = 1000
	DefaultHealthPort     = 8080
)

func (c *BotConfig) applyDefaults() {
	// Telegram defaults
	if c.Telegram.UpdateTimeout == 0 {
		c.Telegram.UpdateTimeout = DefaultUpdateTimeout
	}

	// API defaults
	if c.API.StatusURL == "" {
		c.API.StatusURL = DefaultStatusURL
	}
	if c.API.BiddingURL == "" {
		c.API.BiddingURL = DefaultBiddingURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Monitor defaults
	if c.Monitor.DefaultInterval == 0 {
		c.Monitor.DefaultInterval = DefaultPollInterval
	}
	if c.Monitor.FetchTimeout == 0 {
		c.Monitor.FetchTimeout = DefaultFetchTimeout
	}
	if c.Monitor.MaxFetchErrors == 0 {
		c.Monitor.MaxFetchErrors = DefaultMaxFetchErrors
	}
	if c.Monitor.FeedMaxAge == 0 {
		c.Monitor.FeedMaxAge = DefaultFeedMaxAge
	}

	// Bid defaults
	if c.Bid.Timeout == 0 {
		c.Bid.Timeout = DefaultBidTimeout
	}

	// Feed defaults
	if c.Feed.Addr == "" {
		c.Feed.Addr = DefaultFeedAddr
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Journal defaults
	if c.Journal.BatchSize == 0 {
		c.Journal.BatchSize = DefaultBatchSize
	}
	if c.Journal.FlushInterval == 0 {
		c.Journal.FlushInterval = DefaultFlushInterval
	}
	if c.Journal.QueueSize == 0 {
		c.Journal.QueueSize = DefaultJournalQueue
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
