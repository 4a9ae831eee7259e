package config

import "time"

// BotConfig is the root configuration for a bot instance.
type BotConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Telegram TelegramConfig `yaml:"telegram"`
	API      APIConfig      `yaml:"api"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Bid      BidConfig      `yaml:"bid"`
	Feed     FeedConfig     `yaml:"feed"`
	Database DatabaseConfig `yaml:"database"`
	Journal  JournalConfig  `yaml:"journal"`
	Health   HealthConfig   `yaml:"health"`
}

// InstanceConfig identifies this bot instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// TelegramConfig holds bot API settings.
type TelegramConfig struct {
	Token         string `yaml:"token"`
	UpdateTimeout int    `yaml:"update_timeout"` // long-poll timeout in seconds
	Debug         bool   `yaml:"debug"`
}

// APIConfig holds auction API settings.
type APIConfig struct {
	StatusURL    string        `yaml:"status_url"`
	BiddingURL   string        `yaml:"bidding_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// MonitorConfig holds polling loop settings.
type MonitorConfig struct {
	DefaultInterval time.Duration `yaml:"default_interval"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	MaxFetchErrors  int           `yaml:"max_fetch_errors"`
	FeedMaxAge      time.Duration `yaml:"feed_max_age"` // how fresh a pushed snapshot must be to beat an API fetch
}

// BidConfig holds bid submission settings.
type BidConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// FeedConfig holds the extension WebSocket listener settings.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DatabaseConfig holds the optional journal database. The bot runs fine
// without one; it just keeps no persistent history.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// JournalConfig holds batch writer settings.
type JournalConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	QueueSize     int           `yaml:"queue_size"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
