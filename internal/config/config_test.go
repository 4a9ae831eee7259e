package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-bot
telegram:
  token: 123:abc
api:
  status_url: https://status.example.com
  bidding_url: https://bidding.example.com
monitor:
  max_fetch_errors: 7
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-bot" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-bot")
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}
	if cfg.API.StatusURL != "https://status.example.com" {
		t.Errorf("API.StatusURL = %q", cfg.API.StatusURL)
	}
	if cfg.Monitor.MaxFetchErrors != 7 {
		t.Errorf("Monitor.MaxFetchErrors = %d, want 7", cfg.Monitor.MaxFetchErrors)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "999:secret")

	yaml := `
instance:
  id: test-bot
telegram:
  token: ${TEST_BOT_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.Token != "999:secret" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "999:secret")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-bot
telegram:
  token: 123:abc
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.StatusURL != DefaultStatusURL {
		t.Errorf("API.StatusURL = %q, want default %q", cfg.API.StatusURL, DefaultStatusURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.Monitor.DefaultInterval != DefaultPollInterval {
		t.Errorf("Monitor.DefaultInterval = %v, want default %v", cfg.Monitor.DefaultInterval, DefaultPollInterval)
	}
	if cfg.Monitor.MaxFetchErrors != DefaultMaxFetchErrors {
		t.Errorf("Monitor.MaxFetchErrors = %d, want default %d", cfg.Monitor.MaxFetchErrors, DefaultMaxFetchErrors)
	}
	if cfg.Feed.Addr != DefaultFeedAddr {
		t.Errorf("Feed.Addr = %q, want default %q", cfg.Feed.Addr, DefaultFeedAddr)
	}
	if cfg.Database.Postgres.Port != DefaultDBPort {
		t.Errorf("Database.Postgres.Port = %d, want default %d", cfg.Database.Postgres.Port, DefaultDBPort)
	}
	if cfg.Journal.BatchSize != DefaultBatchSize {
		t.Errorf("Journal.BatchSize = %d, want default %d", cfg.Journal.BatchSize, DefaultBatchSize)
	}
	if cfg.Health.Port != DefaultHealthPort {
		t.Errorf("Health.Port = %d, want default %d", cfg.Health.Port, DefaultHealthPort)
	}
}

func TestValidate(t *testing.T) {
	valid := func() BotConfig {
		return BotConfig{
			Instance: InstanceConfig{ID: "test"},
			Telegram: TelegramConfig{Token: "123:abc"},
			API: APIConfig{
				StatusURL:  DefaultStatusURL,
				BiddingURL: DefaultBiddingURL,
			},
			Monitor: MonitorConfig{MaxFetchErrors: 5},
			Health:  HealthConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*BotConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *BotConfig) {},
			wantErr: "",
		},
		{
			name:    "missing instance id",
			mutate:  func(c *BotConfig) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "missing telegram token",
			mutate:  func(c *BotConfig) { c.Telegram.Token = "" },
			wantErr: "telegram.token is required",
		},
		{
			name:    "zero fetch errors",
			mutate:  func(c *BotConfig) { c.Monitor.MaxFetchErrors = 0 },
			wantErr: "monitor.max_fetch_errors must be >= 1",
		},
		{
			name: "database enabled without host",
			mutate: func(c *BotConfig) {
				c.Database.Enabled = true
				c.Database.Postgres = DBConfig{Name: "db", User: "u", Password: "p", MaxConns: 5}
			},
			wantErr: "database.postgres.host is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *BotConfig) {
				c.Database.Enabled = true
				c.Database.Postgres = DBConfig{Host: "localhost", Name: "db", User: "u", Password: "p", MaxConns: 5, MinConns: 10}
				c.Journal = JournalConfig{BatchSize: 100, QueueSize: 100}
			},
			wantErr: "database.postgres.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "bad health port",
			mutate:  func(c *BotConfig) { c.Health.Port = 70000 },
			wantErr: "health.port must be between 1 and 65535, got 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}
