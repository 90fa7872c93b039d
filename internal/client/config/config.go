package config

import "time"

// Config holds runtime settings for the ReMood CLI.
//
// Fields:
//   - ServerURL: base URL of the ReMood REST API.
//   - DatabasePath: SQLite file holding the persisted session slots.
//   - RequestTimeout: upper bound for a single API call.
//   - KeyBackend: where the encryption key is kept, "sqlite" or "keyring".
//   - LogLevel / LogFormat: slog level name and "text" or "json".
//   - DecryptWorkers: how many entries are decrypted concurrently.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	KeyBackend     string
	LogLevel       string
	LogFormat      string
	DecryptWorkers int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "remood.db"
	c.RequestTimeout = 30 * time.Second
	c.KeyBackend = "sqlite"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.DecryptWorkers = 8
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
