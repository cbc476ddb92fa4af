package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the operator console.
//
// Fields:
//   - PrimaryAPI / SecondaryAPI: base URLs of the two backend services
//     (leads & campaigns, and calls respectively).
//   - AdminPath: path segment namespacing the authenticated routes.
//   - StatePath: SQLite file holding the persisted credential.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request deadline; zero disables it.
//   - RetryAttempts: extra attempts after a transport failure; zero disables retry.
//   - LeadsRefreshInterval: auto-refresh period of the leads view; zero disables it.
//   - OTelEndpoint: OTLP/HTTP collector URL; empty disables tracing.
type Config struct {
	PrimaryAPI           string        `env:"OUTREACH_PRIMARY_API"`
	SecondaryAPI         string        `env:"OUTREACH_SECONDARY_API"`
	AdminPath            string        `env:"OUTREACH_ADMIN_PATH"`
	StatePath            string        `env:"OUTREACH_STATE_PATH"`
	LogLevel             string        `env:"OUTREACH_LOG_LEVEL"`
	RequestTimeout       time.Duration `env:"OUTREACH_REQUEST_TIMEOUT"`
	RetryAttempts        uint          `env:"OUTREACH_RETRY_ATTEMPTS"`
	LeadsRefreshInterval time.Duration `env:"OUTREACH_LEADS_REFRESH"`
	OTelEndpoint         string        `env:"OUTREACH_OTEL_ENDPOINT"`
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.PrimaryAPI = "http://localhost:8000/api/v1"
	c.SecondaryAPI = "http://localhost:8001/api/v1"
	c.AdminPath = "admin"
	c.StatePath = "console.db"
	c.LogLevel = "info"
	c.RequestTimeout = 0
	c.RetryAttempts = 0
	c.LeadsRefreshInterval = 30 * time.Second
	c.OTelEndpoint = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a dotenv file, the environment, JSON (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
