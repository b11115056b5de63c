// Package config loads runtime configuration for the Culinary Share CLI.
//
// Sources, later ones winning: built-in defaults, an optional JSON file
// selected with -c or -config, then command-line flags.
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "session_db_path": "culinaryshare.db",
//	  "request_timeout": "10s",
//	  "log_backend": "slog",
//	  "log_file": "culinaryshare-cli.log"
//	}
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/flagx"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, without the /api suffix.
//   - SessionDBPath: sqlite file that keeps the bearer token between runs.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogBackend: slog or zap.
//   - LogFile: where logs go, kept off the terminal; empty disables logging.
type Config struct {
	ServerURL      string
	SessionDBPath  string
	RequestTimeout time.Duration
	LogBackend     string
	LogFile        string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.SessionDBPath = "culinaryshare.db"
	c.RequestTimeout = 10 * time.Second
	c.LogBackend = "slog"
	c.LogFile = "culinaryshare-cli.log"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, flagx.ConfigPath(os.Args[1:]))
	parseFlags(cfg, os.Args[1:])
	return cfg
}
