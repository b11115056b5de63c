package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the API server
//	-f string   path of the local session database
//	-r int      request timeout (in seconds)
//	-l string   log backend: slog, zap
//	-g string   log file path
//
// Args are filtered with flagx.FilterArgs first so that -c/-config and
// foreign flags do not break parsing.
func parseFlags(cfg *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-f", "-r", "-l", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.SessionDBPath, "f", cfg.SessionDBPath, "path of the local session database")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogBackend, "l", cfg.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&cfg.LogFile, "g", cfg.LogFile, "log file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
