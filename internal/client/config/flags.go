package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-u string   upload base URL
//	-t int      request timeout in seconds
//	-d string   session database path
//	-l string   log level
//	-s string   status policy (any or forward)
//
// os.Args is filtered with flagx.FilterArgs so flags handled elsewhere
// (-c, -e) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-t", "-d", "-l", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "job board API base URL")
	fs.StringVar(&cfg.UploadBaseURL, "u", cfg.UploadBaseURL, "resume upload base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.StatusPolicy, "s", cfg.StatusPolicy, "status change policy (any, forward)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
