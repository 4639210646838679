package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
)

// parseFlags overlays selected fields from command-line flags.
//
//	-a string   base URL of the HTTP API
//	-i int      online check interval in seconds
//	-r int      request timeout in seconds
//
// Other arguments are dropped by flagx.FilterArgs before parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-r"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "r":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
