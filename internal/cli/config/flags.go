package config

import (
	"flag"
	"os"
	"time"

	"github.com/ledgerkeeper/ledgerkeeper/internal/flagx"
)

// parseFlags overlays Config fields from the flags this component owns:
//
//	-a  base URL of the backend server
//	-t  request timeout in seconds
//
// os.Args is pre-filtered through flagx.FilterArgs so flags defined by other
// packages pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "base URL of the backend server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
