package config

import (
	"flag"
	"os"
	"time"

	"github.com/ledgerkeeper/ledgerkeeper/internal/flagx"
)

// parseFlags overlays Config fields from the flags this component owns:
//
//	-a  HTTP listen address, e.g. ":8080"
//	-d  PostgreSQL connection string
//	-s  secret for signing access tokens
//	-t  access token lifetime in minutes
//	-l  log level: debug, info, warn or error
//	-u  object store root user
//	-p  object store root password
//	-b  receipt bucket
//	-g  object store region
//	-e  object store endpoint, e.g. "http://127.0.0.1:9000/"
//
// os.Args is pre-filtered through flagx.FilterArgs so flags defined by other
// packages pass through untouched. The bootstrap admin credentials have no
// flags; set them via the environment or the config file.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "HTTP listen address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL connection string")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")

	tokenMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token lifetime in minutes")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "object store root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "object store root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "receipt bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "object store region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "object store endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
}
