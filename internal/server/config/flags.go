package config

import (
	"flag"
	"io"

	"github.com/ktpm/catalog/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string    HTTP bind address (":8080")
//	-g string    gRPC bind address, empty disables
//	-d string    PostgreSQL DSN, empty selects the in-memory stores
//	-s string    session token secret
//	-p string    public path prefix
//	-b int       bcrypt cost
//	-l string    log level
//	-insecure    drop the Secure attribute from the session cookie (plain-HTTP development)
//
// Unknown arguments (such as -c) are filtered out first so that several
// loaders can share one command line.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-p", "-b", "-l", "-insecure"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.PublicPrefix, "p", config.PublicPrefix, "public path prefix")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	insecure := fs.Bool("insecure", !config.CookieSecure, "send the session cookie without Secure")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CookieSecure = !*insecure
	return nil
}
