package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-b int      bcrypt cost
//	-r string   Redis URL for the lockout store
//	-l int      failed logins before lockout (0 disables)
//	-w int      lockout window, minutes
//
// os.Args is first reduced to these flags with flagx.FilterArgs, so -c and
// flags meant for other components are ignored.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-b", "-r", "-l", "-w"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port of the HTTP API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port of the gRPC API")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")

	ttl := fs.Int("t", 0, "access token validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for login lockout")
	fs.IntVar(&config.LockoutThreshold, "l", config.LockoutThreshold, "failed logins before lockout")

	window := fs.Int("w", 0, "lockout window (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// minute flags only override what was passed
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenTTL = time.Duration(*ttl) * time.Minute
		case "w":
			config.LockoutWindow = time.Duration(*window) * time.Minute
		}
	})
	return nil
}
