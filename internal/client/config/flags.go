package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/outreach-console/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the primary backend (leads, campaigns, auth)
//	-b string   base URL of the secondary backend (calls)
//	-p string   admin path segment
//	-s string   path of the local state database
//
// The function filters args to only the flags it knows about, using
// flagx.FilterArgs, so -config and -env-file do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-p", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.PrimaryAPI, "a", cfg.PrimaryAPI, "base URL of the primary backend")
	fs.StringVar(&cfg.SecondaryAPI, "b", cfg.SecondaryAPI, "base URL of the secondary backend")
	fs.StringVar(&cfg.AdminPath, "p", cfg.AdminPath, "admin path segment")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
