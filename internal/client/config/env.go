package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/outreach-console/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with OUTREACH_* environment variables.
//
// When -env-file is given, that dotenv file is loaded into the process
// environment first; variables already set in the environment win over the
// file. Without the flag a ".env" in the working directory is loaded if it
// exists. Unset variables leave the current (default) values untouched.
//
// Panics on a malformed dotenv file or an unparsable value, like parseJson.
func parseEnv(cfg *Config, args []string) {
	envFile := flagx.EnvFile(args)
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
