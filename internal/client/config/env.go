package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with FOOTCAP_* variables. A .env file in the working
// directory is loaded first when present; variables already set in the
// process environment win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
