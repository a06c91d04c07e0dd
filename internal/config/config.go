package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full run configuration, populated once at startup.
// Precedence: CLI argument (connection string, handled by the caller),
// then a local .env file, then the process environment.
type Config struct {
	// DatabaseURL is the fallback connection string when no CLI
	// argument is given. URL form or any DSN the driver accepts.
	DatabaseURL string `env:"DATABASE_URL"`

	// Dir is the directory holding *.sql migration files.
	Dir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Only restricts the run to a single exactly-named file.
	Only string `env:"MIG_ONLY"`

	// From skips every file sorting before the named one (inclusive).
	From string `env:"MIG_FROM"`
}

// Load reads the optional .env file and the process environment. The .env
// file is a convenience: any error loading it is treated as if the file
// were absent. Overload, not Load, so values in the file win over the
// inherited environment.
func Load() (Config, error) {
	_ = godotenv.Overload()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
