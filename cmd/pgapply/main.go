package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/moveops-platform/pgapply/internal/config"
	"github.com/moveops-platform/pgapply/internal/conn"
	"github.com/moveops-platform/pgapply/internal/runner"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	dir := flag.String("dir", "", "migrations directory (overrides MIGRATIONS_DIR)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("load config")
		return exitFatal
	}
	if *dir != "" {
		cfg.Dir = *dir
	}

	raw := cfg.DatabaseURL
	if flag.NArg() > 0 {
		raw = flag.Arg(0)
	}
	if raw == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <connection-string>\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Pass a Postgres connection string as the argument, or set")
		fmt.Fprintln(os.Stderr, "DATABASE_URL in the environment or in a local .env file.")
		return exitUsage
	}
	dsn := conn.Resolve(raw)

	files, err := runner.List(cfg.Dir, cfg.Only, cfg.From)
	if err != nil {
		logger.Error().Err(err).Msg("enumerate migrations")
		return exitFatal
	}
	if len(files) == 0 {
		logger.Info().Str("dir", cfg.Dir).Msg("0 migration files found, nothing to do")
		return exitOK
	}

	logger.Info().Int("count", len(files)).Msg("found migration files, connecting")

	ctx := context.Background()
	db, err := pgx.Connect(ctx, dsn)
	if err != nil {
		logger.Error().Err(err).Msg("connect database")
		return exitFatal
	}
	defer db.Close(ctx)

	r := &runner.Runner{DB: db, Log: logger}
	if err := r.Apply(ctx, cfg.Dir, files); err != nil {
		return exitFatal
	}

	logger.Info().Int("count", len(files)).Msg("all migrations applied")
	return exitOK
}
