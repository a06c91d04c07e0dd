package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DB is the part of *pgx.Conn the runner uses. Exec with no arguments
// goes through the simple query protocol, so a migration file may hold
// several statements; each file commits independently.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// List returns the names of the *.sql files in dir, sorted ascending.
// When only is set the list is restricted to that exact name. Otherwise,
// when from is set, files sorting before it are skipped (from itself is
// kept). A filter naming a file that is not present yields an empty list.
func List(dir, only, from string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("migrations directory not found: %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if only != "" {
		for _, name := range names {
			if name == only {
				return []string{name}, nil
			}
		}
		return nil, nil
	}

	if from != "" {
		for i, name := range names {
			if name == from {
				return names[i:], nil
			}
		}
		return nil, nil
	}

	return names, nil
}

// Runner applies migration files over a single open connection.
type Runner struct {
	DB  DB
	Log zerolog.Logger
}

// Apply executes each named file from dir in order, one Exec per file in
// auto-commit mode. It stops at the first failure; files already applied
// stay applied.
func (r *Runner) Apply(ctx context.Context, dir string, files []string) error {
	for _, name := range files {
		path := filepath.Join(dir, name)
		sql, err := os.ReadFile(path)
		if err != nil {
			r.Log.Error().Err(err).Str("file", name).Msg("read migration")
			return fmt.Errorf("read %s: %w", name, err)
		}

		if _, err := r.DB.Exec(ctx, string(sql)); err != nil {
			r.Log.Error().Err(err).Str("file", name).Msg("migration failed")
			return fmt.Errorf("apply %s: %w", name, err)
		}
		r.Log.Info().Str("file", name).Msg("OK")
	}
	return nil
}
