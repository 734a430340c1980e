package profile

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/wizauth/internal/observability/logger"
	migrations "github.com/dropDatabas3/wizauth/migrations/postgres"
)

// Migrate aplica las migraciones embebidas en orden, en una transacción.
// Son idempotentes (IF NOT EXISTS), así que se pueden correr en cada arranque.
func (s *PGStore) Migrate(ctx context.Context) error {
	stmts, err := loadMigrations(migrations.ProfilesFS, migrations.ProfilesDir, s.ident())
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, m := range stmts {
			if _, err := tx.Exec(ctx, m.sql); err != nil {
				return fmt.Errorf("profile: migrate %s: %w", m.name, err)
			}
			logger.From(ctx).Info("migration applied", logger.String("file", m.name))
		}
		return nil
	})
}

type migration struct {
	name string
	sql  string
}

func loadMigrations(fsys fs.FS, dir, table string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("profile: read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]migration, 0, len(names))
	for _, n := range names {
		b, err := fs.ReadFile(fsys, dir+"/"+n)
		if err != nil {
			return nil, fmt.Errorf("profile: read %s: %w", n, err)
		}
		out = append(out, migration{name: n, sql: strings.ReplaceAll(string(b), "{{table}}", table)})
	}
	return out, nil
}
