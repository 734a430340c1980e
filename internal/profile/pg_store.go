package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore accede directo a Postgres. La unicidad la garantiza la PK:
// dos creaciones concurrentes terminan en una sola fila.
type PGStore struct {
	pool  *pgxpool.Pool
	table string
}

func NewPGStore(ctx context.Context, dsn, table string) (*PGStore, error) {
	if table == "" {
		table = "profiles"
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("profile: pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("profile: pg ping: %w", err)
	}
	return &PGStore{pool: pool, table: table}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

// Ping para el health check.
func (s *PGStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *PGStore) ident() string { return pgx.Identifier{s.table}.Sanitize() }

func (s *PGStore) Get(ctx context.Context, id, _ string) (*Profile, error) {
	q := `SELECT id::text, first_name, last_name, phone_number, avatar_url, created_at, updated_at
		FROM ` + s.ident() + ` WHERE id = $1`

	var p Profile
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PGStore) Create(ctx context.Context, p Profile, _ string) error {
	q := `INSERT INTO ` + s.ident() + ` (id, first_name, last_name, phone_number, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`

	_, err := s.pool.Exec(ctx, q, p.ID, p.FirstName, p.LastName, p.PhoneNumber, p.AvatarURL)
	return err
}

func (s *PGStore) Update(ctx context.Context, id string, patch Patch, at time.Time, _ string) error {
	q, args := buildUpdate(s.ident(), id, patch, at)
	_, err := s.pool.Exec(ctx, q, args...)
	return err
}

// buildUpdate arma UPDATE ... SET <campos presentes>, updated_at = $n WHERE id = $m.
func buildUpdate(table, id string, patch Patch, at time.Time) (string, []any) {
	cols, vals := patch.columns()
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
		args = append(args, vals[i])
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, at)
	args = append(args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args)), args
}
