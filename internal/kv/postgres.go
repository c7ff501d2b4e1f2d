package kv

import (
	"context"
	"errors"

	"github.com/nazir19980501/mapty/internal/db"

	"github.com/jackc/pgx/v5"
)

type Postgres struct {
	db db.Querier
}

func NewPostgres(q db.Querier) *Postgres {
	return &Postgres{db: q}
}

// Migrate creates the kv_store table when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (p *Postgres) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *Postgres) Write(ctx context.Context, key string, value []byte) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1,$2)
		ON CONFLICT (key) DO UPDATE
		SET value=EXCLUDED.value, updated_at=now()
	`, key, string(value))
	return err
}
