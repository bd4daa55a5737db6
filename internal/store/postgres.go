package store

import (
	"context"
	"database/sql"
	"embed"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"github/chapool/go-hdwallet/internal/util"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationTable = "kv_migrations"

// Postgres is a KeyValueStore backed by a single kv_store table
type Postgres struct {
	db *sql.DB
}

// NewPostgres connects to dsn and applies pending migrations
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse postgres dsn")
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

// Migrate applies the embedded kv_store migrations
func Migrate(ctx context.Context, db *sql.DB) error {
	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations",
	}

	ms := migrate.MigrationSet{TableName: migrationTable}

	n, err := ms.ExecContext(ctx, db, "postgres", source, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	util.LogFromContext(ctx).Debug().Int("applied", n).Msg("Applied kv store migrations")
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get %s", key)
	}

	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set %s", key)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
