package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"txhandoff/internal/record"
)

const schema = `CREATE TABLE IF NOT EXISTS transfer_records (
	id TEXT PRIMARY KEY,
	amount NUMERIC NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	source_account TEXT NOT NULL,
	destination_account TEXT NOT NULL
)`

// Postgres stores records in the transfer_records table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres connects with dsn and makes sure the table exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresFromDB(ctx, db)
}

// NewPostgresFromDB wraps an existing handle and makes sure the table exists.
func NewPostgresFromDB(ctx context.Context, db *sql.DB) (*Postgres, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Save(ctx context.Context, rec record.Record) error {
	const query = `INSERT INTO transfer_records (id, amount, created_at, source_account, destination_account)
	VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`

	res, err := p.db.ExecContext(ctx, query, rec.ID(), rec.Amount(), rec.Timestamp(), rec.Source(), rec.Destination())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (record.Record, error) {
	const query = `SELECT id, amount, created_at, source_account, destination_account
	FROM transfer_records WHERE id = $1`

	var (
		recID, source, destination string
		amount                     decimal.Decimal
		createdAt                  time.Time
	)
	err := p.db.QueryRowContext(ctx, query, id).Scan(&recID, &amount, &createdAt, &source, &destination)
	if err == sql.ErrNoRows {
		return record.Record{}, ErrNotFound
	}
	if err != nil {
		return record.Record{}, err
	}
	return record.New(recID, amount, createdAt, source, destination), nil
}

func (p *Postgres) Close() error { return p.db.Close() }

var _ Store = (*Postgres)(nil)
