// Package postgres stores discount codes in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/pkg/discount"
)

// Schema creates the table the registry reads.
const Schema = `CREATE TABLE IF NOT EXISTS discount_codes (
	code TEXT PRIMARY KEY,
	percent INT NOT NULL,
	min_total BIGINT NOT NULL DEFAULT 0,
	expires_at TIMESTAMPTZ NULL
)`

// Registry reads discount codes from PostgreSQL.
type Registry struct {
	db *sql.DB
}

// New creates a PostgreSQL registry.
func New(db *sql.DB) *Registry {
	return &Registry{db: db}
}

// Migrate creates the discount_codes table if needed.
func (r *Registry) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create discount_codes: %w", err)
	}
	return nil
}

// Lookup fetches code. A missing row is reported as not found, not an error.
func (r *Registry) Lookup(ctx context.Context, code string) (discount.Code, bool, error) {
	var (
		c       discount.Code
		expires sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT code,percent,min_total,expires_at FROM discount_codes WHERE code=$1",
		discount.Normalize(code),
	).Scan(&c.Code, &c.Percent, &c.MinTotal, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return discount.Code{}, false, nil
	}
	if err != nil {
		return discount.Code{}, false, fmt.Errorf("lookup discount code: %w", err)
	}
	if expires.Valid {
		t := expires.Time
		c.ExpiresAt = &t
	}
	return c, true, nil
}

// Put inserts or replaces a code.
func (r *Registry) Put(ctx context.Context, c discount.Code) error {
	var expires sql.NullTime
	if c.ExpiresAt != nil {
		expires = sql.NullTime{Time: *c.ExpiresAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO discount_codes (code,percent,min_total,expires_at) VALUES ($1,$2,$3,$4)
		ON CONFLICT (code) DO UPDATE SET percent=EXCLUDED.percent, min_total=EXCLUDED.min_total, expires_at=EXCLUDED.expires_at`,
		discount.Normalize(c.Code), c.Percent, c.MinTotal, expires,
	)
	if err != nil {
		return fmt.Errorf("put discount code: %w", err)
	}
	return nil
}
