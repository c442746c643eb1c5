package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/pkg/order"
)

// Schema creates the orders table. Items and totals are stored as JSON.
const Schema = `CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	status TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	items JSONB NOT NULL,
	totals JSONB NOT NULL,
	discount_code TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

const columns = "id,owner,status,payment_method,items,totals,discount_code,created_at,updated_at"

// Repository persists orders in PostgreSQL.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Migrate creates the orders table if needed.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create orders: %w", err)
	}
	return nil
}

// Create inserts a new order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	totals, err := json.Marshal(o.Totals)
	if err != nil {
		return fmt.Errorf("encode totals: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO orders ("+columns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)",
		o.ID, o.Owner, string(o.Status), string(o.PaymentMethod), string(items), string(totals), o.DiscountCode, o.CreatedAt, o.UpdatedAt)
	return err
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM orders WHERE id=$1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	return o, err
}

// List fetches the orders placed by owner, newest first.
func (r *Repository) List(ctx context.Context, owner string) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM orders WHERE owner=$1 ORDER BY created_at DESC, id", owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus sets the canonical status of an existing order.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1 RETURNING "+columns,
		id, string(status), r.now().UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	return o, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (order.Order, error) {
	var (
		o              order.Order
		status, method string
		items, totals  []byte
	)
	if err := s.Scan(&o.ID, &o.Owner, &status, &method, &items, &totals, &o.DiscountCode, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return order.Order{}, err
	}
	o.Status = order.Status(status)
	o.PaymentMethod = order.PaymentMethod(method)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("decode items of %s: %w", o.ID, err)
	}
	if err := json.Unmarshal(totals, &o.Totals); err != nil {
		return order.Order{}, fmt.Errorf("decode totals of %s: %w", o.ID, err)
	}
	return o, nil
}
