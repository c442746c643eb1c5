package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/cart"
	"storefront/pkg/order"
)

var cols = []string{"id", "owner", "status", "payment_method", "items", "totals", "discount_code", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	o := order.Order{
		ID:            "o-1",
		Owner:         "kim",
		Status:        order.StatusPending,
		PaymentMethod: order.PaymentCard,
		Items:         []cart.Item{{ID: "p1_M", ProductID: "p1", Price: 10000, Quantity: 2}},
		Totals:        cart.Totals{Subtotal: 20000, Shipping: 3000, Total: 23000, TotalQuantity: 2},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders (" + columns + ")")).
		WithArgs("o-1", "kim", "pending", "card", sqlmock.AnyArg(), sqlmock.AnyArg(), "", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, New(db).Create(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM orders WHERE id=$1")).
		WithArgs("o-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"o-1", "kim", "paid", "card",
			[]byte(`[{"id":"p1_M","productId":"p1","price":10000,"quantity":2}]`),
			[]byte(`{"subtotal":20000,"shipping":3000,"discount":0,"total":23000,"totalQuantity":2}`),
			"", now, now))

	o, err := repo.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, o.Status)
	require.Len(t, o.Items, 1)
	assert.EqualValues(t, 10000, o.Items[0].Price)
	assert.EqualValues(t, 23000, o.Totals.Total)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM orders WHERE id=$1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := New(db)
	repo.now = func() time.Time { return now }

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1")).
		WithArgs("o-1", "shipping", now).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"o-1", "kim", "shipping", "card", []byte(`[]`), []byte(`{}`), "", now, now))

	o, err := repo.UpdateStatus(context.Background(), "o-1", order.StatusShipping)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipping, o.Status)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status=$2")).
		WithArgs("gone", "shipping", now).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.UpdateStatus(context.Background(), "gone", order.StatusShipping)
	assert.ErrorIs(t, err, order.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
