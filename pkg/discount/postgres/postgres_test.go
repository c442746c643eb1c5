package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/discount"
)

const lookupQuery = "SELECT code,percent,min_total,expires_at FROM discount_codes WHERE code=$1"

func TestRegistryLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := New(db)
	ctx := context.Background()
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(lookupQuery)).
		WithArgs("SPRING15").
		WillReturnRows(sqlmock.NewRows([]string{"code", "percent", "min_total", "expires_at"}).
			AddRow("SPRING15", 15, 10000, expires))

	c, ok, err := reg.Lookup(ctx, " spring15")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 15, c.Percent)
	assert.EqualValues(t, 10000, c.MinTotal)
	require.NotNil(t, c.ExpiresAt)
	assert.True(t, c.ExpiresAt.Equal(expires))

	mock.ExpectQuery(regexp.QuoteMeta(lookupQuery)).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"code", "percent", "min_total", "expires_at"}))

	_, ok, err = reg.Lookup(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistryPut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO discount_codes")).
		WithArgs("WELCOME10", int64(10), int64(0), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = New(db).Put(context.Background(), discount.Code{Code: "welcome10", Percent: 10})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
