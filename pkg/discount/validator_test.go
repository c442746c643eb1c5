package discount_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/pkg/discount"
	"storefront/pkg/discount/memory"
)

type failingRegistry struct{}

func (failingRegistry) Lookup(context.Context, string) (discount.Code, bool, error) {
	return discount.Code{}, false, errors.New("connection refused")
}

func newValidator() *discount.Validator {
	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
	reg := memory.New(
		discount.Code{Code: "WELCOME10", Percent: 10},
		discount.Code{Code: "big20", Percent: 20, MinTotal: 50000, ExpiresAt: &future},
		discount.Code{Code: "OLD50", Percent: 50, ExpiresAt: &past},
		discount.Code{Code: "BROKEN", Percent: 150},
	)
	return discount.NewValidator(reg, nil)
}

func TestApplyValidCode(t *testing.T) {
	v := newValidator()
	got := v.Apply(context.Background(), "WELCOME10", 28000)
	assert.Equal(t, discount.State{Kind: discount.KindPercentage, Value: 10, Code: "WELCOME10", Success: true}, got)
}

func TestApplyNormalizesCode(t *testing.T) {
	v := newValidator()
	for _, in := range []string{"welcome10", "  Welcome10 ", "ＷＥＬＣＯＭＥ１０"} {
		got := v.Apply(context.Background(), in, 0)
		assert.True(t, got.Success, in)
		assert.Equal(t, "WELCOME10", got.Code, in)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	v := newValidator()
	first := v.Apply(context.Background(), "WELCOME10", 10000)
	second := v.Apply(context.Background(), "WELCOME10", 10000)
	assert.Equal(t, first, second)
}

func TestApplyRejections(t *testing.T) {
	v := newValidator()
	tests := []struct {
		name  string
		code  string
		total int64
		want  string
	}{
		{"unknown", "BADCODE", 10000, discount.ErrMsgInvalidCode},
		{"empty", "   ", 10000, discount.ErrMsgEmptyCode},
		{"expired", "OLD50", 10000, discount.ErrMsgExpiredCode},
		{"below minimum", "BIG20", 49999, discount.ErrMsgBelowMinimum},
		{"out of range value", "BROKEN", 10000, discount.ErrMsgInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Apply(context.Background(), tt.code, tt.total)
			assert.Equal(t, discount.State{Kind: discount.KindNone, Error: tt.want}, got)
			assert.False(t, got.Success && got.Error != "")
		})
	}
}

func TestApplyMinimumMet(t *testing.T) {
	v := newValidator()
	got := v.Apply(context.Background(), "BIG20", 50000)
	assert.True(t, got.Success)
	assert.EqualValues(t, 20, got.Value)
}

func TestApplyRegistryFailure(t *testing.T) {
	v := discount.NewValidator(failingRegistry{}, nil)
	got := v.Apply(context.Background(), "WELCOME10", 10000)
	assert.Equal(t, discount.KindNone, got.Kind)
	assert.Equal(t, discount.ErrMsgUnavailable, got.Error)
	assert.False(t, got.Success)
}

func TestClear(t *testing.T) {
	v := newValidator()
	_ = v.Apply(context.Background(), "WELCOME10", 10000)
	assert.Equal(t, discount.State{Kind: discount.KindNone}, v.Clear())
}

func TestAmount(t *testing.T) {
	pct := func(v int64) discount.State { return discount.State{Kind: discount.KindPercentage, Value: v} }
	assert.EqualValues(t, 2500, pct(10).Amount(25000))
	assert.EqualValues(t, 333, pct(10).Amount(3339))
	assert.EqualValues(t, 25000, pct(100).Amount(25000))
	assert.EqualValues(t, 25000, pct(250).Amount(25000))
	assert.EqualValues(t, 0, pct(10).Amount(-5))
	assert.EqualValues(t, 0, discount.None().Amount(25000))
	assert.EqualValues(t, 0, discount.State{}.Amount(25000))
}
