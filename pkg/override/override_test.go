package override

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/kv"
	"storefront/pkg/kv/memory"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}

func (brokenKV) Set(context.Context, string, string) error { return nil }

func TestLoadEmpty(t *testing.T) {
	s := NewStore(memory.New(), nil)
	sets := s.Load(context.Background())
	assert.Empty(t, sets.Cancelled)
	assert.Empty(t, sets.Exchange)
	assert.Empty(t, sets.Refund)
}

func TestLoadCorruptFailsSafe(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyCancelled, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyExchange, "null"))
	require.NoError(t, kv.Set(ctx, KeyRefund, `["o-3"]`))

	sets := NewStore(kv, nil).Load(ctx)
	assert.Empty(t, sets.Cancelled)
	assert.Empty(t, sets.Exchange)
	assert.Equal(t, IDs{"o-3"}, sets.Refund)

	sets = NewStore(brokenKV{}, nil).Load(ctx)
	assert.Empty(t, sets.Cancelled)
}

func TestMarkPersistsIndependently(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := NewStore(kv, nil)

	require.NoError(t, s.MarkCancelled(ctx, "o-1"))
	require.NoError(t, s.MarkCancelled(ctx, "o-2"))
	require.NoError(t, s.MarkCancelled(ctx, "o-1"))
	require.NoError(t, s.MarkExchange(ctx, "o-2"))
	require.NoError(t, s.MarkRefund(ctx, "o-4"))

	raw, ok, err := kv.Get(ctx, KeyCancelled)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["o-1","o-2"]`, raw)

	sets := NewStore(kv, nil).Load(ctx)
	assert.Equal(t, IDs{"o-1", "o-2"}, sets.Cancelled)
	assert.Equal(t, IDs{"o-2"}, sets.Exchange)
	assert.Equal(t, IDs{"o-4"}, sets.Refund)

	assert.True(t, sets.IsCancelled("o-2"))
	assert.True(t, sets.ExchangeRequested("o-2"))
	assert.False(t, sets.RefundRequested("o-2"))
}

func TestMarkOverwritesCorruptSet(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyRefund, "garbage"))

	s := NewStore(kv, nil)
	require.NoError(t, s.MarkRefund(ctx, "o-7"))
	assert.Equal(t, IDs{"o-7"}, s.Load(ctx).Refund)
}

// readOnlyKV accepts writes but has lost its reads.
type readOnlyKV struct{ kv.Store }

func (readOnlyKV) Set(context.Context, string, string) error { return errors.New("read-only") }

func TestMarkReportsPersistenceError(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := NewStore(readOnlyKV{store}, nil)
	err := s.MarkCancelled(ctx, "o-1")
	assert.ErrorContains(t, err, "persist cancelledOrders")
}

// flakyKV fails the next n reads and passes everything else through.
type flakyKV struct {
	kv.Store
	failReads int
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failReads > 0 {
		f.failReads--
		return "", false, errors.New("timeout")
	}
	return f.Store.Get(ctx, key)
}

func TestMarkKeepsSetWhenReadFails(t *testing.T) {
	ctx := context.Background()
	store := &flakyKV{Store: memory.New()}
	s := NewStore(store, nil)
	require.NoError(t, s.MarkCancelled(ctx, "o-1"))
	require.NoError(t, s.MarkCancelled(ctx, "o-2"))

	store.failReads = 1
	err := s.MarkCancelled(ctx, "o-3")
	require.ErrorContains(t, err, "load cancelledOrders")
	assert.ErrorContains(t, err, "timeout")
	assert.Equal(t, IDs{"o-1", "o-2"}, s.Load(ctx).Cancelled)

	require.NoError(t, s.MarkCancelled(ctx, "o-3"))
	assert.Equal(t, IDs{"o-1", "o-2", "o-3"}, s.Load(ctx).Cancelled)
}
