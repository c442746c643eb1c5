// Package override persists the order ids a shopper has marked cancelled or
// requested an exchange or refund for. These markers live beside the
// canonical order status and never change it.
package override

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/pkg/kv"
	"storefront/pkg/logger"
)

// Persistence keys. Each value is a JSON array of order ids.
const (
	KeyCancelled = "cancelledOrders"
	KeyExchange  = "exchangeOrders"
	KeyRefund    = "refundOrders"
)

// IDs is an insertion-ordered set of order ids.
type IDs []string

// Has reports whether id is in the set.
func (s IDs) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s IDs) with(id string) (IDs, bool) {
	if s.Has(id) {
		return s, false
	}
	out := make(IDs, len(s), len(s)+1)
	copy(out, s)
	return append(out, id), true
}

// Sets are the three override sets, loaded as plain membership lists.
type Sets struct {
	Cancelled IDs `json:"cancelled"`
	Exchange  IDs `json:"exchange"`
	Refund    IDs `json:"refund"`
}

// IsCancelled reports whether orderID has been marked cancelled.
func (s Sets) IsCancelled(orderID string) bool { return s.Cancelled.Has(orderID) }

// ExchangeRequested reports whether an exchange was requested for orderID.
func (s Sets) ExchangeRequested(orderID string) bool { return s.Exchange.Has(orderID) }

// RefundRequested reports whether a refund was requested for orderID.
func (s Sets) RefundRequested(orderID string) bool { return s.Refund.Has(orderID) }

// Store reads and writes override sets through a kv.Store. It does no
// locking: callers serialize the Mark methods.
type Store struct {
	kv  kv.Store
	log *logger.Logger
}

// NewStore returns a Store persisting to s.
func NewStore(s kv.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: s, log: log}
}

// Load returns the persisted sets. A set whose data is missing, unreadable or
// corrupt loads as empty; Load itself never fails.
func (s *Store) Load(ctx context.Context) Sets {
	return Sets{
		Cancelled: s.loadSet(ctx, KeyCancelled),
		Exchange:  s.loadSet(ctx, KeyExchange),
		Refund:    s.loadSet(ctx, KeyRefund),
	}
}

// MarkCancelled adds orderID to the cancelled set.
func (s *Store) MarkCancelled(ctx context.Context, orderID string) error {
	return s.mark(ctx, KeyCancelled, orderID)
}

// MarkExchange adds orderID to the exchange-requested set.
func (s *Store) MarkExchange(ctx context.Context, orderID string) error {
	return s.mark(ctx, KeyExchange, orderID)
}

// MarkRefund adds orderID to the refund-requested set.
func (s *Store) MarkRefund(ctx context.Context, orderID string) error {
	return s.mark(ctx, KeyRefund, orderID)
}

// mark adds orderID to the set under key. A failed read aborts the write so
// the stored set is never replaced by a partial one. Corrupt data cannot be
// recovered and is overwritten.
func (s *Store) mark(ctx context.Context, key, orderID string) error {
	cur, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	ids, added := cur.with(orderID)
	if !added {
		return nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	s.log.Info(ctx, "order override recorded", "set", key, "order_id", orderID)
	return nil
}

func (s *Store) loadSet(ctx context.Context, key string) IDs {
	ids, err := s.read(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "override set unreadable, using empty set", "set", key, "error", err)
		return IDs{}
	}
	return ids
}

// read returns the set under key. Only a failing store is an error; missing
// or corrupt data reads as empty.
func (s *Store) read(ctx context.Context, key string) (IDs, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" || raw == "null" {
		return IDs{}, nil
	}
	var ids IDs
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn(ctx, "override set corrupt, using empty set", "set", key, "error", err)
		return IDs{}, nil
	}
	return ids, nil
}
