// Package kv defines the string-keyed store used for client-side state such
// as override sets and persisted carts.
package kv

import "context"

// Store is a synchronous key-value store. Get reports ok=false for a key that
// was never set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
