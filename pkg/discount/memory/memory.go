// Package memory implements an in-memory discount code registry.
package memory

import (
	"context"
	"sync"

	"storefront/pkg/discount"
)

// Registry holds codes keyed by their normalized form.
type Registry struct {
	mu    sync.RWMutex
	codes map[string]discount.Code
}

// New creates a registry seeded with codes.
func New(codes ...discount.Code) *Registry {
	r := &Registry{codes: make(map[string]discount.Code, len(codes))}
	for _, c := range codes {
		r.Put(c)
	}
	return r
}

// Put adds or replaces a code.
func (r *Registry) Put(c discount.Code) {
	c.Code = discount.Normalize(c.Code)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[c.Code] = c
}

// Lookup returns the code registered under code.
func (r *Registry) Lookup(ctx context.Context, code string) (discount.Code, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codes[discount.Normalize(code)]
	return c, ok, nil
}
