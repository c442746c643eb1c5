package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront/pkg/cart"
	"storefront/pkg/discount"
	"storefront/pkg/kv"
	"storefront/pkg/logger"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Store     kv.Store
	Validator *discount.Validator
	Policy    cart.ShippingPolicy
	Log       *logger.Logger
	// IdleTimeout closes sessions unused for this long. Zero keeps them
	// until Close.
	IdleTimeout time.Duration
}

type entry struct {
	session *Session
	used    time.Time
}

// Manager hands out one Session per owner, restoring persisted carts on
// first use.
type Manager struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry

	stop    chan struct{}
	stopped chan struct{}
	closing sync.Once
}

// NewManager creates a Manager. With an IdleTimeout it also starts a reaper
// that runs until Close.
func NewManager(deps Deps) *Manager {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	m := &Manager{
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	if deps.IdleTimeout > 0 {
		go m.reap(deps.IdleTimeout / 2)
	} else {
		close(m.stopped)
	}
	return m
}

// Session returns the session for owner, loading its persisted cart if it is
// not already running. Missing or corrupt cart data starts an empty cart;
// only a failing store is reported as an error.
func (m *Manager) Session(ctx context.Context, owner string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[owner]; ok {
		e.used = m.now()
		return e.session, nil
	}
	initial, err := m.restore(ctx, owner)
	if err != nil {
		return nil, err
	}
	s := newSession(owner, initial, m.deps)
	m.sessions[owner] = &entry{session: s, used: m.now()}
	return s, nil
}

// EvictIdle closes the sessions not used within the idle timeout and returns
// how many were closed. Their carts are already persisted and restore on the
// owner's next request.
func (m *Manager) EvictIdle() int {
	if m.deps.IdleTimeout <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.deps.IdleTimeout)
	n := 0
	for owner, e := range m.sessions {
		if e.used.After(cutoff) {
			continue
		}
		// Closed under the lock so a new session for owner cannot restore
		// before the old writer's last persist.
		e.session.Close()
		delete(m.sessions, owner)
		n++
	}
	return n
}

// Len returns the number of running sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) reap(every time.Duration) {
	defer close(m.stopped)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			if n := m.EvictIdle(); n > 0 {
				m.deps.Log.Debug(context.Background(), "idle carts closed", "count", n)
			}
		}
	}
}

// Close stops the reaper and every session.
func (m *Manager) Close() {
	m.closing.Do(func() { close(m.stop) })
	<-m.stopped
	m.mu.Lock()
	defer m.mu.Unlock()
	for owner, e := range m.sessions {
		e.session.Close()
		delete(m.sessions, owner)
	}
}

func (m *Manager) restore(ctx context.Context, owner string) (State, error) {
	empty := NewState(cart.Cart{}, discount.None(), m.deps.Policy)
	raw, ok, err := m.deps.Store.Get(ctx, CartKey(owner))
	if err != nil {
		return State{}, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return empty, nil
	}
	var saved State
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		m.deps.Log.Warn(ctx, "persisted cart corrupt, starting empty", "owner", owner, "error", err)
		return empty, nil
	}
	// Totals are derived; never trust the stored figures.
	st := NewState(saved.Cart, saved.Discount, m.deps.Policy)
	if st.Discount.Success && st.Cart.Len() > 0 {
		d := m.deps.Validator.Apply(ctx, st.Discount.Code, preDiscountTotal(st.Totals))
		st = Reduce(st, DiscountResolved{State: d}, m.deps.Policy)
	}
	return st, nil
}
