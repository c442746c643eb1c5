package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/cart"
	"storefront/pkg/discount"
	"storefront/pkg/kv"
	"storefront/pkg/logger"
	"storefront/pkg/order"
)

var (
	// ErrEmptyCart is returned when placing an order from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSessionClosed is returned by calls made after Close.
	ErrSessionClosed = errors.New("checkout session closed")
)

// CartKey is the kv key a shopper's cart is persisted under.
func CartKey(owner string) string { return "cart:" + owner }

type request struct {
	ctx   context.Context
	run   func(ctx context.Context, cur State) (State, error)
	reply chan result
}

type result struct {
	state State
	err   error
}

// Session is one shopper's checkout. A single goroutine applies every
// transition and persists the result before publishing it; Snapshot never
// observes a partially applied change.
type Session struct {
	owner     string
	policy    cart.ShippingPolicy
	validator *discount.Validator
	store     kv.Store
	log       *logger.Logger

	state    atomic.Pointer[State]
	requests chan request
	done     chan struct{}
	stopped  chan struct{}
	closing  sync.Once
}

func newSession(owner string, initial State, deps Deps) *Session {
	s := &Session{
		owner:     owner,
		policy:    deps.Policy,
		validator: deps.Validator,
		store:     deps.Store,
		log:       deps.Log.With("owner", owner),
		requests:  make(chan request),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	s.state.Store(&initial)
	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			cur := *s.state.Load()
			next, err := req.run(req.ctx, cur)
			if err == nil {
				err = s.persist(req.ctx, next)
			}
			if err != nil {
				req.reply <- result{state: cur, err: err}
				continue
			}
			s.state.Store(&next)
			req.reply <- result{state: next}
		}
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	return *s.state.Load()
}

// Dispatch applies a and returns the resulting state. When a changes the
// cart while a code is applied, the code is validated again against the new
// total.
func (s *Session) Dispatch(ctx context.Context, a Action) (State, error) {
	return s.do(ctx, func(ctx context.Context, cur State) (State, error) {
		return s.transition(ctx, cur, a), nil
	})
}

// ApplyDiscountCode validates code against the current pre-discount total and
// records the outcome. A rejected code clears any discount in effect; the
// rejection is reported in State.Discount.Error, not as an error.
func (s *Session) ApplyDiscountCode(ctx context.Context, code string) (State, error) {
	return s.do(ctx, func(ctx context.Context, cur State) (State, error) {
		d := s.validator.Apply(ctx, code, preDiscountTotal(cur.Totals))
		return Reduce(cur, DiscountResolved{State: d}, s.policy), nil
	})
}

// ClearDiscountCode removes any discount.
func (s *Session) ClearDiscountCode(ctx context.Context) (State, error) {
	return s.Dispatch(ctx, DiscountCleared{})
}

// PlaceOrder stores the current cart as a pending order and empties the cart.
// Nothing is cleared if the repository rejects the order.
func (s *Session) PlaceOrder(ctx context.Context, repo order.Repository, method order.PaymentMethod) (order.Order, error) {
	var placed order.Order
	_, err := s.do(ctx, func(ctx context.Context, cur State) (State, error) {
		if cur.Cart.Len() == 0 || cur.Totals.TotalQuantity == 0 {
			return cur, ErrEmptyCart
		}
		now := time.Now().UTC()
		o := order.Order{
			ID:            uuid.NewString(),
			Owner:         s.owner,
			Status:        order.StatusPending,
			PaymentMethod: method,
			Items:         cur.Cart.Items(),
			Totals:        cur.Totals,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if cur.Discount.Success {
			o.DiscountCode = cur.Discount.Code
		}
		if err := repo.Create(ctx, o); err != nil {
			return cur, fmt.Errorf("store order: %w", err)
		}
		placed = o
		s.log.Info(ctx, "order placed", "order_id", o.ID, "total", o.Totals.Total)
		return Reduce(cur, OrderPlaced{OrderID: o.ID}, s.policy), nil
	})
	if err != nil {
		return order.Order{}, err
	}
	return placed, nil
}

// Close stops the session's writer. Pending calls fail with
// ErrSessionClosed.
func (s *Session) Close() {
	s.closing.Do(func() { close(s.done) })
	<-s.stopped
}

func (s *Session) transition(ctx context.Context, cur State, a Action) State {
	next := Reduce(cur, a, s.policy)
	if changesCart(a) && next.Discount.Success && next.Cart.Len() > 0 {
		d := s.validator.Apply(ctx, next.Discount.Code, preDiscountTotal(next.Totals))
		next = Reduce(next, DiscountResolved{State: d}, s.policy)
	}
	return next
}

func (s *Session) do(ctx context.Context, run func(context.Context, State) (State, error)) (State, error) {
	req := request{ctx: ctx, run: run, reply: make(chan result, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return State{}, ErrSessionClosed
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
	res := <-req.reply
	return res.state, res.err
}

func (s *Session) persist(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, CartKey(s.owner), string(data)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
