// Package checkout owns a shopper's cart and discount as immutable state
// advanced by pure transitions, and serializes those transitions through a
// single writer per session.
package checkout

import (
	"storefront/pkg/cart"
	"storefront/pkg/discount"
)

// State is one immutable snapshot of a checkout session. Totals always
// match Cart and Discount.
type State struct {
	Cart     cart.Cart      `json:"items"`
	Discount discount.State `json:"discount"`
	Totals   cart.Totals    `json:"totals"`
}

// NewState prices c under d.
func NewState(c cart.Cart, d discount.State, policy cart.ShippingPolicy) State {
	if d.Kind == "" {
		d = discount.None()
	}
	return State{Cart: c, Discount: d, Totals: c.Totals(d, policy)}
}

// Action is a transition request. The set of actions is closed.
type Action interface {
	isAction()
}

type (
	// AddItem adds a line, merging with an existing line of the same ID.
	AddItem struct{ Item cart.Item }
	// SetQuantity replaces a line's quantity; zero or less removes it.
	SetQuantity struct {
		ID       string
		Quantity int64
	}
	// RemoveItem drops a line.
	RemoveItem struct{ ID string }
	// ClearCart empties the cart.
	ClearCart struct{}
	// DiscountResolved records the outcome of validating a code.
	DiscountResolved struct{ State discount.State }
	// DiscountCleared removes any discount.
	DiscountCleared struct{}
	// OrderPlaced empties the cart after an order has been stored.
	OrderPlaced struct{ OrderID string }
)

func (AddItem) isAction()          {}
func (SetQuantity) isAction()      {}
func (RemoveItem) isAction()       {}
func (ClearCart) isAction()        {}
func (DiscountResolved) isAction() {}
func (DiscountCleared) isAction()  {}
func (OrderPlaced) isAction()      {}

// Reduce applies a to s and reprices the result. s is not modified. When a
// cart action leaves the cart empty the discount is dropped with it.
func Reduce(s State, a Action, policy cart.ShippingPolicy) State {
	cartAction := true
	switch a := a.(type) {
	case AddItem:
		s.Cart = s.Cart.Add(a.Item)
	case SetQuantity:
		s.Cart = s.Cart.SetQuantity(a.ID, a.Quantity)
	case RemoveItem:
		s.Cart = s.Cart.Remove(a.ID)
	case ClearCart, OrderPlaced:
		s.Cart = s.Cart.Clear()
	case DiscountResolved:
		s.Discount = a.State
		cartAction = false
	case DiscountCleared:
		s.Discount = discount.None()
		cartAction = false
	default:
		return s
	}
	if cartAction && s.Cart.Len() == 0 {
		s.Discount = discount.None()
	}
	return NewState(s.Cart, s.Discount, policy)
}

// changesCart reports whether a can move the subtotal.
func changesCart(a Action) bool {
	switch a.(type) {
	case AddItem, SetQuantity, RemoveItem, ClearCart, OrderPlaced:
		return true
	}
	return false
}

// preDiscountTotal is the amount a code's minimum is checked against.
func preDiscountTotal(t cart.Totals) int64 {
	return t.Subtotal + t.Shipping
}
