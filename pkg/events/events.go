// Package events describes order lifecycle notifications published to other
// services.
package events

import (
	"context"
	"time"

	"storefront/pkg/order"
)

// Type names an order event.
type Type string

const (
	TypeOrderPlaced   Type = "order.placed"
	TypeStatusChanged Type = "order.status_changed"
	TypeOrderMarked   Type = "order.marked"
)

// Markers carried by TypeOrderMarked events.
const (
	MarkerCancelled = "cancelled"
	MarkerExchange  = "exchange"
	MarkerRefund    = "refund"
)

// OrderEvent is the payload written for every event. Marker is set only for
// TypeOrderMarked.
type OrderEvent struct {
	Type          Type                `json:"type"`
	OrderID       string              `json:"orderId"`
	Owner         string              `json:"owner"`
	Status        order.Status        `json:"status"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	Total         int64               `json:"total"`
	DiscountCode  string              `json:"discountCode,omitempty"`
	Marker        string              `json:"marker,omitempty"`
	At            time.Time           `json:"at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }

// New builds an event of type t describing o.
func New(t Type, o order.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          t,
		OrderID:       o.ID,
		Owner:         o.Owner,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Totals.Total,
		DiscountCode:  o.DiscountCode,
		At:            at.UTC(),
	}
}

// Marked builds a TypeOrderMarked event.
func Marked(o order.Order, marker string, at time.Time) OrderEvent {
	e := New(TypeOrderMarked, o, at)
	e.Marker = marker
	return e
}
