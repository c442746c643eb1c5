// Package order models placed orders and derives their display status.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/pkg/cart"
)

// Status is the canonical order status recorded by order management.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
)

// ParseStatus validates s as a canonical status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusPaid, StatusPreparing, StatusShipping, StatusDelivered:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) String() string { return string(s) }

// PaymentMethod is the method recorded by the payment collaborator.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bankTransfer"
)

// Order represents a placed customer order.
type Order struct {
	ID            string        `json:"id"`
	Owner         string        `json:"owner"`
	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Items         []cart.Item   `json:"items"`
	Totals        cart.Totals   `json:"totals"`
	DiscountCode  string        `json:"discountCode,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Repository defines behavior for persisting orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, owner string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
}

var (
	// ErrNotFound indicates the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidStatus indicates a status outside the canonical set.
	ErrInvalidStatus = errors.New("invalid order status")
)
