package cart

import (
	"math"

	"storefront/pkg/discount"
)

// ShippingPolicy decides the delivery fee for a subtotal. FreeOver of zero
// disables the free-shipping threshold.
type ShippingPolicy struct {
	Fee      int64 `yaml:"fee" json:"fee"`
	FreeOver int64 `yaml:"free_over" json:"freeOver"`
}

// DefaultShipping is a flat fee with no free-shipping threshold.
var DefaultShipping = ShippingPolicy{Fee: 3000}

// Charge returns the shipping fee owed on subtotal.
func (p ShippingPolicy) Charge(subtotal int64) int64 {
	if subtotal <= 0 || p.Fee <= 0 {
		return 0
	}
	if p.FreeOver > 0 && subtotal >= p.FreeOver {
		return 0
	}
	return p.Fee
}

// Totals are the derived checkout figures for a cart. All amounts are in
// currency minor units.
type Totals struct {
	Subtotal      int64 `json:"subtotal"`
	Shipping      int64 `json:"shipping"`
	Discount      int64 `json:"discount"`
	Total         int64 `json:"total"`
	TotalQuantity int64 `json:"totalQuantity"`
}

// ComputeTotals prices items under the given discount and shipping policy.
// Lines with a non-positive price or quantity contribute nothing; the
// discount never exceeds subtotal plus shipping and the total is never
// negative.
func ComputeTotals(items []Item, d discount.State, policy ShippingPolicy) Totals {
	var t Totals
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		t.TotalQuantity = addSat(t.TotalQuantity, it.Quantity)
		if it.Price <= 0 {
			continue
		}
		t.Subtotal = addSat(t.Subtotal, mulSat(it.Price, it.Quantity))
	}

	t.Shipping = policy.Charge(t.Subtotal)
	gross := addSat(t.Subtotal, t.Shipping)

	t.Discount = d.Amount(t.Subtotal)
	if t.Discount > gross {
		t.Discount = gross
	}
	if t.Discount < 0 {
		t.Discount = 0
	}

	t.Total = gross - t.Discount
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}

// addSat and mulSat operate on non-negative operands and saturate at
// MaxInt64.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSat(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
