package cart

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"storefront/pkg/discount"
)

func genItem() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(-1000, 1_000_000),
		gen.Int64Range(-3, 20),
	).Map(func(vs []any) Item {
		return Item{ProductID: "p", Price: vs[0].(int64), Quantity: vs[1].(int64)}
	})
}

// Property: subtotal is the sum of price*quantity over well-formed lines,
// total is never negative and the discount never exceeds subtotal+shipping.
func TestComputeTotalsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("totals invariants hold", prop.ForAll(
		func(items []Item, pct int64, fee int64) bool {
			d := discount.State{Kind: discount.KindPercentage, Value: pct}
			got := ComputeTotals(items, d, ShippingPolicy{Fee: fee})

			var want int64
			for _, it := range items {
				if it.Price > 0 && it.Quantity > 0 {
					want += it.Price * it.Quantity
				}
			}
			return got.Subtotal == want &&
				got.Subtotal >= 0 &&
				got.Total >= 0 &&
				got.Discount <= got.Subtotal+got.Shipping &&
				got.Total == got.Subtotal+got.Shipping-got.Discount
		},
		gen.SliceOf(genItem()),
		gen.Int64Range(0, 150),
		gen.Int64Range(0, 10000),
	))

	properties.Property("discount recomputes from the current subtotal", prop.ForAll(
		func(price int64, qty int64, extra int64, pct int64) bool {
			d := discount.State{Kind: discount.KindPercentage, Value: pct}
			c := New(Item{ProductID: "p", Size: "M", Price: price, Quantity: qty})
			before := c.Totals(d, ShippingPolicy{})
			after := c.SetQuantity(ItemID("p", "M"), qty+extra).Totals(d, ShippingPolicy{})
			return before.Discount == before.Subtotal*pct/100 &&
				after.Discount == after.Subtotal*pct/100
		},
		gen.Int64Range(1, 1_000_000),
		gen.Int64Range(1, 10),
		gen.Int64Range(1, 10),
		gen.Int64Range(0, 100),
	))

	properties.Property("computation is deterministic", prop.ForAll(
		func(items []Item, pct int64) bool {
			d := discount.State{Kind: discount.KindPercentage, Value: pct}
			return ComputeTotals(items, d, DefaultShipping) == ComputeTotals(items, d, DefaultShipping)
		},
		gen.SliceOf(genItem()),
		gen.Int64Range(0, 100),
	))

	properties.TestingRun(t)
}
