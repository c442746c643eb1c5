package cart

import (
	"encoding/json"

	"storefront/pkg/discount"
)

// Cart is an immutable, ordered set of line items keyed by Item.ID. Every
// mutating method returns a new Cart and leaves the receiver untouched.
type Cart struct {
	items []Item
}

// New builds a cart from items, merging lines that share an ID.
func New(items ...Item) Cart {
	var c Cart
	for _, it := range items {
		c = c.Add(it)
	}
	return c
}

// Items returns a copy of the cart lines in insertion order.
func (c Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of distinct lines.
func (c Cart) Len() int { return len(c.items) }

// Get returns the line with the given id.
func (c Cart) Get(id string) (Item, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return Item{}, false
}

// Add puts it into the cart. An existing line with the same ID has its
// quantity increased instead of being duplicated. A quantity below one adds
// a single unit.
func (c Cart) Add(it Item) Cart {
	if it.ID == "" {
		it.ID = ItemID(it.ProductID, it.Size)
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	items := c.Items()
	if i := c.index(it.ID); i >= 0 {
		items[i].Quantity = addSat(items[i].Quantity, it.Quantity)
		return Cart{items: items}
	}
	return Cart{items: append(items, it)}
}

// SetQuantity replaces the quantity of line id. A quantity of zero or less
// removes the line; an unknown id leaves the cart unchanged.
func (c Cart) SetQuantity(id string, qty int64) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	if qty <= 0 {
		return c.Remove(id)
	}
	items := c.Items()
	items[i].Quantity = qty
	return Cart{items: items}
}

// Remove drops line id.
func (c Cart) Remove(id string) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	items := make([]Item, 0, len(c.items)-1)
	items = append(items, c.items[:i]...)
	items = append(items, c.items[i+1:]...)
	return Cart{items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart { return Cart{} }

// Totals prices the cart.
func (c Cart) Totals(d discount.State, policy ShippingPolicy) Totals {
	return ComputeTotals(c.items, d, policy)
}

func (c Cart) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the cart as its array of lines.
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

// UnmarshalJSON decodes an array of lines, merging duplicates.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	merged := Cart{}
	for _, it := range items {
		if it.ID == "" {
			it.ID = ItemID(it.ProductID, it.Size)
		}
		// Persisted lines keep their recorded quantity, even a malformed one,
		// so pricing treats them as contributing nothing.
		if i := merged.index(it.ID); i >= 0 {
			if it.Quantity > 0 {
				merged.items[i].Quantity = addSat(merged.items[i].Quantity, it.Quantity)
			}
			continue
		}
		merged.items = append(merged.items, it)
	}
	*c = merged
	return nil
}
