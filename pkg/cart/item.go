// Package cart holds cart line items and the pure totals computation used by
// checkout.
package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Item is a single cart line. Two lines with the same product and size share
// an ID and are merged.
type Item struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color,omitempty"`
	Image     string `json:"image,omitempty"`
	Quantity  int64  `json:"quantity"`
}

// ItemID returns the composite line identity for a product in a given size.
func ItemID(productID, size string) string {
	return productID + "_" + size
}

// UnmarshalJSON decodes an item from persisted cart state. Price and quantity
// that are missing, null or not numbers decode to zero instead of failing.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var raw struct {
		plain
		Price    json.RawMessage `json:"price"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = Item(raw.plain)
	it.Price = lenientInt(raw.Price)
	it.Quantity = lenientInt(raw.Quantity)
	return nil
}

func lenientInt(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}
