// Package catalog provides read-only product lookup.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Product is the catalog entry a cart line is built from.
type Product struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Price    int64    `yaml:"price" json:"price"`
	Category string   `yaml:"category" json:"category,omitempty"`
	Colors   []string `yaml:"colors" json:"colors,omitempty"`
	Sizes    []string `yaml:"sizes" json:"sizes,omitempty"`
	Image    string   `yaml:"image" json:"image,omitempty"`
}

// Catalog looks products up. Implementations never mutate products.
type Catalog interface {
	FindByID(ctx context.Context, id string) (Product, bool)
	FindByName(ctx context.Context, name string) []Product
}

// Memory is an immutable Catalog built once from a product list.
type Memory struct {
	products []Product
	byID     map[string]int
	folded   []string
}

// NewMemory builds a catalog. Later duplicates of an id are ignored.
func NewMemory(products []Product) *Memory {
	m := &Memory{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if _, dup := m.byID[p.ID]; dup {
			continue
		}
		m.byID[p.ID] = len(m.products)
		m.products = append(m.products, p)
		m.folded = append(m.folded, fold(p.Name))
	}
	return m
}

// FindByID returns the product with id.
func (m *Memory) FindByID(ctx context.Context, id string) (Product, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Product{}, false
	}
	return m.products[i], true
}

// FindByName returns products whose name contains name, ignoring case, in
// catalog order. A blank name matches nothing. The result is never nil.
func (m *Memory) FindByName(ctx context.Context, name string) []Product {
	out := []Product{}
	q := fold(name)
	if q == "" {
		return out
	}
	for i, n := range m.folded {
		if strings.Contains(n, q) {
			out = append(out, m.products[i])
		}
	}
	return out
}

func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}
