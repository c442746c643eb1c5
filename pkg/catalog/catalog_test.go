package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *Memory {
	return NewMemory([]Product{
		{ID: "p1", Name: "Linen Shirt", Price: 39000},
		{ID: "p2", Name: "Wide Linen Pants", Price: 52000},
		{ID: "p3", Name: "한복 Jacket", Price: 128000},
		{ID: "p1", Name: "Duplicate", Price: 1},
	})
}

func TestFindByID(t *testing.T) {
	c := testCatalog()
	p, ok := c.FindByID(context.Background(), "p1")
	assert.True(t, ok)
	assert.Equal(t, "Linen Shirt", p.Name)

	_, ok = c.FindByID(context.Background(), "nope")
	assert.False(t, ok)
}

func TestFindByName(t *testing.T) {
	c := testCatalog()
	ctx := context.Background()

	got := c.FindByName(ctx, "LINEN")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p2", got[1].ID)
	}

	got = c.FindByName(ctx, "한복")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "p3", got[0].ID)
	}

	for _, q := range []string{"  ", "socks"} {
		got = c.FindByName(ctx, q)
		assert.NotNil(t, got, q)
		assert.Empty(t, got, q)
	}
}
