package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesSameProductAndSize(t *testing.T) {
	c := New()
	c = c.Add(Item{ProductID: "p1", Size: "M", Price: 10000, Quantity: 1})
	c = c.Add(Item{ProductID: "p1", Size: "L", Price: 10000, Quantity: 1})
	c = c.Add(Item{ProductID: "p1", Size: "M", Price: 10000, Quantity: 2})

	require.Equal(t, 2, c.Len())
	m, ok := c.Get("p1_M")
	require.True(t, ok)
	assert.EqualValues(t, 3, m.Quantity)

	items := c.Items()
	assert.Equal(t, "p1_M", items[0].ID)
	assert.Equal(t, "p1_L", items[1].ID)
}

func TestAddDefaultsQuantity(t *testing.T) {
	c := New().Add(Item{ProductID: "p1", Size: "S", Price: 100})
	it, _ := c.Get("p1_S")
	assert.EqualValues(t, 1, it.Quantity)
}

func TestCartIsImmutable(t *testing.T) {
	base := New(Item{ProductID: "p1", Size: "M", Price: 100, Quantity: 1})
	_ = base.Add(Item{ProductID: "p1", Size: "M", Quantity: 5})
	_ = base.SetQuantity("p1_M", 9)
	_ = base.Remove("p1_M")
	_ = base.Clear()

	it, ok := base.Get("p1_M")
	require.True(t, ok)
	assert.EqualValues(t, 1, it.Quantity)

	items := base.Items()
	items[0].Quantity = 42
	it, _ = base.Get("p1_M")
	assert.EqualValues(t, 1, it.Quantity)
}

func TestSetQuantityAndRemove(t *testing.T) {
	c := New(
		Item{ProductID: "p1", Size: "M", Price: 100, Quantity: 1},
		Item{ProductID: "p2", Size: "M", Price: 200, Quantity: 1},
	)

	c = c.SetQuantity("p2_M", 4)
	it, _ := c.Get("p2_M")
	assert.EqualValues(t, 4, it.Quantity)

	assert.Equal(t, c, c.SetQuantity("missing", 3))

	c = c.SetQuantity("p1_M", 0)
	assert.Equal(t, 1, c.Len())

	c = c.Remove("p2_M")
	assert.Equal(t, 0, c.Len())
}

func TestCartJSON(t *testing.T) {
	c := New(
		Item{ProductID: "p1", Size: "M", Name: "Linen shirt", Price: 39000, Quantity: 2},
		Item{ProductID: "p2", Size: "S", Name: "Wide pants", Price: 52000, Quantity: 1},
	)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back Cart
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.Items(), back.Items())
}

func TestCartUnmarshalMergesDuplicates(t *testing.T) {
	var c Cart
	require.NoError(t, json.Unmarshal([]byte(`[
		{"productId":"p1","size":"M","price":100,"quantity":1},
		{"id":"p1_M","productId":"p1","size":"M","price":100,"quantity":2}
	]`), &c))
	require.Equal(t, 1, c.Len())
	it, _ := c.Get("p1_M")
	assert.EqualValues(t, 3, it.Quantity)
}
