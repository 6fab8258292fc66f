package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedProduct(id string, stock int) Product {
	return Product{ID: id, Name: id, Price: dec("10"), Stock: &stock}
}

func TestCartAdd_Accumulates(t *testing.T) {
	var cart Cart
	p := limitedProduct("p1", 10)

	require.NoError(t, cart.Add(p, 2))
	require.NoError(t, cart.Add(p, 3))

	assert.Equal(t, 5, cart.Quantity("p1"))
	assert.Len(t, cart.Items, 1, "one line item per product")
}

func TestCartAdd_RejectsBeyondStock(t *testing.T) {
	var cart Cart
	p := limitedProduct("p1", 3)

	require.NoError(t, cart.Add(p, 3))

	err := cart.Add(p, 1)
	var limitErr *StockLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 3, limitErr.Available, "failure names the available quantity")
	assert.Equal(t, 3, cart.Quantity("p1"), "rejected add leaves cart unchanged")
}

func TestCartAdd_UnlimitedWithoutStock(t *testing.T) {
	var cart Cart
	p := Product{ID: "p1", Price: dec("10")}

	require.NoError(t, cart.Add(p, 1000))
	assert.Equal(t, 1000, cart.Quantity("p1"))
}

func TestCartSetQuantity_ClampsToCeiling(t *testing.T) {
	var cart Cart
	p := limitedProduct("p1", 4)
	require.NoError(t, cart.Add(p, 2))

	err := cart.SetQuantity("p1", 9)
	var limitErr *StockLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 4, limitErr.Available)
	assert.Equal(t, 4, cart.Quantity("p1"), "quantity clamped, never above ceiling")
}

func TestCartSetQuantity_IgnoresBelowOne(t *testing.T) {
	var cart Cart
	p := limitedProduct("p1", 4)
	require.NoError(t, cart.Add(p, 2))

	require.NoError(t, cart.SetQuantity("p1", 0))
	assert.Equal(t, 2, cart.Quantity("p1"), "removal is a distinct operation")
}

func TestCartSetQuantity_MissingItem(t *testing.T) {
	var cart Cart
	assert.ErrorIs(t, cart.SetQuantity("ghost", 2), ErrItemNotInCart)
}

func TestCartRemoveAndClear(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(limitedProduct("p1", 5), 1))
	require.NoError(t, cart.Add(limitedProduct("p2", 5), 1))

	cart.Remove("p1")
	assert.Equal(t, 0, cart.Quantity("p1"))
	assert.Equal(t, 1, cart.Quantity("p2"))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestCartSubtotal(t *testing.T) {
	// price 50, 20% off, qty 2 -> 80.00
	var cart Cart
	p := Product{ID: "p1", Price: dec("50"), Discount: dec("20")}
	require.NoError(t, cart.Add(p, 2))

	assert.True(t, cart.Subtotal().Equal(dec("80")), "got %s", cart.Subtotal())
}
