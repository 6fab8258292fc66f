package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrItemNotInCart = errors.New("item not in cart")

// StockLimitError reports a cart mutation that would exceed a product's
// stock ceiling. Available is the ceiling that was hit.
type StockLimitError struct {
	ProductID string
	Available int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("only %d in stock for product %s", e.Available, e.ProductID)
}

// CartItem pairs a product snapshot with a quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered collection of line items, at most one per product.
// It is a pure value; persistence is layered on by the cart service.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the current quantity for a product, zero if absent.
func (c *Cart) Quantity(productID string) int {
	if i := c.find(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Add inserts a line item or increases an existing one. The mutation is
// rejected, leaving the cart unchanged, if the cumulative quantity would
// exceed the product's stock ceiling. The check is local and optimistic;
// it does not consult live stock.
func (c *Cart) Add(p Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	current := c.Quantity(p.ID)
	if ceiling, limited := p.StockCeiling(); limited && current+quantity > ceiling {
		return &StockLimitError{ProductID: p.ID, Available: ceiling}
	}
	if i := c.find(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		return nil
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})
	return nil
}

// SetQuantity replaces a line item's quantity. Requests above the stock
// ceiling are clamped to the ceiling and reported via StockLimitError.
// Requests below 1 are ignored; Remove is the way to drop an item.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	if quantity < 1 {
		return nil
	}
	if ceiling, limited := c.Items[i].Product.StockCeiling(); limited && quantity > ceiling {
		c.Items[i].Quantity = ceiling
		return &StockLimitError{ProductID: productID, Available: ceiling}
	}
	c.Items[i].Quantity = quantity
	return nil
}

// Remove deletes a line item unconditionally.
func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums discounted unit price times quantity over all line items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.Product.DiscountedPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
