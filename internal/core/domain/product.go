package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrBadPrice = errors.New("unparsable price")

// Product is the catalog record. Stock is nil when the product has no
// recorded stock, which means an unlimited ceiling for cart purposes.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"` // percentage, 0-100
	Stock       *int            `json:"stock,omitempty"`
	Category    string          `json:"category"`
	Views       int             `json:"views"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ParsePrice normalizes a price that may arrive currency-formatted
// ("EGP 1,299.50") by dropping everything but digits and periods.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.Zero, ErrBadPrice
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrBadPrice
	}
	return d, nil
}

// ParseDiscount reads a discount percentage, falling back to zero when the
// input is absent or unparsable. It never fails.
func ParseDiscount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

var hundred = decimal.NewFromInt(100)

// DiscountedPrice returns the effective unit price after the product's own
// percentage discount. No rounding is applied; callers round for display.
func (p Product) DiscountedPrice() decimal.Decimal {
	if p.Discount.IsPositive() {
		return p.Price.Sub(p.Price.Mul(p.Discount).Div(hundred))
	}
	return p.Price
}

// DisplayPrice renders the discounted unit price rounded to two decimal
// places. Rounding happens only here, never in the arithmetic.
func (p Product) DisplayPrice() string {
	return p.DiscountedPrice().StringFixed(2)
}

// StockCeiling reports the maximum quantity a cart may hold for this
// product. limited is false when the product declares no stock.
func (p Product) StockCeiling() (ceiling int, limited bool) {
	if p.Stock == nil {
		return 0, false
	}
	return *p.Stock, true
}
