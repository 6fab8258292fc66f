package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrPromoDiscountRange = errors.New("promo discount must be between 1 and 100")

// PromoCode is a percentage discount applied at most once per order.
// Codes are stored in canonical (uppercase) form and never mutated in place.
type PromoCode struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"` // percentage, 1-100
}

// NormalizeCode maps user input to the canonical form used for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewPromoCode builds a canonical promo code, rejecting discounts outside
// the 1-100 range and empty codes.
func NewPromoCode(code string, discount decimal.Decimal) (PromoCode, error) {
	canonical := NormalizeCode(code)
	if canonical == "" {
		return PromoCode{}, errors.New("promo code must not be empty")
	}
	if discount.LessThan(decimal.NewFromInt(1)) || discount.GreaterThan(hundred) {
		return PromoCode{}, ErrPromoDiscountRange
	}
	return PromoCode{Code: canonical, Discount: discount}, nil
}

// DiscountAmount is the absolute reduction this promo produces on a
// subtotal.
func (p PromoCode) DiscountAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.Discount).Div(hundred)
}
