package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrShippingCostUnset is returned when the shipping-cost setting is
// missing or unparsable. Order assembly fails closed on it rather than
// defaulting to zero.
var ErrShippingCostUnset = errors.New("shipping cost not configured")

// SettingShippingCost is the settings key for the flat shipping charge.
const SettingShippingCost = "shipping_cost"

// ParseShippingCost validates a stored shipping-cost value. Negative
// values are treated as misconfiguration, same as absent ones.
func ParseShippingCost(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, ErrShippingCostUnset
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrShippingCostUnset
	}
	return d, nil
}
