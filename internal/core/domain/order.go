package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// NotifiesCustomer reports whether entering this status triggers a
// customer-facing notification.
func (s OrderStatus) NotifiesCustomer() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// transitions is the advisory workflow: Delivered and Cancelled are
// terminal by convention. The store stays permissive, so violations are
// reported as warnings, not rejected.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered, OrderStatusCancelled},
}

// CanTransition reports whether from -> to follows the advisory workflow.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is a point-in-time snapshot of an ordered product. It carries
// the priced values, not a live product reference, so later catalog edits
// never alter historical orders.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"` // after product discount
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
}

// ShippingDetails is what the buyer filled in at checkout. The payment
// sub-fields are populated according to PaymentMethod.
type ShippingDetails struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone"`
	AltPhone      string `json:"alt_phone,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city,omitempty"`
	PaymentMethod string `json:"payment_method"` // cod, card, wallet, paypal
	CardNumber    string `json:"card_number,omitempty"`
	CardExpiry    string `json:"card_expiry,omitempty"`
	WalletNumber  string `json:"wallet_number,omitempty"`
	PayPalEmail   string `json:"paypal_email,omitempty"`
}

// Order is immutable after assembly except for Status. Totals are computed
// once at creation and never recomputed.
type Order struct {
	ID            string          `json:"id"`
	UserID        *string         `json:"user_id,omitempty"` // nil for guest checkout
	Items         []OrderItem     `json:"items"`
	Shipping      ShippingDetails `json:"shipping"`
	PromoCode     *string         `json:"promo_code,omitempty"`
	PromoDiscount decimal.Decimal `json:"promo_discount"` // absolute amount
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
