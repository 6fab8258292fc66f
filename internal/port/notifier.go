package port

import (
	"context"

	"github.com/hanafy/storefront/internal/core/domain"
)

type NotificationKind string

const (
	// NotificationOrderPlaced alerts the shop admin about a new order.
	NotificationOrderPlaced NotificationKind = "order_placed"

	// NotificationStatusChanged tells the customer their order moved to
	// Shipped or Delivered.
	NotificationStatusChanged NotificationKind = "status_changed"
)

// Notification is the outbound envelope handed to the dispatcher. The
// order is embedded as a snapshot so delivery does not depend on reading
// state back.
type Notification struct {
	Kind      NotificationKind   `json:"kind"`
	Recipient string             `json:"recipient"`
	Order     domain.Order       `json:"order"`
	Status    domain.OrderStatus `json:"status,omitempty"`
}

// Notifier delivers a single notification envelope.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Dispatcher accepts envelopes for asynchronous, best-effort delivery.
// Enqueue never blocks commerce operations on the delivery outcome.
type Dispatcher interface {
	Enqueue(n Notification)
}
