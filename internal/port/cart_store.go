package port

import (
	"context"

	"github.com/hanafy/storefront/internal/core/domain"
)

// CartStore persists carts keyed by session, so a cart survives page
// reloads within the same session.
type CartStore interface {
	// Load returns the stored cart, or an empty cart when none exists.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)

	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
