package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

var ErrProductNotFound = errors.New("product not found")

// CartService runs cart mutations against the session-keyed store. Every
// successful mutation is written back so the cart survives reloads.
type CartService struct {
	carts   port.CartStore
	catalog port.CatalogRepository
	logger  *zap.Logger
}

func NewCartService(carts port.CartStore, catalog port.CatalogRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, catalog: catalog, logger: logger}
}

// Cart loads the session's cart, empty when none has been stored yet.
func (s *CartService) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// Add resolves the product and appends it to the session cart, subject to
// the stock ceiling. A rejected add leaves the stored cart untouched.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := cart.Add(*product, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// SetQuantity updates a line item's quantity. When the request exceeds the
// stock ceiling the quantity is clamped, the clamped cart is persisted, and
// the StockLimitError is still returned so callers can tell the user.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	mutErr := cart.SetQuantity(productID, quantity)
	var limitErr *domain.StockLimitError
	if mutErr != nil && !errors.As(mutErr, &limitErr) {
		return nil, mutErr
	}
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, mutErr
}

// Remove deletes a line item unconditionally.
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	cart.Remove(productID)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear drops the session's cart. Called after a successful order and on
// logout.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
