package port

import (
	"context"

	"github.com/hanafy/storefront/internal/core/domain"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct returns nil without error when the product does not exist.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// IncrementViews bumps the product's view counter by one.
	IncrementViews(ctx context.Context, id string) error

	// DecrementStock lowers recorded stock by quantity, floored at zero.
	// Products without recorded stock are left untouched.
	DecrementStock(ctx context.Context, id string, quantity int) error

	// ReassignCategory moves every product in category from to category to.
	ReassignCategory(ctx context.Context, from, to string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
	Rename(ctx context.Context, from, to string) error
	Delete(ctx context.Context, name string) error
}

type PromoRepository interface {
	List(ctx context.Context) ([]domain.PromoCode, error)

	// Find looks up a canonical (uppercase) code, nil when absent.
	Find(ctx context.Context, code string) (*domain.PromoCode, error)

	Create(ctx context.Context, promo domain.PromoCode) error
	Delete(ctx context.Context, code string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// Get returns nil without error when the order does not exist.
	Get(ctx context.Context, id string) (*domain.Order, error)

	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)

	// FindByEmail returns nil without error when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	Create(ctx context.Context, u domain.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role, permissions []string) error
	UpdatePermissions(ctx context.Context, id string, permissions []string) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	// Get returns the raw stored value, empty string when unset.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error
}
