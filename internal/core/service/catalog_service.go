package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

var (
	ErrUnknownCategory  = errors.New("category does not exist")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDiscountRange    = errors.New("discount must be between 0 and 100")
)

// ProductInput is the admin-facing shape for product writes. Price and
// discount arrive as strings because admin forms submit currency-formatted
// text; normalization happens here, once, at the write boundary.
type ProductInput struct {
	Name        string
	Description string
	Image       string
	Price       string
	Discount    string
	Stock       *int
	Category    string
}

// CatalogService owns product and category administration plus the
// storefront read paths.
type CatalogService struct {
	catalog    port.CatalogRepository
	categories port.CategoryRepository
}

func NewCatalogService(catalog port.CatalogRepository, categories port.CategoryRepository) *CatalogService {
	return &CatalogService{catalog: catalog, categories: categories}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ViewProduct is the storefront detail read: it bumps the view counter and
// returns the product. The bump is best-effort and does not fail the read.
func (s *CatalogService) ViewProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.IncrementViews(ctx, id); err == nil {
		product.Views++
	}
	return product, nil
}

func (s *CatalogService) validate(ctx context.Context, in ProductInput) (price, discount decimal.Decimal, err error) {
	price, err = domain.ParsePrice(in.Price)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	discount = domain.ParseDiscount(in.Discount)
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, decimal.Zero, ErrDiscountRange
	}
	if in.Stock != nil && *in.Stock < 0 {
		return decimal.Zero, decimal.Zero, errors.New("stock must not be negative")
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if c == in.Category {
			return price, discount, nil
		}
	}
	return decimal.Zero, decimal.Zero, ErrUnknownCategory
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	price, discount, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       in.Image,
		Price:       price,
		Discount:    discount,
		Stock:       in.Stock,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Name == "" {
		return nil, errors.New("product name must not be empty")
	}
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	price, discount, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = in.Description
	existing.Image = in.Image
	existing.Price = price
	existing.Discount = discount
	existing.Stock = in.Stock
	existing.Category = in.Category
	existing.UpdatedAt = time.Now().UTC()
	if err := s.catalog.UpdateProduct(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return existing, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CatalogService) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name must not be empty")
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if c == name {
			return ErrCategoryExists
		}
	}
	if err := s.categories.Add(ctx, name); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	return nil
}

// RenameCategory renames a category and moves its products along, so no
// product is left referencing a name that no longer exists.
func (s *CatalogService) RenameCategory(ctx context.Context, from, to string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("category name must not be empty")
	}
	if err := s.categories.Rename(ctx, from, to); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	if err := s.catalog.ReassignCategory(ctx, from, to); err != nil {
		return fmt.Errorf("reassign products: %w", err)
	}
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, name string) error {
	if err := s.categories.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
