package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

var (
	ErrPromoNotFound = errors.New("invalid promo code")
	ErrPromoExists   = errors.New("promo code already exists")
)

// PromoService resolves user-entered codes and owns the admin-side promo
// lifecycle. Codes are created and deleted, never edited in place.
type PromoService struct {
	promos port.PromoRepository
}

func NewPromoService(promos port.PromoRepository) *PromoService {
	return &PromoService{promos: promos}
}

// Apply normalizes the input and looks up an exact match. The caller keeps
// at most one promo per checkout; re-applying replaces rather than stacks,
// which falls out of the lookup being stateless.
func (s *PromoService) Apply(ctx context.Context, code string) (*domain.PromoCode, error) {
	canonical := domain.NormalizeCode(code)
	if canonical == "" {
		return nil, ErrPromoNotFound
	}
	promo, err := s.promos.Find(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("find promo: %w", err)
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

func (s *PromoService) List(ctx context.Context) ([]domain.PromoCode, error) {
	promos, err := s.promos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promos: %w", err)
	}
	return promos, nil
}

func (s *PromoService) Create(ctx context.Context, code string, discount decimal.Decimal) (*domain.PromoCode, error) {
	promo, err := domain.NewPromoCode(code, discount)
	if err != nil {
		return nil, err
	}
	existing, err := s.promos.Find(ctx, promo.Code)
	if err != nil {
		return nil, fmt.Errorf("find promo: %w", err)
	}
	if existing != nil {
		return nil, ErrPromoExists
	}
	if err := s.promos.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("create promo: %w", err)
	}
	return &promo, nil
}

func (s *PromoService) Delete(ctx context.Context, code string) error {
	if err := s.promos.Delete(ctx, domain.NormalizeCode(code)); err != nil {
		return fmt.Errorf("delete promo: %w", err)
	}
	return nil
}
