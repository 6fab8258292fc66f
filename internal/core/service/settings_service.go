package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hanafy/storefront/internal/core/domain"
	"github.com/hanafy/storefront/internal/port"
)

// SettingsService reads and writes shop settings. The shipping cost is
// validated on both ends: writes reject unparsable values and reads fail
// closed instead of defaulting to zero.
type SettingsService struct {
	settings port.SettingsRepository
}

func NewSettingsService(settings port.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// ShippingCost returns the configured flat shipping charge. A missing or
// unparsable value yields domain.ErrShippingCostUnset; order assembly
// treats that as a configuration error and aborts.
func (s *SettingsService) ShippingCost(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.settings.Get(ctx, domain.SettingShippingCost)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read shipping cost: %w", err)
	}
	return domain.ParseShippingCost(raw)
}

// SetShippingCost validates and stores a new shipping charge.
func (s *SettingsService) SetShippingCost(ctx context.Context, raw string) (decimal.Decimal, error) {
	cost, err := domain.ParseShippingCost(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.settings.Set(ctx, domain.SettingShippingCost, cost.String()); err != nil {
		return decimal.Zero, fmt.Errorf("write shipping cost: %w", err)
	}
	return cost, nil
}
