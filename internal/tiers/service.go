package tiers

import (
	"context"
	"fmt"

	"gridspot/internal/shared/apperrors"
)

// Service interface exposes the tier model plus the config reads every
// reservation depends on
type Service interface {
	// SlotInfoAt resolves a coordinate to tier, current price and availability.
	// The tier mapping is pure; price and availability come from TierConfig
	// read fresh at call time.
	SlotInfoAt(ctx context.Context, x, y int) (*SlotInfo, error)
	ListConfigs(ctx context.Context) ([]TierConfig, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SlotInfoAt(ctx context.Context, x, y int) (*SlotInfo, error) {
	if !InGrid(x, y) {
		return nil, fmt.Errorf("coordinate (%d,%d) outside grid: %w", x, y, apperrors.ErrNotFound)
	}

	tier := TierOf(x, y)
	cfg, err := s.repo.GetConfig(ctx, tier)
	if err != nil {
		return nil, err
	}

	return &SlotInfo{
		X:           x,
		Y:           y,
		Tier:        tier,
		PricePerDay: cfg.PricePerDay,
		Available:   cfg.Available,
	}, nil
}

func (s *service) ListConfigs(ctx context.Context) ([]TierConfig, error) {
	return s.repo.ListConfigs(ctx)
}
