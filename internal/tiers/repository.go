package tiers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gridspot/internal/shared/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetConfig(ctx context.Context, tier Tier) (*TierConfig, error)
	ListConfigs(ctx context.Context) ([]TierConfig, error)
	SetAvailability(ctx context.Context, tier Tier, available bool, actor string) error
	SetPrice(ctx context.Context, tier Tier, pricePerDay float64, actor string) error
	SeedDefaults(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetConfig(ctx context.Context, tier Tier) (*TierConfig, error) {
	var cfg TierConfig
	err := r.db.WithContext(ctx).Where("tier = ?", tier).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tier config %s: %w", tier, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) ListConfigs(ctx context.Context) ([]TierConfig, error) {
	var configs []TierConfig
	err := r.db.WithContext(ctx).Order("price_per_day DESC").Find(&configs).Error
	return configs, err
}

func (r *repository) SetAvailability(ctx context.Context, tier Tier, available bool, actor string) error {
	result := r.db.WithContext(ctx).
		Model(&TierConfig{}).
		Where("tier = ?", tier).
		Updates(map[string]interface{}{
			"available":  available,
			"updated_by": actor,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tier config %s: %w", tier, apperrors.ErrNotFound)
	}
	return nil
}

func (r *repository) SetPrice(ctx context.Context, tier Tier, pricePerDay float64, actor string) error {
	result := r.db.WithContext(ctx).
		Model(&TierConfig{}).
		Where("tier = ?", tier).
		Updates(map[string]interface{}{
			"price_per_day": pricePerDay,
			"updated_by":    actor,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tier config %s: %w", tier, apperrors.ErrNotFound)
	}
	return nil
}

// SeedDefaults inserts the default tier rows, leaving existing rows untouched
func (r *repository) SeedDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(DefaultConfigs()).Error
}
