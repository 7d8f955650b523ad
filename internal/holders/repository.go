package holders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gridspot/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ResolveOrCreate(ctx context.Context, name, email string) (*Holder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Holder, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ResolveOrCreate finds the holder with the given email or creates one.
// Email is the idempotency key; a changed display name updates the record.
func (r *repository) ResolveOrCreate(ctx context.Context, name, email string) (*Holder, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var holder Holder
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&holder).Error
	if err == nil {
		if name != "" && holder.Name != name {
			holder.Name = name
			if err := r.db.WithContext(ctx).Model(&holder).Update("name", name).Error; err != nil {
				return nil, err
			}
		}
		return &holder, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	holder = Holder{Name: name, Email: email}
	if err := r.db.WithContext(ctx).Create(&holder).Error; err != nil {
		// Concurrent create on the same email loses to the unique index;
		// re-read and return the winner.
		var existing Holder
		if lookupErr := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &holder, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Holder, error) {
	var holder Holder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&holder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("holder %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &holder, nil
}
