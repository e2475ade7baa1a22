// Package adapters provides repository implementations for the tracker feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtrack_backend/internal/feature/tracker/domain/entity"
	"jobtrack_backend/internal/feature/tracker/usecase"
)

// applicationGorm is a GORM implementation of the ApplicationRepository interface.
type applicationGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure applicationGorm implements ApplicationRepository.
var _ usecase.ApplicationRepository = (*applicationGorm)(nil)

// NewApplicationGorm creates a new instance of applicationGorm.
func NewApplicationGorm(db *gorm.DB) *applicationGorm {
	return &applicationGorm{db: db}
}

// ListByUser retrieves all applications owned by the user,
// ordered by date applied descending.
func (r *applicationGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Application, error) {
	var apps []entity.Application
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_applied DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Create persists a new application. GORM assigns ID and timestamps.
func (r *applicationGorm) Create(ctx context.Context, app *entity.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// Update applies a partial update inside one transaction.
// The row is loaded with the ownership filter first; a miss (absent or foreign)
// becomes usecase.ErrNotFoundOrForbidden.
func (r *applicationGorm) Update(ctx context.Context, userID, id uint, patch usecase.ApplicationPatch) (*entity.Application, error) {
	var app entity.Application

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrNotFoundOrForbidden
			}
			return err
		}

		if patch.Company != nil {
			app.Company = *patch.Company
		}
		if patch.Role != nil {
			app.Role = *patch.Role
		}
		if patch.DateApplied != nil {
			app.DateApplied = *patch.DateApplied
		}
		if patch.Status != nil {
			app.Status = *patch.Status
		}
		if patch.Notes != nil {
			app.Notes = *patch.Notes
		}

		// Save refreshes UpdatedAt.
		return tx.Save(&app).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete permanently removes the application, enforcing ownership in the
// WHERE clause so a foreign ID reports the same error as a missing one.
func (r *applicationGorm) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Application{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotFoundOrForbidden
	}
	return nil
}

// CountStats returns the per-user application counters:
// total rows, active rows (status != Rejected) and successful rows
// (status Offer or Accepted).
func (r *applicationGorm) CountStats(ctx context.Context, userID uint) (*entity.Stats, error) {
	var stats entity.Stats

	if err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("user_id = ? AND status != ?", userID, entity.StatusRejected).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Application{}).
		Where("user_id = ? AND status IN ?", userID, []string{entity.StatusOffer, entity.StatusAccepted}).
		Count(&stats.Successful).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
