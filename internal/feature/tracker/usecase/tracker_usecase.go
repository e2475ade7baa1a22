package usecase

import (
	"context"
	"fmt"

	"jobtrack_backend/internal/feature/tracker/domain/entity"
)

// ApplicationPatch carries the fields of a partial update.
// Nil fields retain their previous value.
type ApplicationPatch struct {
	Company     *string
	Role        *string
	DateApplied *string
	Status      *string
	Notes       *string
}

// IsEmpty returns true when the patch supplies no fields.
func (p ApplicationPatch) IsEmpty() bool {
	return p.Company == nil && p.Role == nil && p.DateApplied == nil &&
		p.Status == nil && p.Notes == nil
}

// ApplicationRepository abstracts the persistence layer for application entities.
// Every operation takes the owning user's ID; no call can touch another user's rows.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ApplicationRepository interface {
	// ListByUser retrieves all applications owned by the user,
	// ordered by date applied descending.
	ListByUser(ctx context.Context, userID uint) ([]entity.Application, error)

	// Create persists a new application and assigns its ID and timestamps.
	Create(ctx context.Context, app *entity.Application) error

	// Update applies a partial update to the application with the given ID,
	// provided it is owned by userID, and returns the resulting record.
	// Returns ErrNotFoundOrForbidden when no such row is owned by the user.
	Update(ctx context.Context, userID, id uint, patch ApplicationPatch) (*entity.Application, error)

	// Delete permanently removes the application with the given ID,
	// provided it is owned by userID.
	// Returns ErrNotFoundOrForbidden when no such row is owned by the user.
	Delete(ctx context.Context, userID, id uint) error

	// CountStats returns the per-user application counters.
	CountStats(ctx context.Context, userID uint) (*entity.Stats, error)
}

// ProfileStats is the derived statistics view shown on the profile page.
type ProfileStats struct {
	Total       int64
	Active      int64
	SuccessRate string
}

// trackerUsecase implements the job application tracking business logic.
type trackerUsecase struct {
	apps ApplicationRepository
}

// NewTrackerUsecase creates a new instance of trackerUsecase.
func NewTrackerUsecase(apps ApplicationRepository) *trackerUsecase {
	return &trackerUsecase{apps: apps}
}

// List returns a one-shot snapshot of the user's applications,
// newest application date first.
func (u *trackerUsecase) List(ctx context.Context, userID uint) ([]entity.Application, error) {
	return u.apps.ListByUser(ctx, userID)
}

// Create validates and persists a new application for the user.
// Company, role, date applied and status are required; notes may be empty.
func (u *trackerUsecase) Create(ctx context.Context, userID uint, company, role, dateApplied, status, notes string) (*entity.Application, error) {
	if company == "" || role == "" || dateApplied == "" || status == "" {
		return nil, ErrMissingFields
	}

	app := &entity.Application{
		UserID:      userID,
		Company:     company,
		Role:        role,
		DateApplied: dateApplied,
		Status:      status,
		Notes:       notes,
	}
	if err := u.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Update applies a partial update to one of the user's applications and
// returns the full resulting record.
func (u *trackerUsecase) Update(ctx context.Context, userID, id uint, patch ApplicationPatch) (*entity.Application, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	return u.apps.Update(ctx, userID, id, patch)
}

// Delete permanently removes one of the user's applications.
func (u *trackerUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.apps.Delete(ctx, userID, id)
}

// Stats computes the profile statistics for the user.
// The success rate is successful/total as a percentage with one decimal place,
// or "0%" when the user has no applications.
func (u *trackerUsecase) Stats(ctx context.Context, userID uint) (*ProfileStats, error) {
	counts, err := u.apps.CountStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate := "0%"
	if counts.Total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(counts.Successful)/float64(counts.Total)*100)
	}

	return &ProfileStats{
		Total:       counts.Total,
		Active:      counts.Active,
		SuccessRate: rate,
	}, nil
}
