// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobtrack_backend/internal/feature/auth/domain/entity"
	"jobtrack_backend/internal/feature/auth/usecase"
)

// userGorm is a GORM implementation of the UserRepository interface.
// It works against both the sqlite and postgres dialectors.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm with the given gorm.DB connection.
// This is a constructor for dependency injection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create adds a user to the database.
// If a user with the same email already exists, it returns usecase.ErrEmailAlreadyExists.
// Requires gorm.Config{TranslateError: true} so unique violations surface as
// gorm.ErrDuplicatedKey on every dialect.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email.
// If the user does not exist, it returns usecase.ErrUserNotFound.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// If the user does not exist, it returns usecase.ErrUserNotFound.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile persists new name and email values for the user.
// An email collision with another user returns usecase.ErrEmailInUse.
func (r *userGorm) UpdateProfile(ctx context.Context, id uint, name, email string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "email": email})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// UpdatePassword persists a new password hash for the user.
func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("password", hash)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
