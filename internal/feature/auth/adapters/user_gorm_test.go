package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobtrack_backend/internal/feature/auth/domain/entity"
	"jobtrack_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewUserGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := &entity.User{
			Email:    "test@example.com",
			Password: "hashed_password",
			Name:     "Test User",
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user1 := &entity.User{
			Email:    "duplicate@example.com",
			Password: "password1",
		}
		err := repo.Create(context.Background(), user1)
		require.NoError(t, err, "failed to create first user")

		// Create second user with the same email
		user2 := &entity.User{
			Email:    "duplicate@example.com",
			Password: "password2",
		}
		err = repo.Create(context.Background(), user2)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists, "should return ErrEmailAlreadyExists")

		// The store must still contain exactly one user with that email
		var count int64
		require.NoError(t, db.Model(&entity.User{}).Where("email = ?", "duplicate@example.com").Count(&count).Error)
		assert.Equal(t, int64(1), count, "store should contain exactly one user with the email")
	})

	t.Run("emails are case sensitive as stored", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		require.NoError(t, repo.Create(context.Background(), &entity.User{Email: "Mixed@Example.com", Password: "p"}))
		err := repo.Create(context.Background(), &entity.User{Email: "mixed@example.com", Password: "p"})

		assert.NoError(t, err, "different casing is a different email")
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		expected := &entity.User{
			Email:    "find@example.com",
			Password: "hashed_password",
			Name:     "Finder",
		}
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByEmail(context.Background(), "find@example.com")

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.Equal(t, expected.Name, found.Name, "name does not match")
	})

	t.Run("email not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		expected := &entity.User{Email: "id@example.com", Password: "hash"}
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, expected.Email, found.Email)
	})

	t.Run("ID not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		found, err := repo.FindByID(context.Background(), 9999)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_UpdateProfile(t *testing.T) {
	t.Run("updates name and email", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := &entity.User{Email: "old@example.com", Password: "hash", Name: "Old"}
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.UpdateProfile(context.Background(), user.ID, "New Name", "new@example.com")
		assert.NoError(t, err)

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Name", found.Name)
		assert.Equal(t, "new@example.com", found.Email)
	})

	t.Run("email collision returns ErrEmailInUse", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		other := &entity.User{Email: "taken@example.com", Password: "hash"}
		require.NoError(t, repo.Create(context.Background(), other))
		user := &entity.User{Email: "mine@example.com", Password: "hash"}
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.UpdateProfile(context.Background(), user.ID, "Name", "taken@example.com")

		assert.ErrorIs(t, err, usecase.ErrEmailInUse)
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		err := repo.UpdateProfile(context.Background(), 9999, "Name", "x@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_UpdatePassword(t *testing.T) {
	t.Run("persists the new hash", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		user := &entity.User{Email: "pw@example.com", Password: "old_hash"}
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.UpdatePassword(context.Background(), user.ID, "new_hash")
		assert.NoError(t, err)

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "new_hash", found.Password)
	})

	t.Run("unknown user returns ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserGorm(db)

		err := repo.UpdatePassword(context.Background(), 9999, "hash")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
