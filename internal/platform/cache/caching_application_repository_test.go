package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"jobtrack_backend/internal/feature/tracker/domain/entity"
	"jobtrack_backend/internal/feature/tracker/usecase"
)

// mockApplicationRepository is a mock implementation of the ApplicationRepository interface.
type mockApplicationRepository struct {
	listFn       func(ctx context.Context, userID uint) ([]entity.Application, error)
	createFn     func(ctx context.Context, app *entity.Application) error
	updateFn     func(ctx context.Context, userID, id uint, patch usecase.ApplicationPatch) (*entity.Application, error)
	deleteFn     func(ctx context.Context, userID, id uint) error
	countStatsFn func(ctx context.Context, userID uint) (*entity.Stats, error)
}

func (m *mockApplicationRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Application, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepository) Update(ctx context.Context, userID, id uint, patch usecase.ApplicationPatch) (*entity.Application, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, patch)
	}
	return nil, nil
}

func (m *mockApplicationRepository) Delete(ctx context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockApplicationRepository) CountStats(ctx context.Context, userID uint) (*entity.Stats, error) {
	if m.countStatsFn != nil {
		return m.countStatsFn(ctx, userID)
	}
	return &entity.Stats{}, nil
}

func TestNewCachingApplicationRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "stats",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "stats",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingApplicationRepository(nil, tt.ttl, &mockApplicationRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

func TestCachingApplicationRepository_CountStats(t *testing.T) {
	stats := &entity.Stats{Total: 4, Active: 3, Successful: 1}

	t.Run("nil client bypasses the cache", func(t *testing.T) {
		calls := 0
		inner := &mockApplicationRepository{
			countStatsFn: func(ctx context.Context, userID uint) (*entity.Stats, error) {
				calls++
				return stats, nil
			},
		}

		repo := NewCachingApplicationRepository(nil, time.Minute, inner, "stats")
		out, err := repo.CountStats(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 database call, got %d", calls)
		}
		if out.Total != 4 {
			t.Errorf("unexpected stats: %+v", out)
		}
	})

	t.Run("cache miss populates the cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockApplicationRepository{
			countStatsFn: func(ctx context.Context, userID uint) (*entity.Stats, error) {
				return stats, nil
			},
		}

		payload, _ := json.Marshal(stats)
		mock.ExpectGet("stats:user:1").RedisNil()
		mock.ExpectSet("stats:user:1", payload, time.Minute).SetVal("OK")

		repo := NewCachingApplicationRepository(rdb, time.Minute, inner, "stats")
		out, err := repo.CountStats(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Successful != 1 {
			t.Errorf("unexpected stats: %+v", out)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockApplicationRepository{
			countStatsFn: func(ctx context.Context, userID uint) (*entity.Stats, error) {
				t.Error("database must not be called on a cache hit")
				return nil, errors.New("unexpected call")
			},
		}

		payload, _ := json.Marshal(stats)
		mock.ExpectGet("stats:user:1").SetVal(string(payload))

		repo := NewCachingApplicationRepository(rdb, time.Minute, inner, "stats")
		out, err := repo.CountStats(context.Background(), 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Total != 4 || out.Active != 3 {
			t.Errorf("unexpected stats: %+v", out)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})
}

func TestCachingApplicationRepository_WritesInvalidate(t *testing.T) {
	t.Run("create invalidates owner stats", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockApplicationRepository{
			createFn: func(ctx context.Context, app *entity.Application) error {
				app.ID = 1
				return nil
			},
		}

		mock.ExpectDel("stats:user:9").SetVal(1)

		repo := NewCachingApplicationRepository(rdb, time.Minute, inner, "stats")
		err := repo.Create(context.Background(), &entity.Application{UserID: 9, Company: "Acme"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})

	t.Run("delete invalidates owner stats", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockApplicationRepository{
			deleteFn: func(ctx context.Context, userID, id uint) error { return nil },
		}

		mock.ExpectDel("stats:user:9").SetVal(1)

		repo := NewCachingApplicationRepository(rdb, time.Minute, inner, "stats")
		err := repo.Delete(context.Background(), 9, 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})

	t.Run("failed delete leaves the cache alone", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		inner := &mockApplicationRepository{
			deleteFn: func(ctx context.Context, userID, id uint) error {
				return usecase.ErrNotFoundOrForbidden
			},
		}

		repo := NewCachingApplicationRepository(rdb, time.Minute, inner, "stats")
		err := repo.Delete(context.Background(), 9, 1)

		if !errors.Is(err, usecase.ErrNotFoundOrForbidden) {
			t.Errorf("expected ErrNotFoundOrForbidden, got: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})
}
