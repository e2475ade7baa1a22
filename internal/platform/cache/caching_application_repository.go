// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrack_backend/internal/feature/tracker/domain/entity"
	"jobtrack_backend/internal/feature/tracker/usecase"
)

// CachingApplicationRepository decorates an ApplicationRepository with Redis
// caching of the per-user statistics counters. It implements the decorator
// pattern, transparently adding caching without modifying the underlying
// repository. Writes pass through and invalidate the owner's cached stats.
type CachingApplicationRepository struct {
	inner     usecase.ApplicationRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator implements ApplicationRepository.
var _ usecase.ApplicationRepository = (*CachingApplicationRepository)(nil)

// NewCachingApplicationRepository decorates an ApplicationRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "stats".
func NewCachingApplicationRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ApplicationRepository, namespace string) *CachingApplicationRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stats"
	}
	return &CachingApplicationRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// statsKey generates the cache key for a user's statistics.
func (c *CachingApplicationRepository) statsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}

// invalidate drops the cached stats for a user. Best effort: cache errors
// never fail the write that triggered them.
func (c *CachingApplicationRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.statsKey(userID)).Err()
}

// ListByUser delegates to the underlying repository. List responses are not
// cached; they must reflect every write immediately.
func (c *CachingApplicationRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Application, error) {
	return c.inner.ListByUser(ctx, userID)
}

// Create persists a new application and invalidates the owner's cached stats.
func (c *CachingApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	if err := c.inner.Create(ctx, app); err != nil {
		return err
	}
	c.invalidate(ctx, app.UserID)
	return nil
}

// Update applies a partial update and invalidates the owner's cached stats.
func (c *CachingApplicationRepository) Update(ctx context.Context, userID, id uint, patch usecase.ApplicationPatch) (*entity.Application, error) {
	app, err := c.inner.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, userID)
	return app, nil
}

// Delete removes an application and invalidates the owner's cached stats.
func (c *CachingApplicationRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// CountStats retrieves the counters, checking cache first then falling back
// to the database.
func (c *CachingApplicationRepository) CountStats(ctx context.Context, userID uint) (*entity.Stats, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.CountStats(ctx, userID)
	}

	key := c.statsKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Stats
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.CountStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}
