package profileRepo

import (
	"context"
	"encoding/json"
	"time"

	"cupid/models"
	"cupid/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CachedProfileRepo wraps a ProfileRepository with a Redis read cache for
// GetByID, the hottest lookup. The cache is best effort: a Redis failure
// falls through to the inner repository, and every write refreshes or
// drops the cached document so no consumer reads stale data.
type CachedProfileRepo struct {
	inner ProfileRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedProfileRepo wraps inner with the given cache client.
func NewCachedProfileRepo(inner ProfileRepository, cache *redis.Client) ProfileRepository {
	return &CachedProfileRepo{inner: inner, cache: cache, ttl: utils.ProfileCacheTTL}
}

func (r *CachedProfileRepo) cacheKey(id string) string {
	return utils.ProfileCachePrefix + id
}

func (r *CachedProfileRepo) store(p *models.UserProfile) {
	if p == nil || p.ID == "" {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.cache.Set(context.Background(), r.cacheKey(p.ID), data, r.ttl).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache profile", zap.String("userID", p.ID), zap.Error(err))
	}
}

func (r *CachedProfileRepo) drop(id string) {
	if err := r.cache.Del(context.Background(), r.cacheKey(id)).Err(); err != nil {
		utils.GetLogger().Warn("Failed to drop cached profile", zap.String("userID", id), zap.Error(err))
	}
}

// GetByID serves from the cache when it can, falling back to the inner
// repository and priming the cache on a miss.
func (r *CachedProfileRepo) GetByID(id string) (*models.UserProfile, error) {
	if data, err := r.cache.Get(context.Background(), r.cacheKey(id)).Result(); err == nil {
		var p models.UserProfile
		if unmarshalErr := json.Unmarshal([]byte(data), &p); unmarshalErr == nil {
			return &p, nil
		}
	}

	p, err := r.inner.GetByID(id)
	if err != nil {
		return nil, err
	}
	r.store(p)
	return p, nil
}

// GetByEmail is not cached; email lookups only happen on sign-in.
func (r *CachedProfileRepo) GetByEmail(email string) (*models.UserProfile, error) {
	return r.inner.GetByEmail(email)
}

// Create inserts the document and primes the cache.
func (r *CachedProfileRepo) Create(p *models.UserProfile) error {
	if err := r.inner.Create(p); err != nil {
		return err
	}
	r.store(p)
	return nil
}

// Set overwrites the document and refreshes the cached copy.
func (r *CachedProfileRepo) Set(p *models.UserProfile) error {
	if err := r.inner.Set(p); err != nil {
		return err
	}
	r.store(p)
	return nil
}

// UpdateFields applies the partial update and drops the cached copy; the
// next read re-primes it from the full document.
func (r *CachedProfileRepo) UpdateFields(id string, fields map[string]any) error {
	if err := r.inner.UpdateFields(id, fields); err != nil {
		return err
	}
	r.drop(id)
	return nil
}

// Delete removes the document and its cached copy.
func (r *CachedProfileRepo) Delete(id string) error {
	if err := r.inner.Delete(id); err != nil {
		return err
	}
	r.drop(id)
	return nil
}

// GetByIDWithProjection bypasses the cache; projected documents are
// partial and must never be cached as the full record.
func (r *CachedProfileRepo) GetByIDWithProjection(id string, projection bson.M) (*models.UserProfile, error) {
	return r.inner.GetByIDWithProjection(id, projection)
}
