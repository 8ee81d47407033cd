package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
)

const (
	userCachePrefix  = "users:id:"
	userCacheScanLen = 100
)

// CachedUserRepository is a read-through Redis cache in front of another
// UserRepository. Only lookups by id are cached; any mutation evicts.
// Redis failures degrade to the inner repository.
//
// A miss that read the inner store before a concurrent mutation's evict can
// still write the older record back; it then lives at most one TTL
// (USER_CACHE_TTL_SECONDS). Keep the TTL short where that matters.
type CachedUserRepository struct {
	inner  UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps inner with a Redis cache.
func NewCachedUserRepository(inner UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedUserRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func userCacheKey(id string) string {
	return userCachePrefix + id
}

func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.inner.Create(ctx, user)
}

func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	key := userCacheKey(id)

	payload, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user domain.User
		if jsonErr := json.Unmarshal(payload, &user); jsonErr == nil {
			return &user, nil
		}
		r.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("user cache read failed", zap.String("key", key), zap.Error(err))
	}

	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(user)
	if err == nil {
		if err := r.client.Set(ctx, key, string(encoded), r.ttl).Err(); err != nil {
			r.logger.Warn("user cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return user, nil
}

func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.inner.GetByEmail(ctx, email)
}

func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.inner.List(ctx)
}

func (r *CachedUserRepository) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (bool, error) {
	updated, err := r.inner.UpdateByID(ctx, id, patch)
	if err == nil && updated {
		r.evict(ctx, userCacheKey(id))
	}
	return updated, err
}

func (r *CachedUserRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := r.inner.DeleteByID(ctx, id)
	if err == nil && deleted {
		r.evict(ctx, userCacheKey(id))
	}
	return deleted, err
}

func (r *CachedUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.inner.DeleteAll(ctx)
	if err != nil {
		return n, err
	}

	var cursor uint64
	for {
		keys, next, scanErr := r.client.Scan(ctx, cursor, userCachePrefix+"*", userCacheScanLen).Result()
		if scanErr != nil {
			r.logger.Warn("user cache scan failed", zap.Error(scanErr))
			break
		}
		if len(keys) > 0 {
			r.evict(ctx, keys...)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return n, nil
}

func (r *CachedUserRepository) evict(ctx context.Context, keys ...string) {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("user cache evict failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
