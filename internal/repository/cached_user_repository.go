package repository

import (
	"context"
	"errors"

	"userregistry/internal/domain"
	"userregistry/pkg/cache"
	"userregistry/pkg/logger"
)

// CachedUserRepository wraps a UserRepository with a read-through user cache.
// Cache failures are logged and never change what the store returned.
type CachedUserRepository struct {
	repo   domain.UserRepository
	cache  cache.Cache
	logger logger.Logger
}

func NewCachedUserRepository(repo domain.UserRepository, c cache.Cache, logger logger.Logger) domain.UserRepository {
	return &CachedUserRepository{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (r *CachedUserRepository) FindByID(id int) (*domain.User, error) {
	ctx := context.Background()
	key := cache.UserCacheKey(id)

	var cached cachedUserRecord
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		user := domain.NewUser(cached.ID, cached.Username, cached.Password)
		return &user, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.WithContext(ctx).Warn("Cache read error for user", map[string]interface{}{
			"userID": id,
			"error":  err.Error(),
		})
	}

	user, err := r.repo.FindByID(id)
	if err != nil || user == nil {
		return user, err
	}

	r.store(ctx, *user)
	return user, nil
}

func (r *CachedUserRepository) Create(user domain.User) error {
	if err := r.repo.Create(user); err != nil {
		return err
	}

	r.store(context.Background(), user)
	return nil
}

func (r *CachedUserRepository) Delete(id int) (bool, error) {
	deleted, err := r.repo.Delete(id)
	if err != nil {
		return deleted, err
	}

	ctx := context.Background()
	if delErr := r.cache.Delete(ctx, cache.UserCacheKey(id)); delErr != nil {
		r.logger.WithContext(ctx).Error("Error invalidating user cache", map[string]interface{}{
			"userID": id,
			"error":  delErr.Error(),
		})
	}

	return deleted, nil
}

func (r *CachedUserRepository) store(ctx context.Context, user domain.User) {
	if err := r.cache.Set(ctx, cache.UserCacheKey(user.ID), cachedUser(user), cache.DefaultExpiration); err != nil {
		r.logger.WithContext(ctx).Error("Error caching user", map[string]interface{}{
			"userID": user.ID,
			"error":  err.Error(),
		})
	}
}

// cachedUserRecord is what lands in Redis. It holds the plaintext password
// (domain.User hides it from JSON) because login compares passwords as is;
// anyone with read access to the cache can read credentials for
// cache.DefaultExpiration after a lookup.
type cachedUserRecord struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func cachedUser(user domain.User) cachedUserRecord {
	return cachedUserRecord{ID: user.ID, Username: user.Username, Password: user.Password}
}
