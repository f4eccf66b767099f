package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userregistry/internal/domain"
	"userregistry/pkg/cache"
	"userregistry/pkg/logger"
)

type fakeCache struct {
	items   map[string][]byte
	err     error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	if c.err != nil {
		return c.err
	}
	data, ok := c.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	if c.err != nil {
		return c.err
	}
	delete(c.items, key)
	return nil
}

func (c *fakeCache) Ping(context.Context) error {
	return c.err
}

type stubRepository struct {
	findFn   func(id int) (*domain.User, error)
	createFn func(user domain.User) error
	deleteFn func(id int) (bool, error)
	finds    int
}

func (s *stubRepository) FindByID(id int) (*domain.User, error) {
	s.finds++
	if s.findFn != nil {
		return s.findFn(id)
	}
	return nil, nil
}

func (s *stubRepository) Create(user domain.User) error {
	if s.createFn != nil {
		return s.createFn(user)
	}
	return nil
}

func (s *stubRepository) Delete(id int) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	return false, errors.New("not configured")
}

func TestCachedUserRepository_CreateCachesUserWithPassword(t *testing.T) {
	c := newFakeCache()
	repo := NewCachedUserRepository(&stubRepository{}, c, logger.NewNop())

	require.NoError(t, repo.Create(ivan))

	found, err := repo.FindByID(ivan.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ivan, *found)
}

func TestCachedUserRepository_FindReadsThrough(t *testing.T) {
	c := newFakeCache()
	stub := &stubRepository{findFn: func(id int) (*domain.User, error) {
		u := maxim
		return &u, nil
	}}
	repo := NewCachedUserRepository(stub, c, logger.NewNop())

	first, err := repo.FindByID(maxim.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(maxim.ID)
	require.NoError(t, err)

	assert.Equal(t, maxim, *first)
	assert.Equal(t, maxim, *second)
	assert.Equal(t, 1, stub.finds, "second lookup should be served from cache")
	assert.Contains(t, c.items, cache.UserCacheKey(maxim.ID))
}

func TestCachedUserRepository_FindMissingIsNotCached(t *testing.T) {
	c := newFakeCache()
	repo := NewCachedUserRepository(&stubRepository{}, c, logger.NewNop())

	found, err := repo.FindByID(99)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.Empty(t, c.items)
}

func TestCachedUserRepository_CacheFailureFallsBackToStore(t *testing.T) {
	c := newFakeCache()
	c.err = errors.New("redis down")
	stub := &stubRepository{findFn: func(id int) (*domain.User, error) {
		u := ivan
		return &u, nil
	}}
	repo := NewCachedUserRepository(stub, c, logger.NewNop())

	found, err := repo.FindByID(ivan.ID)
	require.NoError(t, err)
	assert.Equal(t, ivan, *found)
	assert.NoError(t, repo.Create(maxim))
}

func TestCachedUserRepository_DeleteInvalidates(t *testing.T) {
	c := newFakeCache()
	stub := &stubRepository{deleteFn: func(id int) (bool, error) { return true, nil }}
	repo := NewCachedUserRepository(stub, c, logger.NewNop())
	require.NoError(t, repo.Create(ivan))

	deleted, err := repo.Delete(ivan.ID)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{cache.UserCacheKey(ivan.ID)}, c.deleted)
	assert.NotContains(t, c.items, cache.UserCacheKey(ivan.ID))
}

func TestCachedUserRepository_DeletePassesResultThrough(t *testing.T) {
	c := newFakeCache()
	c.err = errors.New("redis down")
	stub := &stubRepository{deleteFn: func(id int) (bool, error) { return false, nil }}
	repo := NewCachedUserRepository(stub, c, logger.NewNop())

	deleted, err := repo.Delete(ivan.ID)

	require.NoError(t, err, "cache errors are not reported to the caller")
	assert.False(t, deleted)
}

func TestCachedUserRepository_DeleteStoreErrorSkipsInvalidation(t *testing.T) {
	c := newFakeCache()
	errStore := errors.New("database is not available")
	stub := &stubRepository{deleteFn: func(id int) (bool, error) { return false, errStore }}
	repo := NewCachedUserRepository(stub, c, logger.NewNop())

	deleted, err := repo.Delete(ivan.ID)

	assert.False(t, deleted)
	assert.Same(t, errStore, err)
	assert.Empty(t, c.deleted)
}

type recordingLogger struct {
	logger.Logger
	contexts int
	messages []string
}

func (l *recordingLogger) WithContext(context.Context) logger.Logger {
	l.contexts++
	return l
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, msg)
}

func TestCachedUserRepository_CacheErrorsLoggedWithContext(t *testing.T) {
	c := newFakeCache()
	c.err = errors.New("redis down")
	log := &recordingLogger{Logger: logger.NewNop()}
	stub := &stubRepository{
		findFn:   func(id int) (*domain.User, error) { u := ivan; return &u, nil },
		deleteFn: func(id int) (bool, error) { return true, nil },
	}
	repo := NewCachedUserRepository(stub, c, log)

	_, err := repo.FindByID(ivan.ID)
	require.NoError(t, err)
	_, err = repo.Delete(ivan.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Cache read error for user",
		"Error caching user",
		"Error invalidating user cache",
	}, log.messages)
	assert.Equal(t, len(log.messages), log.contexts)
}
