package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// countingStore wraps a MemoryStore and counts reads that reach it.
type countingStore struct {
	*MemoryStore
	lists int
	gets  int
	// afterList runs once the origin read is done, before the result is returned.
	afterList func()
}

func (s *countingStore) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	s.lists++
	out, err := s.MemoryStore.List(ctx, ownerID)
	if s.afterList != nil {
		s.afterList()
	}
	return out, err
}

func (s *countingStore) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	s.gets++
	return s.MemoryStore.GetByID(ctx, id)
}

func setupCachedStore(t *testing.T) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	origin := &countingStore{MemoryStore: NewMemoryStore()}
	return NewCachedStore(origin, client, time.Minute), origin, mr
}

func TestCachedStore_GetByIDReadThrough(t *testing.T) {
	ctx := context.Background()
	s, origin, mr := setupCachedStore(t)

	p, err := origin.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "x", Prompt: "x", Model: domain.ModelGPT4})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 1, origin.gets)
	assert.True(t, mr.Exists(projectKey(p.ID)))

	got, err = s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ModelGPT4, got.Model)
	assert.Equal(t, 1, origin.gets, "second read should be served from cache")

	mr.FastForward(2 * time.Minute)
	_, err = s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, origin.gets)
}

func TestCachedStore_GetByIDMissing(t *testing.T) {
	s, _, mr := setupCachedStore(t)
	_, err := s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, mr.Exists(projectKey("missing")))
}

func TestCachedStore_ListInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	s, origin, mr := setupCachedStore(t)

	_, err := s.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "a", Prompt: "a"})
	require.NoError(t, err)

	items, err := s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	_, err = s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, origin.lists)
	assert.True(t, mr.Exists(ownerListKey("user-1")))

	p, err := s.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "b", Prompt: "b"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(ownerListKey("user-1")))

	items, err = s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, origin.lists)

	_, err = s.SetStarred(ctx, "user-1", p.ID, true)
	require.NoError(t, err)
	assert.False(t, mr.Exists(ownerListKey("user-1")))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Starred)
	assert.Equal(t, 0, origin.gets, "starring refreshes the cached project")
}

func TestCachedStore_RedisDownFallsBackToOrigin(t *testing.T) {
	ctx := context.Background()
	s, origin, mr := setupCachedStore(t)

	p, err := s.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "a", Prompt: "a"})
	require.NoError(t, err)

	mr.Close()

	items, err := s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 1, origin.gets)
}

func TestCachedStore_OriginErrorsPassThrough(t *testing.T) {
	s, _, mr := setupCachedStore(t)
	_, err := s.Create(context.Background(), "", domain.CreateProjectRequest{Prompt: "x"})
	assert.Error(t, err)
	assert.Empty(t, mr.Keys())
}

func TestCachedStore_StaleListIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	s, origin, mr := setupCachedStore(t)

	_, err := s.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "a", Prompt: "a"})
	require.NoError(t, err)

	// a create for the same owner lands while the list is being read
	origin.afterList = func() {
		origin.afterList = nil
		_, err := s.Create(ctx, "user-1", domain.CreateProjectRequest{Name: "b", Prompt: "b"})
		require.NoError(t, err)
	}
	items, err := s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, mr.Exists(ownerListKey("user-1")))

	items, err = s.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, mr.Exists(ownerListKey("user-1")))
}
