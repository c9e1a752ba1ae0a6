package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

const (
	projectKeyPrefix   = "clonex:project:" // clonex:project:{id}
	ownerListKeyPrefix = "clonex:owner:"   // clonex:owner:{owner_id}:projects, clonex:owner:{owner_id}:ver
	defaultCacheTTL    = 5 * time.Minute
	listVersionTTL     = 24 * time.Hour
)

// errListChanged aborts a list write-back that raced with an invalidation.
var errListChanged = errors.New("owner list changed during read")

// CachedStore is a read-through Redis cache in front of another Store.
// Cache failures never fail a call; the origin stays the source of truth.
type CachedStore struct {
	origin Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore wraps origin with a Redis cache.
func NewCachedStore(origin Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{origin: origin, client: client, ttl: ttl}
}

func (s *CachedStore) Create(ctx context.Context, ownerID string, req domain.CreateProjectRequest) (*domain.Project, error) {
	p, err := s.origin.Create(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	s.put(ctx, p)
	s.invalidateList(ctx, ownerID)
	return p, nil
}

// List serves the owner's list from cache, falling back to the origin. The
// origin result is only cached if no write invalidated the list meanwhile.
func (s *CachedStore) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	key := ownerListKey(ownerID)
	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var out []domain.Project
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[cache] list owner=%s: %v", ownerID, err)
	}

	verKey := ownerVersionKey(ownerID)
	ver, verErr := listVersion(ctx, s.client, verKey)

	out, err := s.origin.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		return out, nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := listVersion(ctx, tx, verKey)
		if err != nil {
			return err
		}
		if cur != ver {
			return errListChanged
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, verKey)
	if err != nil && !errors.Is(err, errListChanged) && !errors.Is(err, redis.TxFailedErr) {
		log.Printf("[cache] store list owner=%s: %v", ownerID, err)
	}
	return out, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func listVersion(ctx context.Context, c getter, verKey string) (int64, error) {
	v, err := c.Get(ctx, verKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (s *CachedStore) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if data, err := s.client.Get(ctx, projectKey(id)).Bytes(); err == nil {
		var p domain.Project
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[cache] get project=%s: %v", id, err)
	}

	p, err := s.origin.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.put(ctx, p)
	return p, nil
}

func (s *CachedStore) SetStarred(ctx context.Context, ownerID, id string, starred bool) (*domain.Project, error) {
	p, err := s.origin.SetStarred(ctx, ownerID, id, starred)
	if err != nil {
		return nil, err
	}
	s.put(ctx, p)
	s.invalidateList(ctx, ownerID)
	return p, nil
}

func (s *CachedStore) put(ctx context.Context, p *domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, projectKey(p.ID), data, s.ttl).Err(); err != nil {
		log.Printf("[cache] store project=%s: %v", p.ID, err)
	}
}

func (s *CachedStore) invalidateList(ctx context.Context, ownerID string) {
	verKey := ownerVersionKey(ownerID)
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, verKey)
	pipe.Expire(ctx, verKey, listVersionTTL)
	pipe.Del(ctx, ownerListKey(ownerID))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[cache] invalidate owner=%s: %v", ownerID, err)
	}
}

func projectKey(id string) string {
	return projectKeyPrefix + id
}

func ownerListKey(ownerID string) string {
	return ownerListKeyPrefix + ownerID + ":projects"
}

func ownerVersionKey(ownerID string) string {
	return ownerListKeyPrefix + ownerID + ":ver"
}
