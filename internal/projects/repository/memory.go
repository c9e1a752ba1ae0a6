package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]domain.Project
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]domain.Project),
		now:  time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, ownerID string, req domain.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	for i := 0; i < idAttempts; i++ {
		candidate, err := newProjectID()
		if err != nil {
			return nil, err
		}
		if _, taken := s.byID[candidate]; !taken {
			id = candidate
			break
		}
	}
	if id == "" {
		return nil, fmt.Errorf("failed to generate unique project id")
	}

	p := domain.Project{
		ID:          id,
		OwnerID:     ownerID,
		Name:        req.Name,
		Prompt:      req.Prompt,
		Model:       req.Model,
		Attachments: cloneAttachments(req.Attachments),
		CreatedAt:   s.now().UTC(),
	}
	s.byID[id] = p
	return clonePtr(p), nil
}

func (s *MemoryStore) List(_ context.Context, ownerID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Project, 0, 8)
	for _, p := range s.byID {
		if p.OwnerID == ownerID {
			out = append(out, *clonePtr(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePtr(p), nil
}

func (s *MemoryStore) SetStarred(_ context.Context, ownerID, id string, starred bool) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	p.Starred = starred
	s.byID[id] = p
	return clonePtr(p), nil
}

func clonePtr(p domain.Project) *domain.Project {
	p.Attachments = cloneAttachments(p.Attachments)
	return &p
}

func cloneAttachments(in []domain.Attachment) []domain.Attachment {
	out := make([]domain.Attachment, len(in))
	copy(out, in)
	return out
}
