package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"talentgate/internal/identity/models"
	"talentgate/pkg/platform/sentinel"
)

// InMemory keeps candidates in mutex-guarded maps. Uniqueness and lookup
// semantics match the PostgreSQL implementation exactly.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]models.Candidate
	byUsername map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[uuid.UUID]models.Candidate),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (s *InMemory) Create(_ context.Context, candidate *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[candidate.Username]; taken {
		return sentinel.ErrConflict
	}
	s.byUsername[candidate.Username] = candidate.ID
	s.byID[candidate.ID] = *candidate
	return nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	candidate := s.byID[id]
	return &candidate, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &candidate, nil
}
