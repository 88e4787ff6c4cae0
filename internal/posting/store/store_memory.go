package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"talentgate/internal/posting/models"
	"talentgate/pkg/platform/sentinel"
)

// InMemory keeps postings in mutex-guarded maps. Execute holds the write
// lock across validate and mutate, giving the same atomicity as the row
// lock in the PostgreSQL implementation.
type InMemory struct {
	mu       sync.RWMutex
	postings map[uuid.UUID]*models.Posting
	names    map[string]uuid.UUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		postings: make(map[uuid.UUID]*models.Posting),
		names:    make(map[string]uuid.UUID),
	}
}

func (s *InMemory) Create(_ context.Context, posting *models.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(posting.Name)
	if _, taken := s.names[key]; taken {
		return sentinel.ErrConflict
	}
	s.names[key] = posting.ID
	s.postings[posting.ID] = posting.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posting, ok := s.postings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return posting.Clone(), nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Posting, 0, len(s.postings))
	for _, posting := range s.postings {
		out = append(out, posting.Clone())
	}
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, id uuid.UUID, validate func(*models.Posting) error, mutate func(*models.Posting)) (*models.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posting, ok := s.postings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(posting); err != nil {
		return nil, err
	}
	mutate(posting)
	return posting.Clone(), nil
}
