package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"talentgate/internal/candidacy/models"
	"talentgate/pkg/platform/sentinel"
)

type pairKey struct {
	jobID       uuid.UUID
	candidateID uuid.UUID
}

// InMemory keeps applications in a mutex-guarded map keyed by the
// (job, candidate) pair. Insert and Execute hold the write lock, matching
// the uniqueness and per-key serialization of the PostgreSQL
// implementation.
type InMemory struct {
	mu           sync.RWMutex
	applications map[pairKey]*models.Application
}

func NewInMemory() *InMemory {
	return &InMemory{applications: make(map[pairKey]*models.Application)}
}

func (s *InMemory) Insert(_ context.Context, application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{application.JobID, application.CandidateID}
	if _, exists := s.applications[key]; exists {
		return sentinel.ErrConflict
	}
	clone := *application
	s.applications[key] = &clone
	return nil
}

func (s *InMemory) Find(_ context.Context, jobID, candidateID uuid.UUID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	application, ok := s.applications[pairKey{jobID, candidateID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *application
	return &clone, nil
}

func (s *InMemory) Execute(_ context.Context, jobID, candidateID uuid.UUID, validate func(*models.Application) error, mutate func(*models.Application)) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	application, ok := s.applications[pairKey{jobID, candidateID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(application); err != nil {
		return nil, err
	}
	mutate(application)
	clone := *application
	return &clone, nil
}

func (s *InMemory) ListByJob(_ context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Application
	for key, application := range s.applications {
		if key.jobID == jobID {
			clone := *application
			out = append(out, &clone)
		}
	}
	return out, nil
}
