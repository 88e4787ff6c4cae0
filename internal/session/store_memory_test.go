package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"talentgate/internal/identity/models"
	"talentgate/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
	s.store = NewInMemoryStore(WithClock(func() time.Time { return s.now }))
}

func (s *MemoryStoreSuite) session(ttl time.Duration) Session {
	return Session{
		ID:          uuid.NewString(),
		CandidateID: uuid.New(),
		Username:    "alice",
		Role:        models.RoleCandidate,
		CreatedAt:   s.now,
		ExpiresAt:   s.now.Add(ttl),
	}
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	session := s.session(time.Hour)
	s.Require().NoError(s.store.Save(s.ctx, session))

	found, err := s.store.Find(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.CandidateID, found.CandidateID)

	_, err = s.store.Find(s.ctx, "unknown")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestFindFiltersExpired() {
	session := s.session(time.Hour)
	s.Require().NoError(s.store.Save(s.ctx, session))

	s.now = s.now.Add(2 * time.Hour)
	_, err := s.store.Find(s.ctx, session.ID)
	s.ErrorIs(err, sentinel.ErrExpired)
}

func (s *MemoryStoreSuite) TestDelete() {
	session := s.session(time.Hour)
	s.Require().NoError(s.store.Save(s.ctx, session))

	s.Require().NoError(s.store.Delete(s.ctx, session.ID))
	_, err := s.store.Find(s.ctx, session.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Deleting again is a no-op.
	s.NoError(s.store.Delete(s.ctx, session.ID))
}

func (s *MemoryStoreSuite) TestSweepReapsExpired() {
	live := s.session(time.Hour)
	dead := s.session(time.Minute)
	s.Require().NoError(s.store.Save(s.ctx, live))
	s.Require().NoError(s.store.Save(s.ctx, dead))

	s.now = s.now.Add(30 * time.Minute)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- s.store.Sweep(ctx, time.Millisecond) }()

	s.Eventually(func() bool {
		s.store.mu.RLock()
		defer s.store.mu.RUnlock()
		_, exists := s.store.sessions[dead.ID]
		return !exists
	}, time.Second, 5*time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)

	found, err := s.store.Find(s.ctx, live.ID)
	s.Require().NoError(err)
	s.Equal(live.ID, found.ID)
}
