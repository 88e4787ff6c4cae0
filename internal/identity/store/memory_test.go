package store

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
	store *InMemory
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newCandidate(username string) *models.Candidate {
	return &models.Candidate{
		ID:             uuid.New(),
		Username:       username,
		CredentialHash: "$2a$10$fakehash",
		Role:           models.RoleCandidate,
		CreatedAt:      time.Now(),
	}
}

func (s *MemoryStoreSuite) TestCreateAndLookups() {
	s.Run("creates and finds by username and ID", func() {
		candidate := s.newCandidate("alice")
		s.Require().NoError(s.store.Create(s.ctx, candidate))

		byName, err := s.store.FindByUsername(s.ctx, "alice")
		s.Require().NoError(err)
		s.Equal(candidate.ID, byName.ID)

		byID, err := s.store.FindByID(s.ctx, candidate.ID)
		s.Require().NoError(err)
		s.Equal("alice", byID.Username)
	})

	s.Run("unknown lookups return ErrNotFound", func() {
		_, err := s.store.FindByUsername(s.ctx, "nobody")
		s.ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestUsernameUniqueness() {
	first := s.newCandidate("taken")
	s.Require().NoError(s.store.Create(s.ctx, first))

	second := s.newCandidate("taken")
	err := s.store.Create(s.ctx, second)
	s.ErrorIs(err, sentinel.ErrConflict)

	// First registration stays valid and retrievable.
	found, err := s.store.FindByUsername(s.ctx, "taken")
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
}

func (s *MemoryStoreSuite) TestReturnsCopies() {
	candidate := s.newCandidate("copy")
	s.Require().NoError(s.store.Create(s.ctx, candidate))

	found, err := s.store.FindByUsername(s.ctx, "copy")
	s.Require().NoError(err)
	found.Username = "mutated"

	again, err := s.store.FindByUsername(s.ctx, "copy")
	s.Require().NoError(err)
	s.Equal("copy", again.Username)
}
