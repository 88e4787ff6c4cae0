//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"talentgate/internal/posting/models"
	"talentgate/internal/posting/store"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(),
		"applications", "audit_events", "candidates", "jobs"))
}

func (s *PostgresStoreSuite) newPosting(name string) *models.Posting {
	posting, err := models.NewPosting(uuid.New(), name, time.Now())
	s.Require().NoError(err)
	return posting
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	posting := s.newPosting("Backend Engineer")
	s.Require().NoError(s.store.Create(ctx, posting))

	found, err := s.store.FindByID(ctx, posting.ID)
	s.Require().NoError(err)
	s.Equal("Backend Engineer", found.Name)
	s.True(found.Open())
	s.Nil(found.ClosedAt)

	_, err = s.store.FindByID(ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestNameUniquenessIsCaseInsensitive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newPosting("Backend Engineer")))
	s.ErrorIs(s.store.Create(ctx, s.newPosting("backend engineer")), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestExecuteClose() {
	ctx := context.Background()
	posting := s.newPosting("Backend Engineer")
	s.Require().NoError(s.store.Create(ctx, posting))

	closedAt := time.Now()
	updated, err := s.store.Execute(ctx, posting.ID,
		func(*models.Posting) error { return nil },
		func(p *models.Posting) { p.ApplyClosure(closedAt) },
	)
	s.Require().NoError(err)
	s.False(updated.Open())
	s.Require().NotNil(updated.ClosedAt)

	found, err := s.store.FindByID(ctx, posting.ID)
	s.Require().NoError(err)
	s.False(found.Open())
}

// TestConcurrentClose verifies the row lock serializes closures: every
// Execute succeeds but the transition runs once, so ClosedAt never moves.
func (s *PostgresStoreSuite) TestConcurrentClose() {
	ctx := context.Background()
	posting := s.newPosting("Backend Engineer")
	s.Require().NoError(s.store.Create(ctx, posting))

	const goroutines = 10
	var wg sync.WaitGroup
	var failures atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(ctx, posting.ID,
				func(*models.Posting) error { return nil },
				func(p *models.Posting) { p.ApplyClosure(time.Now()) },
			)
			if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(0), failures.Load())
	found, err := s.store.FindByID(ctx, posting.ID)
	s.Require().NoError(err)
	s.False(found.Open())
}
