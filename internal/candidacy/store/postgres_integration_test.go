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

	"talentgate/internal/candidacy"
	"talentgate/internal/candidacy/models"
	"talentgate/internal/candidacy/store"
	identitymodels "talentgate/internal/identity/models"
	identitystore "talentgate/internal/identity/store"
	postingmodels "talentgate/internal/posting/models"
	postingstore "talentgate/internal/posting/store"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres

	jobID       uuid.UUID
	candidateID uuid.UUID
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

// SetupTest seeds one job and one candidate so application rows satisfy
// their foreign keys.
func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx,
		"applications", "audit_events", "candidates", "jobs"))

	posting, err := postingmodels.NewPosting(uuid.New(), "Backend Engineer "+uuid.NewString(), time.Now())
	s.Require().NoError(err)
	s.Require().NoError(postingstore.NewPostgres(s.postgres.DB).Create(ctx, posting))
	s.jobID = posting.ID

	candidate, err := identitymodels.NewCandidate(uuid.New(), "alice", "$2a$10$fakehashfakehashfakehash", identitymodels.RoleCandidate, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(identitystore.NewPostgres(s.postgres.DB).Create(ctx, candidate))
	s.candidateID = candidate.ID
}

func (s *PostgresStoreSuite) TestInsertAndFind() {
	ctx := context.Background()
	application := models.NewApplication(s.jobID, s.candidateID, "alice", time.Now())
	s.Require().NoError(s.store.Insert(ctx, application))

	found, err := s.store.Find(ctx, s.jobID, s.candidateID)
	s.Require().NoError(err)
	s.Equal(candidacy.StateApplied, found.State)
	s.Equal("alice", found.Username, "username joins in from the candidates table")

	_, err = s.store.Find(ctx, s.jobID, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestConcurrentInsertSamePair() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Insert(ctx, models.NewApplication(s.jobID, s.candidateID, "alice", time.Now()))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load(), "composite primary key admits one row per pair")
	s.Equal(int32(goroutines-1), conflicts.Load())
}

// TestConcurrentAdvance verifies FOR UPDATE serializes state transitions:
// of many racing interview attempts exactly one advances, the rest re-read
// the already-advanced row and fail validation.
func (s *PostgresStoreSuite) TestConcurrentAdvance() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, models.NewApplication(s.jobID, s.candidateID, "alice", time.Now())))

	const goroutines = 10
	var wg sync.WaitGroup
	var advanced, rejected atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Execute(ctx, s.jobID, s.candidateID,
				func(a *models.Application) error {
					if _, ok := candidacy.Advance(a.State, candidacy.EventInterview); !ok {
						return dErrors.New(dErrors.CodeInvalidState, "not applied")
					}
					return nil
				},
				func(a *models.Application) {
					a.State, _ = candidacy.Advance(a.State, candidacy.EventInterview)
					a.UpdatedAt = time.Now()
				},
			)
			if err == nil {
				advanced.Add(1)
			} else if dErrors.HasCode(err, dErrors.CodeInvalidState) {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), advanced.Load(), "exactly one advance should win")
	s.Equal(int32(goroutines-1), rejected.Load())

	found, err := s.store.Find(ctx, s.jobID, s.candidateID)
	s.Require().NoError(err)
	s.Equal(candidacy.StateInterviewed, found.State)
}

func (s *PostgresStoreSuite) TestListByJob() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, models.NewApplication(s.jobID, s.candidateID, "alice", time.Now())))

	applications, err := s.store.ListByJob(ctx, s.jobID)
	s.Require().NoError(err)
	s.Require().Len(applications, 1)
	s.Equal("alice", applications[0].Username)
}
