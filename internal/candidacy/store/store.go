// Package store persists applications (candidacies). Implementations
// guarantee at most one row per (job, candidate) pair and serialize updates
// per pair: Execute runs validate and mutate while holding the pair's lock,
// so racing advances resolve to first-writer-wins with the loser observing
// the already-advanced state.
package store

import (
	"context"

	"github.com/google/uuid"

	"talentgate/internal/candidacy/models"
)

type ApplicationStore interface {
	// Insert creates an application. Returns sentinel.ErrConflict when the
	// (job, candidate) pair already applied.
	Insert(ctx context.Context, application *models.Application) error
	Find(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error)
	// Execute atomically validates then mutates one application.
	Execute(ctx context.Context, jobID, candidateID uuid.UUID, validate func(*models.Application) error, mutate func(*models.Application)) (*models.Application, error)
	// ListByJob returns all applications for a posting. Order is
	// unspecified.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
}
