// Package store persists candidate identity records. Implementations must
// enforce username uniqueness at insert time; races on Create resolve to
// exactly one success and sentinel.ErrConflict for the rest.
package store

import (
	"context"

	"github.com/google/uuid"

	"talentgate/internal/identity/models"
)

type CandidateStore interface {
	// Create inserts a candidate. Returns sentinel.ErrConflict when the
	// username is already taken.
	Create(ctx context.Context, candidate *models.Candidate) error
	FindByUsername(ctx context.Context, username string) (*models.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
}
