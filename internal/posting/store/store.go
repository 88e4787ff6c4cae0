// Package store persists job postings. Implementations enforce name
// uniqueness at insert time and serialize posting updates per key: Execute
// runs validate and mutate while holding the posting's lock (mutex in
// memory, row lock in PostgreSQL).
package store

import (
	"context"

	"github.com/google/uuid"

	"talentgate/internal/posting/models"
)

type PostingStore interface {
	// Create inserts a posting. Returns sentinel.ErrConflict when the name
	// is already in use.
	Create(ctx context.Context, posting *models.Posting) error
	// FindByID loads a posting including its applicants.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Posting, error)
	// List returns all postings with applicants. Order is unspecified.
	List(ctx context.Context) ([]*models.Posting, error)
	// Execute atomically validates then mutates a posting. The callbacks
	// see the current row under lock; mutate runs only when validate
	// returns nil. The updated posting is returned.
	Execute(ctx context.Context, id uuid.UUID, validate func(*models.Posting) error, mutate func(*models.Posting)) (*models.Posting, error)
}
