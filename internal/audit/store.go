package audit

import (
	"context"

	"github.com/google/uuid"
)

// Store is an append-only event sink with a per-posting read side.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Event, error)
}
