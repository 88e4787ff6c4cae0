package session

import "context"

// Store holds active sessions. Implementations expire entries at or after
// ExpiresAt; Find never returns an expired session.
type Store interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
