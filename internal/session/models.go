// Package session converts successful authentication into bearer tokens
// and tracks the server-side sessions behind them. Tokens are signed JWTs
// carrying the session ID; logout deletes the session, so a token dies
// before its JWT expiry when revoked.
package session

import (
	"time"

	"github.com/google/uuid"

	"talentgate/internal/identity/models"
)

// Session is the server-side half of a bearer token.
type Session struct {
	ID          string      `json:"session_id"`
	CandidateID uuid.UUID   `json:"candidate_id"`
	Username    string      `json:"username"`
	Role        models.Role `json:"role"`
	Device      string      `json:"device,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given
// time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
