// Package audit records an append-only trail of workflow mutations:
// who did what to which posting and candidate, and when.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names a workflow mutation.
type Action string

const (
	ActionRegister      Action = "candidate.registered"
	ActionPostingCreate Action = "posting.created"
	ActionPostingClose  Action = "posting.closed"
	ActionApply         Action = "candidacy.applied"
	ActionInterview     Action = "candidacy.interviewed"
	ActionApprove       Action = "candidacy.approved"
	ActionReject        Action = "candidacy.rejected"
)

// Event is one audit record. Actor is the authenticated username that
// performed the action; Subject is the candidate the action was about
// (equal to Actor for self-service actions).
type Event struct {
	Actor      string    `json:"actor"`
	Action     Action    `json:"action"`
	JobID      uuid.UUID `json:"job_id,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
