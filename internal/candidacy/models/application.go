package models

import (
	"time"

	"github.com/google/uuid"

	"talentgate/internal/candidacy"
)

// Application is one candidate's candidacy for one posting. The
// (JobID, CandidateID) pair is the identity; at most one row exists per
// pair.
type Application struct {
	JobID       uuid.UUID       `json:"job_id"`
	CandidateID uuid.UUID       `json:"candidate_id"`
	// Username is denormalized for read paths; the relational store derives
	// it from the candidates table.
	Username  string          `json:"username"`
	State     candidacy.State `json:"-"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewApplication constructs a candidacy in the Applied state.
func NewApplication(jobID, candidateID uuid.UUID, username string, now time.Time) *Application {
	return &Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Username:    username,
		State:       candidacy.StateApplied,
		UpdatedAt:   now,
	}
}
