package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "talentgate/pkg/domain-errors"
)

// Role separates the two kinds of authenticated actors. Candidates apply to
// postings; recruiters create postings and advance review pipelines.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Candidate is an identity record. Immutable after creation; there are no
// profile edits in this system.
type Candidate struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	// CredentialHash is a bcrypt hash. Never serialize.
	CredentialHash string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCandidate validates inputs and constructs a record.
func NewCandidate(id uuid.UUID, username, credentialHash string, role Role, now time.Time) (*Candidate, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "username is required")
	}
	if credentialHash == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "credential is required")
	}
	if role != RoleCandidate && role != RoleRecruiter {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown role")
	}
	return &Candidate{
		ID:             id,
		Username:       username,
		CredentialHash: credentialHash,
		Role:           role,
		CreatedAt:      now,
	}, nil
}
