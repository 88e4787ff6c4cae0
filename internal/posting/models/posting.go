package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"talentgate/internal/candidacy"
	dErrors "talentgate/pkg/domain-errors"
)

// Status is a posting lifecycle state. Wire values mirror the jobs.state
// column: 0=Open, 1=Closed.
type Status uint8

const (
	StatusOpen   Status = 0
	StatusClosed Status = 1
)

func (s Status) String() string {
	if s == StatusClosed {
		return "closed"
	}
	return "open"
}

// Posting is a job opening. Applicants maps username to candidacy state;
// iteration order carries no meaning.
type Posting struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	Status     Status                     `json:"-"`
	Applicants map[string]candidacy.State `json:"-"`
	CreatedAt  time.Time                  `json:"created_at"`
	ClosedAt   *time.Time                 `json:"closed_at,omitempty"`
}

// NewPosting validates the name and constructs an open posting with no
// applicants.
func NewPosting(id uuid.UUID, name string, now time.Time) (*Posting, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "posting name is required")
	}
	return &Posting{
		ID:         id,
		Name:       name,
		Status:     StatusOpen,
		Applicants: make(map[string]candidacy.State),
		CreatedAt:  now,
	}, nil
}

// Open reports whether the posting still accepts workflow actions.
func (p *Posting) Open() bool {
	return p.Status == StatusOpen
}

// ApplyClosure transitions Open to Closed. Closing an already-closed
// posting is a no-op; the transition happens at most once so ClosedAt never
// moves.
func (p *Posting) ApplyClosure(now time.Time) {
	if p.Status == StatusClosed {
		return
	}
	p.Status = StatusClosed
	p.ClosedAt = &now
}

// Clone deep-copies the posting so store callers cannot alias internal
// state.
func (p *Posting) Clone() *Posting {
	clone := *p
	clone.Applicants = make(map[string]candidacy.State, len(p.Applicants))
	for username, state := range p.Applicants {
		clone.Applicants[username] = state
	}
	if p.ClosedAt != nil {
		closedAt := *p.ClosedAt
		clone.ClosedAt = &closedAt
	}
	return &clone
}
