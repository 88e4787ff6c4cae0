// Package service implements the workflow engine: the rules governing who
// may do what to a candidacy, in which posting state, and in which order.
//
// All four operations are authenticated. Apply acts on the caller's own
// identity; interview, approve and reject act on a named candidate and are
// recruiter-only (enforced at the transport layer, re-checked here).
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"talentgate/internal/audit"
	"talentgate/internal/candidacy"
	candidacymodels "talentgate/internal/candidacy/models"
	identitymodels "talentgate/internal/identity/models"
	"talentgate/internal/pipeline/metrics"
	postingmodels "talentgate/internal/posting/models"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/requestcontext"
)

type PostingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*postingmodels.Posting, error)
	Execute(ctx context.Context, id uuid.UUID, validate func(*postingmodels.Posting) error, mutate func(*postingmodels.Posting)) (*postingmodels.Posting, error)
}

type ApplicationStore interface {
	Insert(ctx context.Context, application *candidacymodels.Application) error
	Execute(ctx context.Context, jobID, candidateID uuid.UUID, validate func(*candidacymodels.Application) error, mutate func(*candidacymodels.Application)) (*candidacymodels.Application, error)
}

type IdentityReader interface {
	GetByUsername(ctx context.Context, username string) (*identitymodels.Candidate, error)
}

type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates postings, identities and candidacies.
type Service struct {
	postings     PostingStore
	applications ApplicationStore
	identities   IdentityReader
	audit        AuditEmitter
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func New(postings PostingStore, applications ApplicationStore, identities IdentityReader, auditor AuditEmitter, m *metrics.Metrics, logger *slog.Logger) (*Service, error) {
	if postings == nil || applications == nil || identities == nil {
		return nil, errors.New("posting, application and identity stores are required")
	}
	if auditor == nil {
		return nil, errors.New("audit emitter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		postings:     postings,
		applications: applications,
		identities:   identities,
		audit:        auditor,
		metrics:      m,
		logger:       logger,
	}, nil
}

// Apply creates a candidacy for the authenticated caller on an open
// posting. A second application for the same (job, candidate) pair returns
// Conflict; the insert is atomic in the store, so two racing applies cannot
// both succeed.
func (s *Service) Apply(ctx context.Context, jobID uuid.UUID) (*candidacymodels.Application, error) {
	ident, ok := requestcontext.IdentityFrom(ctx)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if ident.Role != string(identitymodels.RoleCandidate) {
		return nil, dErrors.New(dErrors.CodeForbidden, "only candidates may apply")
	}

	posting, err := s.getPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.Open() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "posting is closed")
	}

	application := candidacymodels.NewApplication(jobID, ident.CandidateID, ident.Username, requestcontext.Now(ctx))
	if err := s.applications.Insert(ctx, application); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "already applied to this posting")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save application")
	}

	s.emit(ctx, audit.ActionApply, ident.Username, jobID, ident.Username)
	if s.metrics != nil {
		s.metrics.Applications.Inc()
	}
	return application, nil
}

// Interview advances a named candidacy from Applied to Interviewed.
func (s *Service) Interview(ctx context.Context, username string, jobID uuid.UUID) (*candidacymodels.Application, error) {
	application, err := s.advance(ctx, username, jobID, candidacy.EventInterview)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Interviews.Inc()
	}
	return application, nil
}

// Approve advances a named candidacy from Interviewed to Approved and
// closes the posting: approving one candidate terminates the posting for
// everyone else. The closure itself is idempotent.
func (s *Service) Approve(ctx context.Context, username string, jobID uuid.UUID) (*candidacymodels.Application, error) {
	application, err := s.advance(ctx, username, jobID, candidacy.EventApprove)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	_, err = s.postings.Execute(ctx, jobID,
		func(*postingmodels.Posting) error { return nil },
		func(p *postingmodels.Posting) { p.ApplyClosure(now) },
	)
	if err != nil {
		// The candidacy is already Approved; surface the closure failure
		// rather than pretending the approve failed.
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "approved but failed to close posting")
	}

	if s.metrics != nil {
		s.metrics.Approvals.Inc()
		s.metrics.PostingsClosed.Inc()
	}
	s.emitActor(ctx, audit.ActionPostingClose, jobID, "")
	return application, nil
}

// Reject advances a named candidacy from Interviewed to Rejected. Like
// Approve, the transition is verified: rejecting a candidacy that was never
// interviewed returns InvalidState instead of silently doing nothing.
func (s *Service) Reject(ctx context.Context, username string, jobID uuid.UUID) (*candidacymodels.Application, error) {
	application, err := s.advance(ctx, username, jobID, candidacy.EventReject)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Rejections.Inc()
	}
	return application, nil
}

// advance applies one event to the (job, candidate) candidacy. The posting
// must be open and the event must be legal from the current state. The
// store serializes the update per pair, so a racing advance loses cleanly:
// it re-reads the already-advanced state and fails validation.
func (s *Service) advance(ctx context.Context, username string, jobID uuid.UUID, event candidacy.Event) (*candidacymodels.Application, error) {
	posting, err := s.getPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.Open() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "posting is closed")
	}

	candidate, err := s.identities.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	application, err := s.applications.Execute(ctx, jobID, candidate.ID,
		func(a *candidacymodels.Application) error {
			if _, ok := candidacy.Advance(a.State, event); !ok {
				return dErrors.New(dErrors.CodeInvalidState,
					"cannot "+string(event)+" a candidacy in state "+a.State.String())
			}
			return nil
		},
		func(a *candidacymodels.Application) {
			a.State, _ = candidacy.Advance(a.State, event)
			a.UpdatedAt = now
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no application for this candidate and posting")
		}
		var de *dErrors.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application")
	}

	s.emitActor(ctx, actionFor(event), jobID, username)
	return application, nil
}

func (s *Service) getPosting(ctx context.Context, jobID uuid.UUID) (*postingmodels.Posting, error) {
	posting, err := s.postings.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "posting not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load posting")
	}
	return posting, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, actor string, jobID uuid.UUID, subject string) {
	event := audit.Event{
		Actor:      actor,
		Action:     action,
		JobID:      jobID,
		Subject:    subject,
		OccurredAt: requestcontext.Now(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func (s *Service) emitActor(ctx context.Context, action audit.Action, jobID uuid.UUID, subject string) {
	actor := ""
	if ident, ok := requestcontext.IdentityFrom(ctx); ok {
		actor = ident.Username
	}
	s.emit(ctx, action, actor, jobID, subject)
}

func actionFor(event candidacy.Event) audit.Action {
	switch event {
	case candidacy.EventInterview:
		return audit.ActionInterview
	case candidacy.EventApprove:
		return audit.ActionApprove
	default:
		return audit.ActionReject
	}
}
