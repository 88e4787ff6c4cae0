// Package service implements the job registry: posting creation, lookup,
// listing and the Open→Closed lifecycle.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	candidacymodels "talentgate/internal/candidacy/models"
	"talentgate/internal/posting/models"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/requestcontext"
)

type PostingStore interface {
	Create(ctx context.Context, posting *models.Posting) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Posting, error)
	List(ctx context.Context) ([]*models.Posting, error)
	Execute(ctx context.Context, id uuid.UUID, validate func(*models.Posting) error, mutate func(*models.Posting)) (*models.Posting, error)
}

// ApplicationLister exposes the read side of the applications store needed
// to assemble a posting's applicant map.
type ApplicationLister interface {
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*candidacymodels.Application, error)
}

// Service manages posting lifecycle. Reads re-assemble the applicants map
// from the applications store so callers always see current candidacy
// states.
type Service struct {
	postings     PostingStore
	applications ApplicationLister
}

func New(postings PostingStore, applications ApplicationLister) (*Service, error) {
	if postings == nil {
		return nil, errors.New("posting store is required")
	}
	if applications == nil {
		return nil, errors.New("application lister is required")
	}
	return &Service{postings: postings, applications: applications}, nil
}

// Create opens a new posting. Duplicate names return Conflict.
func (s *Service) Create(ctx context.Context, name string) (*models.Posting, error) {
	posting, err := models.NewPosting(uuid.New(), name, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.postings.Create(ctx, posting); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "posting name must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create posting")
	}
	return posting, nil
}

// Get loads one posting with its applicants.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Posting, error) {
	posting, err := s.postings.FindByID(ctx, id)
	if err != nil {
		return nil, wrapPostingErr(err)
	}
	if err := s.attachApplicants(ctx, posting); err != nil {
		return nil, err
	}
	return posting, nil
}

// List returns all postings with applicants. Order is unspecified.
func (s *Service) List(ctx context.Context) ([]*models.Posting, error) {
	postings, err := s.postings.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list postings")
	}
	for _, posting := range postings {
		if err := s.attachApplicants(ctx, posting); err != nil {
			return nil, err
		}
	}
	return postings, nil
}

// Close transitions a posting to Closed. Closing an already-closed posting
// is a no-op, not an error.
func (s *Service) Close(ctx context.Context, id uuid.UUID) (*models.Posting, error) {
	now := requestcontext.Now(ctx)
	posting, err := s.postings.Execute(ctx, id,
		func(*models.Posting) error { return nil },
		func(p *models.Posting) { p.ApplyClosure(now) },
	)
	if err != nil {
		return nil, wrapPostingErr(err)
	}
	return posting, nil
}

func (s *Service) attachApplicants(ctx context.Context, posting *models.Posting) error {
	applications, err := s.applications.ListByJob(ctx, posting.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applicants")
	}
	for _, application := range applications {
		posting.Applicants[application.Username] = application.State
	}
	return nil
}

func wrapPostingErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "posting not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "posting store failure")
}
