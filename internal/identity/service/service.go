// Package service implements the credential directory: registration and
// authentication of candidate identities.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"talentgate/internal/identity/models"
	"talentgate/internal/identity/secrets"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/requestcontext"
)

type CandidateStore interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	FindByUsername(ctx context.Context, username string) (*models.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
}

// Service manages identity records. It owns credential hashing; stores only
// ever see opaque hashes.
type Service struct {
	candidates CandidateStore
}

func New(candidates CandidateStore) (*Service, error) {
	if candidates == nil {
		return nil, errors.New("candidate store is required")
	}
	return &Service{candidates: candidates}, nil
}

// Register creates a candidate-role identity. Fails with Conflict when the
// username is taken; the original registration stays valid.
func (s *Service) Register(ctx context.Context, username, password string) (*models.Candidate, error) {
	return s.create(ctx, username, password, models.RoleCandidate)
}

// EnsureRecruiter creates a recruiter-role identity if the username is
// free. Used at startup to seed the bootstrap recruiter; an existing record
// is left untouched.
func (s *Service) EnsureRecruiter(ctx context.Context, username, password string) error {
	_, err := s.create(ctx, username, password, models.RoleRecruiter)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeConflict) {
		return err
	}
	return nil
}

func (s *Service) create(ctx context.Context, username, password string, role models.Role) (*models.Candidate, error) {
	hash, err := secrets.Hash(password)
	if err != nil {
		return nil, err
	}
	candidate, err := models.NewCandidate(uuid.New(), username, hash, role, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "username is already taken")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create candidate")
	}
	return candidate, nil
}

// Authenticate resolves a username/password pair to an identity. Unknown
// usernames and wrong passwords are indistinguishable to the caller, and
// both cost one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.Candidate, error) {
	username = strings.TrimSpace(username)
	candidate, err := s.candidates.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			secrets.VerifyDummy(password)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up candidate")
	}
	if err := secrets.Verify(password, candidate.CredentialHash); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	return candidate, nil
}

// Get returns the identity for an ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up candidate")
	}
	return candidate, nil
}

// GetByUsername returns the identity for a username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.Candidate, error) {
	candidate, err := s.candidates.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up candidate")
	}
	return candidate, nil
}
