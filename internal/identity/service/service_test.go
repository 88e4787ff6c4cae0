package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"talentgate/internal/identity/models"
	"talentgate/internal/identity/store"
	dErrors "talentgate/pkg/domain-errors"
)

type IdentityServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestIdentityServiceSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceSuite))
}

func (s *IdentityServiceSuite) SetupTest() {
	s.ctx = context.Background()
	var err error
	s.service, err = New(store.NewInMemory())
	s.Require().NoError(err)
}

func (s *IdentityServiceSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)
}

func (s *IdentityServiceSuite) TestRegister() {
	s.Run("registers a candidate with hashed credential", func() {
		candidate, err := s.service.Register(s.ctx, "alice", "pw")
		s.Require().NoError(err)
		s.Equal("alice", candidate.Username)
		s.Equal(models.RoleCandidate, candidate.Role)
		s.NotEqual("pw", candidate.CredentialHash)
		s.NotEmpty(candidate.ID)
	})

	s.Run("duplicate username returns conflict, first stays valid", func() {
		first, err := s.service.Register(s.ctx, "bob", "pw1")
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, "bob", "pw2")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		found, err := s.service.GetByUsername(s.ctx, "bob")
		s.Require().NoError(err)
		s.Equal(first.ID, found.ID)
	})

	s.Run("empty username is rejected", func() {
		_, err := s.service.Register(s.ctx, "   ", "pw")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("empty password is rejected", func() {
		_, err := s.service.Register(s.ctx, "carol", "")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *IdentityServiceSuite) TestAuthenticate() {
	_, err := s.service.Register(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	s.Run("correct credentials resolve the identity", func() {
		candidate, err := s.service.Authenticate(s.ctx, "alice", "pw")
		s.Require().NoError(err)
		s.Equal("alice", candidate.Username)
	})

	s.Run("wrong password and unknown user are indistinguishable", func() {
		_, wrongPw := s.service.Authenticate(s.ctx, "alice", "nope")
		_, unknown := s.service.Authenticate(s.ctx, "mallory", "nope")
		s.Require().Error(wrongPw)
		s.Require().Error(unknown)
		s.Equal(wrongPw.Error(), unknown.Error())
		s.True(dErrors.HasCode(wrongPw, dErrors.CodeUnauthorized))
		s.True(dErrors.HasCode(unknown, dErrors.CodeUnauthorized))
	})
}

func (s *IdentityServiceSuite) TestEnsureRecruiter() {
	s.Run("creates the recruiter on first call", func() {
		s.Require().NoError(s.service.EnsureRecruiter(s.ctx, "hr", "secret"))
		recruiter, err := s.service.GetByUsername(s.ctx, "hr")
		s.Require().NoError(err)
		s.Equal(models.RoleRecruiter, recruiter.Role)
	})

	s.Run("is idempotent", func() {
		s.Require().NoError(s.service.EnsureRecruiter(s.ctx, "hr", "secret"))
		s.Require().NoError(s.service.EnsureRecruiter(s.ctx, "hr", "other"))

		// Original credential still works.
		_, err := s.service.Authenticate(s.ctx, "hr", "secret")
		s.NoError(err)
	})
}
