package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	identitymodels "talentgate/internal/identity/models"
	dErrors "talentgate/pkg/domain-errors"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/requestcontext"
)

// Authenticator is the identity-service surface the session issuer needs.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*identitymodels.Candidate, error)
}

// Service issues, validates and revokes sessions. It implements the
// transport layer's TokenValidator.
type Service struct {
	auth  Authenticator
	store Store
	codec *TokenCodec
	ttl   time.Duration
}

func New(auth Authenticator, store Store, codec *TokenCodec, ttl time.Duration) (*Service, error) {
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if codec == nil {
		return nil, errors.New("token codec is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Service{auth: auth, store: store, codec: codec, ttl: ttl}, nil
}

// Login authenticates and mints a bearer token. The device summary comes
// from the request's User-Agent; multiple concurrent sessions per identity
// are allowed.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Session, error) {
	candidate, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	now := requestcontext.Now(ctx)
	session := Session{
		ID:          uuid.NewString(),
		CandidateID: candidate.ID,
		Username:    candidate.Username,
		Role:        candidate.Role,
		Device:      deviceSummary(requestcontext.UserAgent(ctx)),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
	token, err := s.codec.Sign(session)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return token, &session, nil
}

// Validate resolves a bearer token to its identity. The token must verify
// and the server-side session must still exist; logout or expiry kills it.
func (s *Service) Validate(ctx context.Context, token string) (requestcontext.Identity, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return requestcontext.Identity{}, err
	}
	session, err := s.store.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
			return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "session revoked or expired")
		}
		return requestcontext.Identity{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.Expired(requestcontext.Now(ctx)) {
		return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "session revoked or expired")
	}
	return requestcontext.Identity{
		CandidateID: session.CandidateID,
		Username:    session.Username,
		Role:        string(session.Role),
		SessionID:   session.ID,
	}, nil
}

// Logout revokes the session behind a token. Unknown or already-revoked
// tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.SessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	return nil
}

func deviceSummary(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	os := parsed.OS()
	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	default:
		return os
	}
}
