//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"talentgate/internal/identity/models"
	"talentgate/internal/session"
	"talentgate/pkg/platform/sentinel"
	"talentgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(ttl time.Duration) session.Session {
	now := time.Now()
	return session.Session{
		ID:          uuid.NewString(),
		CandidateID: uuid.New(),
		Username:    "alice",
		Role:        models.RoleCandidate,
		Device:      "Chrome on Mac OS X",
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func (s *RedisStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, sess))

	found, err := s.store.Find(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.CandidateID, found.CandidateID)
	s.Equal(sess.Username, found.Username)
	s.Equal(sess.Role, found.Role)

	_, err = s.store.Find(ctx, "unknown")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestSaveRejectsExpired() {
	sess := makeSession(-time.Minute)
	s.ErrorIs(s.store.Save(context.Background(), sess), sentinel.ErrExpired)
}

func (s *RedisStoreSuite) TestTTLExpiry() {
	ctx := context.Background()
	sess := makeSession(time.Second)
	s.Require().NoError(s.store.Save(ctx, sess))

	s.Eventually(func() bool {
		_, err := s.store.Find(ctx, sess.ID)
		return err == sentinel.ErrNotFound
	}, 5*time.Second, 100*time.Millisecond, "redis TTL should reap the session")
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, sess))

	s.Require().NoError(s.store.Delete(ctx, sess.ID))
	_, err := s.store.Find(ctx, sess.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Deleting again is a no-op.
	s.NoError(s.store.Delete(ctx, sess.ID))
}
