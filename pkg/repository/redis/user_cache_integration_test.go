//go:build integration

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/artem13815/resumes/pkg/auth"
	"github.com/artem13815/resumes/pkg/auth/mocks"
	rediscache "github.com/artem13815/resumes/pkg/repository/redis"
	"github.com/artem13815/resumes/pkg/testutil/containers"
)

type UserCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestUserCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserCacheSuite))
}

func (s *UserCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *UserCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *UserCacheSuite) newCache(next rediscache.UserLookup) *rediscache.UserCache {
	return rediscache.NewUserCache(s.redis.Client, next, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *UserCacheSuite) TestReadThrough() {
	ctx := context.Background()
	ctrl := gomock.NewController(s.T())
	users := mocks.NewMockUserRepository(ctrl)
	cache := s.newCache(users)

	user := auth.User{ID: uuid.New(), Email: "a@x.com", Name: "A", PasswordHash: "must-not-be-cached",
		CreatedAt: time.Now().UTC().Truncate(time.Second)}
	users.EXPECT().GetByID(ctx, user.ID).Return(user, nil).Times(1)

	first, err := cache.GetByID(ctx, user.ID)
	s.Require().NoError(err)
	second, err := cache.GetByID(ctx, user.ID)
	s.Require().NoError(err)

	s.Equal(user.Public(), first)
	s.Equal(first.ID, second.ID)
	s.Equal(first.Email, second.Email)
	s.Empty(second.PasswordHash)

	ttl, err := s.redis.Client.TTL(ctx, "resumes:user:"+user.ID.String()).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *UserCacheSuite) TestMissesAreNotCached() {
	ctx := context.Background()
	ctrl := gomock.NewController(s.T())
	users := mocks.NewMockUserRepository(ctrl)
	cache := s.newCache(users)

	id := uuid.New()
	users.EXPECT().GetByID(ctx, id).Return(auth.User{}, auth.ErrNotFound).Times(2)

	_, err := cache.GetByID(ctx, id)
	s.ErrorIs(err, auth.ErrNotFound)
	_, err = cache.GetByID(ctx, id)
	s.ErrorIs(err, auth.ErrNotFound)
}
