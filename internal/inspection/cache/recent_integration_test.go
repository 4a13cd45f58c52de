//go:build integration

package cache_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"donorcheck/internal/inspection/cache"
	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/store"
	"donorcheck/pkg/testutil/containers"
)

type RecentCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RecentCache
}

func TestRecentCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RecentCacheSuite))
}

func (s *RecentCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = cache.NewRecentCache(s.redis.Client, time.Minute, logger)
}

func (s *RecentCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RecentCacheSuite) filter() store.RecentFilter {
	return store.RecentFilter{
		FormDate:      time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		InspectorName: "Dana Reyes",
	}
}

func (s *RecentCacheSuite) records() []models.InspectionRecord {
	submitted := time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)
	return []models.InspectionRecord{{
		ID:                 "rec-1",
		FormDate:           time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		InspectorName:      "Dana Reyes",
		UserEmail:          "dana.reyes@example.org",
		SubmissionTime:     submitted,
		DonorName:          "Alex Moana",
		DonorContactNumber: "0412345678",
		CreatedAt:          submitted,
	}}
}

func (s *RecentCacheSuite) TestPutThenGet() {
	ctx := context.Background()

	_, ok := s.cache.Get(ctx, s.filter())
	s.False(ok, "cold cache misses")

	s.cache.Put(ctx, s.filter(), s.records())

	got, ok := s.cache.Get(ctx, s.filter())
	s.Require().True(ok)
	s.Require().Len(got, 1)
	s.Equal("rec-1", got[0].ID)
	s.Equal("Dana Reyes", got[0].InspectorName)
	s.True(s.records()[0].SubmissionTime.Equal(got[0].SubmissionTime))
}

func (s *RecentCacheSuite) TestEmptyWindowIsCached() {
	ctx := context.Background()

	s.cache.Put(ctx, s.filter(), []models.InspectionRecord{})

	got, ok := s.cache.Get(ctx, s.filter())
	s.True(ok, "an empty window is a hit, not a miss")
	s.Empty(got)
}

func (s *RecentCacheSuite) TestInvalidateDropsEntry() {
	ctx := context.Background()

	s.cache.Put(ctx, s.filter(), s.records())
	s.cache.Invalidate(ctx, s.filter())

	_, ok := s.cache.Get(ctx, s.filter())
	s.False(ok)
}

func (s *RecentCacheSuite) TestCorruptEntryIsDropped() {
	ctx := context.Background()

	key := "donorcheck:recent:2025-08-14:Dana Reyes:0"
	s.Require().NoError(s.redis.Client.Set(ctx, key, "{not json", time.Minute).Err())

	_, ok := s.cache.Get(ctx, s.filter())
	s.False(ok)

	exists, err := s.redis.Client.Exists(ctx, key).Result()
	s.Require().NoError(err)
	s.Zero(exists, "corrupt entry must be deleted")
}
