package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorcheck/internal/inspection/models"
)

func seedRecord(inspector string, formDate time.Time) models.InspectionRecord {
	return models.InspectionRecord{
		FormDate:           formDate,
		InspectorName:      inspector,
		UserEmail:          "dana.reyes@example.org",
		DonorName:          "Alex Moana",
		DonorContactNumber: "0412345678",
	}
}

func TestInMemoryInsertAssignsSystemFields(t *testing.T) {
	fixed := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	s := NewInMemoryStore().WithClock(func() time.Time { return fixed })

	inserted, err := s.Insert(context.Background(), seedRecord("Dana", fixed))
	require.NoError(t, err)

	assert.NotEmpty(t, inserted.ID)
	assert.Equal(t, fixed, inserted.SubmissionTime)
	assert.Equal(t, fixed, inserted.CreatedAt)

	fetched, err := s.FetchByID(context.Background(), inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted, fetched)
}

func TestInMemoryFetchByIDNotFound(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryQueryRecent(t *testing.T) {
	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	clock := day.Add(9 * time.Hour)
	s := NewInMemoryStore().WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	var last models.InspectionRecord
	for i := 0; i < 3; i++ {
		r := seedRecord("Dana", day)
		inserted, err := s.Insert(ctx, r)
		require.NoError(t, err)
		last = inserted
	}
	_, err := s.Insert(ctx, seedRecord("Someone Else", day))
	require.NoError(t, err)
	_, err = s.Insert(ctx, seedRecord("Dana", day.AddDate(0, 0, 1)))
	require.NoError(t, err)

	t.Run("filters by date and inspector", func(t *testing.T) {
		got, err := s.QueryRecent(ctx, RecentFilter{FormDate: day, InspectorName: "Dana"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, last.ID, got[0].ID, "newest first")
	})

	t.Run("applies limit", func(t *testing.T) {
		got, err := s.QueryRecent(ctx, RecentFilter{FormDate: day, InspectorName: "Dana", Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no matches", func(t *testing.T) {
		got, err := s.QueryRecent(ctx, RecentFilter{FormDate: day, InspectorName: "Nobody"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestInMemoryUpdate(t *testing.T) {
	fixed := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	s := NewInMemoryStore().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	inserted, err := s.Insert(ctx, seedRecord("Dana", fixed))
	require.NoError(t, err)

	edited := inserted
	edited.Notes = "follow-up recorded"
	edited.ID = "attempted-overwrite"
	edited.CreatedAt = fixed.Add(time.Hour)
	edited.SubmissionTime = fixed.Add(time.Hour)

	require.NoError(t, s.Update(ctx, inserted.ID, edited))

	fetched, err := s.FetchByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "follow-up recorded", fetched.Notes)
	assert.Equal(t, inserted.ID, fetched.ID)
	assert.Equal(t, inserted.CreatedAt, fetched.CreatedAt)
	assert.Equal(t, inserted.SubmissionTime, fetched.SubmissionTime)
}

func TestInMemoryUpdateNotFound(t *testing.T) {
	s := NewInMemoryStore()
	err := s.Update(context.Background(), "missing", models.InspectionRecord{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryListAll(t *testing.T) {
	day := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	clock := day
	s := NewInMemoryStore().WithClock(func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	})
	ctx := context.Background()

	_, err := s.Insert(ctx, seedRecord("Dana", day))
	require.NoError(t, err)
	second, err := s.Insert(ctx, seedRecord("Lee", day))
	require.NoError(t, err)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
}
