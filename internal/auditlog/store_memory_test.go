package auditlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	s := NewInMemoryStore().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, Event{
		Actor:    "dana.reyes@example.org",
		Action:   ActionSubmitted,
		RecordID: "rec-1",
	}))

	events, err := s.ListByRecord(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, ActionSubmitted, events[0].Action)
}

func TestListByRecordFiltersAndOrders(t *testing.T) {
	base := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	clock := base
	s := NewInMemoryStore().WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, Event{Actor: "a@example.org", Action: ActionSubmitted, RecordID: "rec-1"}))
	require.NoError(t, s.Append(ctx, Event{Actor: "b@example.org", Action: ActionSubmitted, RecordID: "rec-2"}))
	require.NoError(t, s.Append(ctx, Event{Actor: "c@example.org", Action: ActionEdited, RecordID: "rec-1", Detail: "1 field(s) changed: typo"}))

	events, err := s.ListByRecord(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionEdited, events[0].Action, "newest first")
	assert.Equal(t, ActionSubmitted, events[1].Action)
}

func TestListRecentAppliesLimit(t *testing.T) {
	base := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	clock := base
	s := NewInMemoryStore().WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, Event{Actor: "a@example.org", Action: ActionSubmitted}))
	}

	events, err := s.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	all, err := s.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
