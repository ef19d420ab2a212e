package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speaknote/remind/store"
)

func TestReminderStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	user, err := createTestingUser(ctx, ts, "carol@example.com")
	require.NoError(t, err)

	reminder, err := ts.CreateReminder(ctx, &store.Reminder{
		UID:             "rem-abc123",
		UserID:          user.ID,
		Title:           "dentist appointment",
		ScheduledTs:     1760000000,
		Timezone:        "America/New_York",
		OriginalText:    "remind me tomorrow at 3pm dentist appointment",
		ConfidenceScore: 1.0,
		Source:          store.SourceTypeText,
	})
	require.NoError(t, err)
	require.Greater(t, reminder.ID, int32(0))
	require.NotZero(t, reminder.CreatedTs)

	// Lookup by uid.
	uid := "rem-abc123"
	found, err := ts.GetReminder(ctx, &store.FindReminder{UID: &uid})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "dentist appointment", found.Title)
	require.Equal(t, store.SourceTypeText, found.Source)
	require.InDelta(t, 1.0, found.ConfidenceScore, 1e-9)
	require.False(t, found.IsCompleted)

	// Mark completed.
	completed := true
	updated, err := ts.UpdateReminder(ctx, &store.UpdateReminder{
		ID:          reminder.ID,
		IsCompleted: &completed,
	})
	require.NoError(t, err)
	require.True(t, updated.IsCompleted)

	// Completion filter.
	pending := false
	list, err := ts.ListReminders(ctx, &store.FindReminder{UserID: &user.ID, IsCompleted: &pending})
	require.NoError(t, err)
	require.Empty(t, list)

	// Delete.
	err = ts.DeleteReminder(ctx, &store.DeleteReminder{ID: reminder.ID})
	require.NoError(t, err)
	found, err = ts.GetReminder(ctx, &store.FindReminder{UID: &uid})
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestReminderStoreTimeWindow(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	user, err := createTestingUser(ctx, ts, "dave@example.com")
	require.NoError(t, err)

	schedule := map[string]int64{
		"rem-past":   1700000000,
		"rem-soon":   1700100000,
		"rem-later":  1700200000,
		"rem-future": 1700900000,
	}
	for uid, scheduledTs := range schedule {
		_, err := ts.CreateReminder(ctx, &store.Reminder{
			UID:         uid,
			UserID:      user.ID,
			Title:       uid,
			ScheduledTs: scheduledTs,
			Timezone:    "UTC",
			Source:      store.SourceTypeText,
		})
		require.NoError(t, err)
	}

	// Window is inclusive at the start and exclusive at the end,
	// ordered by scheduled time ascending.
	after := int64(1700100000)
	before := int64(1700900000)
	list, err := ts.ListReminders(ctx, &store.FindReminder{
		UserID:          &user.ID,
		ScheduledAfter:  &after,
		ScheduledBefore: &before,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "rem-soon", list[0].UID)
	require.Equal(t, "rem-later", list[1].UID)
}
