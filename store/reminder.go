package store

import (
	"context"
	"time"
)

// SourceType records which input channel produced a reminder.
type SourceType string

const (
	SourceTypeText   SourceType = "text"
	SourceTypeVoice  SourceType = "voice"
	SourceTypeImage  SourceType = "image"
	SourceTypeManual SourceType = "manual"
)

// Reminder is the object representing a scheduled reminder.
type Reminder struct {
	ID          int32
	UID         string
	UserID      int32
	CreatedTs   int64
	UpdatedTs   int64
	Title       string
	Description string
	ScheduledTs int64
	Timezone    string
	IsCompleted bool
	IsImportant bool

	// Provenance of the reminder: the raw input it was extracted from,
	// the extraction confidence, and the channel it arrived on.
	OriginalText    string
	ConfidenceScore float64
	Source          SourceType
	ImageURL        string
}

// FindReminder is the find condition for reminder.
type FindReminder struct {
	ID     *int32
	UID    *string
	UserID *int32

	// Scheduled time range filters (inclusive start, exclusive end).
	ScheduledAfter  *int64
	ScheduledBefore *int64

	IsCompleted *bool

	Limit  *int
	Offset *int
}

// UpdateReminder is the update request for reminder.
type UpdateReminder struct {
	ID          int32
	Title       *string
	Description *string
	ScheduledTs *int64
	Timezone    *string
	IsCompleted *bool
	IsImportant *bool
	UpdatedTs   *int64
}

// DeleteReminder is the delete request for reminder.
type DeleteReminder struct {
	ID int32
}

// CreateReminder creates a new reminder.
func (s *Store) CreateReminder(ctx context.Context, create *Reminder) (*Reminder, error) {
	return s.driver.CreateReminder(ctx, create)
}

// ListReminders lists reminders with filter.
func (s *Store) ListReminders(ctx context.Context, find *FindReminder) ([]*Reminder, error) {
	return s.driver.ListReminders(ctx, find)
}

// GetReminder gets a single reminder matching the find condition.
func (s *Store) GetReminder(ctx context.Context, find *FindReminder) (*Reminder, error) {
	list, err := s.driver.ListReminders(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateReminder updates a reminder.
func (s *Store) UpdateReminder(ctx context.Context, update *UpdateReminder) (*Reminder, error) {
	return s.driver.UpdateReminder(ctx, update)
}

// DeleteReminder deletes a reminder.
func (s *Store) DeleteReminder(ctx context.Context, delete *DeleteReminder) error {
	return s.driver.DeleteReminder(ctx, delete)
}

// ScheduledTime parses the reminder scheduled time to time.Time.
func (r *Reminder) ScheduledTime() time.Time {
	return time.Unix(r.ScheduledTs, 0)
}
