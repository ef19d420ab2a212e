package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/speaknote/remind/store"
)

func (d *DB) CreateReminder(ctx context.Context, create *store.Reminder) (*store.Reminder, error) {
	fields := []string{
		"uid", "user_id", "title", "description",
		"scheduled_ts", "timezone", "is_completed", "is_important",
		"original_text", "confidence_score", "source", "image_url",
	}
	placeholderValues := []any{
		create.UID, create.UserID, create.Title, create.Description,
		create.ScheduledTs, create.Timezone, create.IsCompleted, create.IsImportant,
		create.OriginalText, create.ConfidenceScore, create.Source, create.ImageURL,
	}

	stmt := `INSERT INTO reminder (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return create, nil
}

func (d *DB) ListReminders(ctx context.Context, find *store.FindReminder) ([]*store.Reminder, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "reminder.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "reminder.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "reminder.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ScheduledAfter; v != nil {
		where, args = append(where, "reminder.scheduled_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ScheduledBefore; v != nil {
		where, args = append(where, "reminder.scheduled_ts < "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IsCompleted; v != nil {
		where, args = append(where, "reminder.is_completed = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, user_id, created_ts, updated_ts,
			title, description, scheduled_ts, timezone,
			is_completed, is_important,
			original_text, confidence_score, source, image_url
		FROM reminder
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY reminder.scheduled_ts ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Reminder, 0)
	for rows.Next() {
		var reminder store.Reminder
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UID,
			&reminder.UserID,
			&reminder.CreatedTs,
			&reminder.UpdatedTs,
			&reminder.Title,
			&reminder.Description,
			&reminder.ScheduledTs,
			&reminder.Timezone,
			&reminder.IsCompleted,
			&reminder.IsImportant,
			&reminder.OriginalText,
			&reminder.ConfidenceScore,
			&reminder.Source,
			&reminder.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		list = append(list, &reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateReminder(ctx context.Context, update *store.UpdateReminder) (*store.Reminder, error) {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ScheduledTs; v != nil {
		set, args = append(set, "scheduled_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Timezone; v != nil {
		set, args = append(set, "timezone = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IsCompleted; v != nil {
		set, args = append(set, "is_completed = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IsImportant; v != nil {
		set, args = append(set, "is_important = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	} else {
		set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	}

	stmt := `UPDATE reminder SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)+1) + `
		RETURNING id, uid, user_id, created_ts, updated_ts,
			title, description, scheduled_ts, timezone,
			is_completed, is_important,
			original_text, confidence_score, source, image_url`
	args = append(args, update.ID)

	var reminder store.Reminder
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&reminder.ID,
		&reminder.UID,
		&reminder.UserID,
		&reminder.CreatedTs,
		&reminder.UpdatedTs,
		&reminder.Title,
		&reminder.Description,
		&reminder.ScheduledTs,
		&reminder.Timezone,
		&reminder.IsCompleted,
		&reminder.IsImportant,
		&reminder.OriginalText,
		&reminder.ConfidenceScore,
		&reminder.Source,
		&reminder.ImageURL,
	); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return &reminder, nil
}

func (d *DB) DeleteReminder(ctx context.Context, delete *store.DeleteReminder) error {
	stmt := `DELETE FROM reminder WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
