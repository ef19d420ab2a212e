package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/speaknote/remind/store"
)

func (d *DB) CreateLoginHistory(ctx context.Context, create *store.LoginHistory) (*store.LoginHistory, error) {
	fields := []string{"user_id", "ip_address", "user_agent"}
	placeholderValues := []any{create.UserID, create.IPAddress, create.UserAgent}

	if create.Ts != 0 {
		fields = append(fields, "ts")
		placeholderValues = append(placeholderValues, create.Ts)
	}

	stmt := `INSERT INTO login_history (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.Ts,
	); err != nil {
		return nil, fmt.Errorf("failed to create login history: %w", err)
	}

	return create, nil
}

func (d *DB) ListLoginHistory(ctx context.Context, find *store.FindLoginHistory) ([]*store.LoginHistory, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "login_history.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, user_id, ts, ip_address, user_agent
		FROM login_history
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY login_history.ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query login history: %w", err)
	}
	defer rows.Close()

	list := make([]*store.LoginHistory, 0)
	for rows.Next() {
		var entry store.LoginHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Ts,
			&entry.IPAddress,
			&entry.UserAgent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan login history: %w", err)
		}
		list = append(list, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login history: %w", err)
	}

	return list, nil
}
