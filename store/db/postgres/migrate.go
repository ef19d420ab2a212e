package postgres

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		otp_hash TEXT NOT NULL DEFAULT '',
		otp_expires_ts BIGINT NOT NULL DEFAULT 0,
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS reminder (
		id SERIAL PRIMARY KEY,
		uid TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		scheduled_ts BIGINT NOT NULL,
		timezone TEXT NOT NULL DEFAULT 'UTC',
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		is_important BOOLEAN NOT NULL DEFAULT FALSE,
		original_text TEXT NOT NULL DEFAULT '',
		confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		source TEXT NOT NULL DEFAULT 'text',
		image_url TEXT NOT NULL DEFAULT '',
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminder_user_scheduled ON reminder (user_id, scheduled_ts)`,
	`CREATE TABLE IF NOT EXISTS login_history (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES "user" (id) ON DELETE CASCADE,
		ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_login_history_user ON login_history (user_id, ts)`,
}
