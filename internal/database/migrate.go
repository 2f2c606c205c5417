package database

import (
	"context"
	"database/sql"
)

// Migrate creates the schema when it does not exist yet. The unique index on
// applicants (user_id, job_id) backs the at-most-one-application rule under
// concurrent submits; the one on favorites makes the toggle upsert possible.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	gender TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT NOT NULL,
	job_type TEXT NOT NULL,
	category TEXT NOT NULL,
	last_date DATE NOT NULL,
	company_name TEXT NOT NULL,
	filled BOOLEAN NOT NULL DEFAULT FALSE,
	salary BIGINT,
	tags TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS jobs_owner_idx ON jobs (owner_id);
CREATE INDEX IF NOT EXISTS jobs_unfilled_created_idx ON jobs (created_at DESC) WHERE NOT filled;

CREATE TABLE IF NOT EXISTS applicants (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	status SMALLINT NOT NULL DEFAULT 0,
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT applicants_user_job_key UNIQUE (user_id, job_id)
);

CREATE TABLE IF NOT EXISTS favorites (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	soft_deleted BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT favorites_user_job_key UNIQUE (user_id, job_id)
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	token TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	revoked_at TIMESTAMPTZ
);
`)
	return err
}
