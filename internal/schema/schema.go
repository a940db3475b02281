// Package schema applies the database schema at startup. Every statement is
// idempotent, so Ensure is safe to run on every boot.
package schema

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`create table if not exists users (
		id            text primary key,
		email         text not null,
		password_hash text not null,
		role          text not null,
		is_active     boolean not null default true,
		created_at    timestamptz not null default now(),
		deleted_at    timestamptz
	)`,
	`create unique index if not exists users_email_key on users(email) where deleted_at is null`,
	`create table if not exists students (
		id          text primary key,
		student_id  text not null,
		first_name  text not null,
		last_name   text not null,
		program     text not null,
		enrolled_at timestamptz not null default now(),
		deleted_at  timestamptz
	)`,
	`create unique index if not exists students_student_id_key on students(student_id) where deleted_at is null`,
	`create table if not exists audit_logs (
		id            text primary key,
		actor_id      text,
		actor_role    text,
		action        text not null,
		module        text not null,
		resource_type text not null,
		resource_id   text not null,
		before_state  jsonb,
		after_state   jsonb,
		source_ip     text,
		user_agent    text,
		request_id    text,
		occurred_at   timestamptz not null default now()
	)`,
	`create index if not exists audit_logs_resource_idx on audit_logs(resource_type, resource_id)`,
	`create index if not exists audit_logs_occurred_at_idx on audit_logs(occurred_at)`,
}

// Ensure creates the tables and indexes if they do not exist.
func Ensure(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
