// Package migrations applies the database schema. Statements are idempotent
// so Apply can run on every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT,
		email TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id),
		academic_info TEXT NOT NULL DEFAULT '',
		financial_info TEXT NOT NULL DEFAULT '',
		achievement_info TEXT NOT NULL DEFAULT '',
		category_info TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS scholarships (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		seq BIGSERIAL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		scholarship_name TEXT NOT NULL,
		scholarship JSONB NOT NULL,
		status TEXT NOT NULL,
		checklist JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		seq BIGSERIAL
	)`,
	// The uniqueness constraint is the single source of truth for duplicate
	// tracking; services rely on the resulting conflict instead of an
	// advisory pre-check.
	`CREATE UNIQUE INDEX IF NOT EXISTS applications_user_scholarship_idx
		ON applications (user_id, scholarship_name)`,
	`CREATE INDEX IF NOT EXISTS applications_user_idx ON applications (user_id)`,
}

// Apply executes all schema statements in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
