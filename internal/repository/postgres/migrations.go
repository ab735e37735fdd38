package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"job-tracker-api/pkg/logger"
)

type Migration struct {
	Version     int
	Description string
	Up          string
}

// Migrations are applied in order; never edit an applied entry, append a new one.
var Migrations = []Migration{
	{
		Version:     1,
		Description: "create jobs table",
		Up: `
			CREATE TABLE IF NOT EXISTS jobs (
				id UUID PRIMARY KEY,
				job_title TEXT NOT NULL CHECK (btrim(job_title) <> ''),
				company_name TEXT,
				location TEXT,
				job_url TEXT NOT NULL CHECK (btrim(job_url) <> ''),
				description TEXT,
				salary TEXT,
				job_type TEXT NOT NULL DEFAULT '',
				is_remote BOOLEAN NOT NULL DEFAULT FALSE,
				notes TEXT,
				source TEXT NOT NULL DEFAULT 'manual',
				status TEXT NOT NULL DEFAULT 'new',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);
			CREATE INDEX IF NOT EXISTS idx_jobs_job_url ON jobs (job_url);
		`,
	},
	{
		Version:     2,
		Description: "create attachments table",
		Up: `
			CREATE TABLE IF NOT EXISTS attachments (
				id UUID PRIMARY KEY,
				job_id UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
				file_name TEXT NOT NULL,
				file_type TEXT NOT NULL,
				mime_type TEXT NOT NULL,
				file_size BIGINT NOT NULL CHECK (file_size >= 0),
				storage_key TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS idx_attachments_job_id ON attachments (job_id);
		`,
	},
	{
		Version:     3,
		Description: "create attachment blobs table",
		Up: `
			CREATE TABLE IF NOT EXISTS attachment_blobs (
				storage_key TEXT PRIMARY KEY,
				content_type TEXT NOT NULL,
				data BYTEA NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
		`,
	},
}

// Migrate creates the schema_migrations table and applies pending migrations,
// each in its own transaction.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range Migrations {
		if applied[m.Version] {
			continue
		}
		tx, err := db.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, m.Up); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			m.Version, m.Description); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		logger.Log.Info("applied migration", "version", m.Version, "description", m.Description)
	}
	return nil
}
