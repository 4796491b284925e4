package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"

	"github.com/lib/pq"
)

// Store provides Postgres-backed persistence for users, jobs and applications
type Store struct {
	db     *sql.DB
	logger *hiremateErrors.Logger
}

// New opens a Postgres connection pool from configuration
func New(cfg config.DatabaseConfig, logger *hiremateErrors.Logger) (*Store, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, hiremateErrors.NewStorageError(hiremateErrors.ErrCodeInvalidConfig,
			"Failed to open database connection", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Store{db: db, logger: logger}, nil
}

// Ping verifies database connectivity for health checks
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying pool for tests
func (s *Store) DB() *sql.DB {
	return s.db
}

const schema = `
CREATE TABLE IF NOT EXISTS job_seekers (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS recruiters (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	company       TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS jobs (
	id              UUID PRIMARY KEY,
	recruiter_id    UUID NOT NULL REFERENCES recruiters(id),
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	description     TEXT NOT NULL,
	requirements    TEXT[] NOT NULL DEFAULT '{}',
	location        TEXT NOT NULL DEFAULT '',
	salary_min      BIGINT,
	salary_max      BIGINT,
	salary_currency TEXT,
	status          TEXT NOT NULL DEFAULT 'open',
	applicant_count INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_jobs_recruiter ON jobs(recruiter_id);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);

CREATE TABLE IF NOT EXISTS applications (
	id            UUID PRIMARY KEY,
	job_id        UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	job_seeker_id UUID,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	resume        TEXT NOT NULL,
	analysis      JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
`

// Migrate creates the schema if it does not exist yet
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return hiremateErrors.NewStorageError("MIGRATION_FAILED",
			"Failed to apply database schema", err)
	}
	s.logger.Info("Database schema is up to date")
	return nil
}

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// storageError wraps a driver error as a generic storage failure
func storageError(operation string, err error) error {
	return hiremateErrors.NewStorageError("QUERY_FAILED",
		fmt.Sprintf("Database operation failed: %s", operation), err)
}
