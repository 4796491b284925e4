package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/google/uuid"
)

// CreateJobSeeker inserts a new job seeker account. Returns a conflict error
// when the email is already registered.
func (s *Store) CreateJobSeeker(ctx context.Context, seeker *types.JobSeeker) error {
	query := `INSERT INTO job_seekers (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if seeker.ID == uuid.Nil {
		seeker.ID = uuid.New()
	}
	if seeker.CreatedAt.IsZero() {
		seeker.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		seeker.ID, seeker.Name, seeker.Email, seeker.PasswordHash, seeker.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return hiremateErrors.NewConflictError(hiremateErrors.ErrCodeDuplicateEmail,
				"An account with this email already exists", err)
		}
		return storageError("create job seeker", err)
	}

	return nil
}

// GetJobSeekerByEmail looks up a job seeker account by email
func (s *Store) GetJobSeekerByEmail(ctx context.Context, email string) (*types.JobSeeker, error) {
	query := `SELECT id, name, email, password_hash, created_at
		FROM job_seekers WHERE email = $1`

	seeker := &types.JobSeeker{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&seeker.ID, &seeker.Name, &seeker.Email, &seeker.PasswordHash, &seeker.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeInvalidCredentials,
			"No account found for this email", err)
	}
	if err != nil {
		return nil, storageError("get job seeker by email", err)
	}

	return seeker, nil
}

// CreateRecruiter inserts a new recruiter account. Returns a conflict error
// when the email is already registered.
func (s *Store) CreateRecruiter(ctx context.Context, recruiter *types.Recruiter) error {
	query := `INSERT INTO recruiters (id, name, email, company, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if recruiter.ID == uuid.Nil {
		recruiter.ID = uuid.New()
	}
	if recruiter.CreatedAt.IsZero() {
		recruiter.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		recruiter.ID, recruiter.Name, recruiter.Email, recruiter.Company,
		recruiter.PasswordHash, recruiter.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return hiremateErrors.NewConflictError(hiremateErrors.ErrCodeDuplicateEmail,
				"An account with this email already exists", err)
		}
		return storageError("create recruiter", err)
	}

	return nil
}

// GetRecruiterByEmail looks up a recruiter account by email
func (s *Store) GetRecruiterByEmail(ctx context.Context, email string) (*types.Recruiter, error) {
	query := `SELECT id, name, email, company, password_hash, created_at
		FROM recruiters WHERE email = $1`

	recruiter := &types.Recruiter{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&recruiter.ID, &recruiter.Name, &recruiter.Email, &recruiter.Company,
		&recruiter.PasswordHash, &recruiter.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeInvalidCredentials,
			"No account found for this email", err)
	}
	if err != nil {
		return nil, storageError("get recruiter by email", err)
	}

	return recruiter, nil
}
