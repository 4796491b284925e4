package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const jobColumns = `id, recruiter_id, title, company, description, requirements,
	location, salary_min, salary_max, salary_currency, status, applicant_count, created_at`

// CreateJob inserts a new job listing
func (s *Store) CreateJob(ctx context.Context, job *types.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = types.JobStatusOpen
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	salaryMin, salaryMax, salaryCurrency := salaryColumns(job.Salary)

	_, err := s.db.ExecContext(ctx, query,
		job.ID, job.RecruiterID, job.Title, job.Company, job.Description,
		pq.Array(job.Requirements), job.Location, salaryMin, salaryMax, salaryCurrency,
		job.Status, job.ApplicantCount, job.CreatedAt)
	if err != nil {
		return storageError("create job", err)
	}

	return nil
}

// GetJob fetches a single job listing by id
func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeJobNotFound,
			"Job not found", err)
	}
	if err != nil {
		return nil, storageError("get job", err)
	}

	return job, nil
}

// ListJobs returns job listings newest first, optionally filtered by status
func (s *Store) ListJobs(ctx context.Context, status types.JobStatus, limit, offset int) ([]*types.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20 // default limit with max cap
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, storageError("list jobs", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ListJobsByRecruiter returns the listings owned by a recruiter, newest first
func (s *Store) ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*types.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE recruiter_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, recruiterID)
	if err != nil {
		return nil, storageError("list jobs by recruiter", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateJob updates a listing's mutable fields. The recruiter id scopes the
// update to the owner; a non-owner update reports not found.
func (s *Store) UpdateJob(ctx context.Context, job *types.Job) error {
	query := `UPDATE jobs
		SET title = $1, company = $2, description = $3, requirements = $4,
			location = $5, salary_min = $6, salary_max = $7, salary_currency = $8,
			status = $9
		WHERE id = $10 AND recruiter_id = $11`

	salaryMin, salaryMax, salaryCurrency := salaryColumns(job.Salary)

	result, err := s.db.ExecContext(ctx, query,
		job.Title, job.Company, job.Description, pq.Array(job.Requirements),
		job.Location, salaryMin, salaryMax, salaryCurrency, job.Status,
		job.ID, job.RecruiterID)
	if err != nil {
		return storageError("update job", err)
	}

	return s.checkJobAffected(result)
}

// CloseJob marks an owner's listing as closed
func (s *Store) CloseJob(ctx context.Context, id, recruiterID uuid.UUID) error {
	query := `UPDATE jobs SET status = $1 WHERE id = $2 AND recruiter_id = $3`

	result, err := s.db.ExecContext(ctx, query, types.JobStatusClosed, id, recruiterID)
	if err != nil {
		return storageError("close job", err)
	}

	return s.checkJobAffected(result)
}

// DeleteJob removes an owner's listing and its applications
func (s *Store) DeleteJob(ctx context.Context, id, recruiterID uuid.UUID) error {
	query := `DELETE FROM jobs WHERE id = $1 AND recruiter_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, recruiterID)
	if err != nil {
		return storageError("delete job", err)
	}

	return s.checkJobAffected(result)
}

// IncrementApplicantCount bumps a job's cached applicant counter
func (s *Store) IncrementApplicantCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE jobs SET applicant_count = applicant_count + 1 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return storageError("increment applicant count", err)
	}

	return s.checkJobAffected(result)
}

// checkJobAffected maps a zero-row update to a job not found error
func (s *Store) checkJobAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("check rows affected", err)
	}
	if rowsAffected == 0 {
		return hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeJobNotFound,
			"Job not found", nil)
	}
	return nil
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanJob scans one job row including the nullable salary columns
func scanJob(row rowScanner) (*types.Job, error) {
	job := &types.Job{}
	var salaryMin, salaryMax sql.NullInt64
	var salaryCurrency sql.NullString

	err := row.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Company, &job.Description,
		pq.Array(&job.Requirements), &job.Location, &salaryMin, &salaryMax,
		&salaryCurrency, &job.Status, &job.ApplicantCount, &job.CreatedAt)
	if err != nil {
		return nil, err
	}

	if salaryMin.Valid {
		job.Salary.Min = int(salaryMin.Int64)
	}
	if salaryMax.Valid {
		job.Salary.Max = int(salaryMax.Int64)
	}
	if salaryCurrency.Valid {
		job.Salary.Currency = salaryCurrency.String
	}

	return job, nil
}

// collectJobs drains a result set of job rows
func collectJobs(rows *sql.Rows) ([]*types.Job, error) {
	jobs := make([]*types.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, storageError("scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate jobs", err)
	}
	return jobs, nil
}

// salaryColumns converts a salary range into nullable column values. A zero
// range is stored as NULLs.
func salaryColumns(salary types.SalaryRange) (sql.NullInt64, sql.NullInt64, sql.NullString) {
	var salaryMin, salaryMax sql.NullInt64
	var salaryCurrency sql.NullString

	if salary != (types.SalaryRange{}) {
		salaryMin = sql.NullInt64{Int64: int64(salary.Min), Valid: true}
		salaryMax = sql.NullInt64{Int64: int64(salary.Max), Valid: true}
		salaryCurrency = sql.NullString{String: salary.Currency, Valid: true}
	}

	return salaryMin, salaryMax, salaryCurrency
}
