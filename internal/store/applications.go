package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/google/uuid"
)

// CreateApplication inserts an application. The analysis, when present, is
// stored as jsonb alongside the raw resume text.
func (s *Store) CreateApplication(ctx context.Context, app *types.Application) error {
	query := `INSERT INTO applications (id, job_id, job_seeker_id, name, email, resume, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}

	var analysisJSON sql.NullString
	if app.Analysis != nil {
		raw, err := json.Marshal(app.Analysis)
		if err != nil {
			return hiremateErrors.NewStorageError(hiremateErrors.ErrCodeSubmissionFailed,
				"Failed to encode analysis for storage", err)
		}
		analysisJSON = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		app.ID, app.JobID, app.JobSeekerID, app.Name, app.Email, app.Resume,
		analysisJSON, app.CreatedAt)
	if err != nil {
		return hiremateErrors.NewStorageError(hiremateErrors.ErrCodeSubmissionFailed,
			"Failed to store application", err)
	}

	return nil
}

// ListApplicationsByJob returns the applications for one job, newest first
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*types.Application, error) {
	query := `SELECT id, job_id, job_seeker_id, name, email, resume, analysis, created_at
		FROM applications
		WHERE job_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, storageError("list applications", err)
	}
	defer rows.Close()

	apps := make([]*types.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate applications", err)
	}

	return apps, nil
}

// GetApplication fetches one application by id
func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	query := `SELECT id, job_id, job_seeker_id, name, email, resume, analysis, created_at
		FROM applications WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hiremateErrors.NewNotFoundError("APPLICATION_NOT_FOUND",
			"Application not found", err)
	}
	if err != nil {
		var appErr *hiremateErrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, storageError("get application", err)
	}

	return app, nil
}

// CountApplications returns the total number of stored applications
func (s *Store) CountApplications(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count)
	if err != nil {
		return 0, storageError("count applications", err)
	}
	return count, nil
}

// scanApplication scans one application row, decoding the jsonb analysis
func scanApplication(row rowScanner) (*types.Application, error) {
	app := &types.Application{}
	var analysisJSON sql.NullString

	err := row.Scan(
		&app.ID, &app.JobID, &app.JobSeekerID, &app.Name, &app.Email,
		&app.Resume, &analysisJSON, &app.CreatedAt)
	if err != nil {
		return nil, err
	}

	if analysisJSON.Valid {
		var analysis types.AnalysisResult
		if err := json.Unmarshal([]byte(analysisJSON.String), &analysis); err != nil {
			return nil, hiremateErrors.NewStorageError("ANALYSIS_DECODE_FAILED",
				"Failed to decode stored analysis", err)
		}
		app.Analysis = &analysis
	}

	return app, nil
}
