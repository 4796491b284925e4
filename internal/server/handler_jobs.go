package server

import (
	"net/http"
	"strconv"
	"strings"

	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/observability"
	"hiremate/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// listJobsHandler returns job listings, optionally filtered by status
func (s *Server) listJobsHandler(w http.ResponseWriter, r *http.Request) {
	status := types.JobStatus(r.URL.Query().Get("status"))
	if status != "" && status != types.JobStatusOpen && status != types.JobStatusClosed {
		writeErrorResponse(w, "Invalid status filter", "status must be open or closed", http.StatusBadRequest)
		return
	}

	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	jobs, err := s.Store.ListJobs(r.Context(), status, limit, offset)
	if err != nil {
		s.writeAppError(w, err, "Failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// getJobHandler returns a single job listing
func (s *Server) getJobHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	job, err := s.Store.GetJob(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// createJobHandler creates a job listing owned by the authenticated recruiter
func (s *Server) createJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		claims := requestClaims(r)

		var req JobRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			writeErrorResponse(w, "Invalid request", "title, company and at least one requirement are required", http.StatusBadRequest)
			return
		}

		requirements := make([]string, 0, len(req.Requirements))
		for _, requirement := range req.Requirements {
			if trimmed := strings.TrimSpace(requirement); trimmed != "" {
				requirements = append(requirements, trimmed)
			}
		}
		if len(requirements) == 0 {
			writeErrorResponse(w, "Invalid request", "at least one non-empty requirement is required", http.StatusBadRequest)
			return
		}

		job := &types.Job{
			RecruiterID:  claims.UserID,
			Title:        req.Title,
			Company:      req.Company,
			Description:  s.sanitizer.Sanitize(req.Description),
			Requirements: requirements,
			Location:     req.Location,
			Salary:       req.Salary,
		}

		if err := s.Store.CreateJob(ctx, job); err != nil {
			om.GetMetrics().RecordBusinessMetric(ctx, "job_created", false, om)
			s.writeAppError(w, err, "Failed to create job")
			return
		}

		om.GetMetrics().RecordBusinessMetric(ctx, "job_created", true, om,
			attribute.Int("requirements_count", len(job.Requirements)))

		s.Logger.Info("Job created",
			"job_id", job.ID.String(),
			"recruiter_id", claims.UserID.String(),
			"title", job.Title)

		writeJSON(w, http.StatusCreated, job)
	}
}

// closeJobHandler marks a job closed. Only the owning recruiter may close it,
// and a closed job stays closed.
func (s *Server) closeJobHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	claims := requestClaims(r)

	if err := s.Store.CloseJob(r.Context(), id, claims.UserID); err != nil {
		s.writeAppError(w, err, "Failed to close job")
		return
	}

	job, err := s.Store.GetJob(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// listApplicationsHandler returns the applications for a job owned by the
// authenticated recruiter
func (s *Server) listApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}
	claims := requestClaims(r)

	job, err := s.Store.GetJob(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err, "Failed to load job")
		return
	}

	// Ownership is reported as not-found so listings don't leak
	if job.RecruiterID != claims.UserID {
		s.writeAppError(w,
			hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeJobNotFound, "No job listing found for this id", nil),
			"Failed to load job")
		return
	}

	applications, err := s.Store.ListApplicationsByJob(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err, "Failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, applications)
}

// pathUUID parses the {id} path segment, answering 404 on malformed ids so
// invalid and unknown ids are indistinguishable
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorResponse(w, "Job not found", "No job listing found for this id", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter with a default
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
