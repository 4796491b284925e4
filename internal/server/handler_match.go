package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"hiremate/internal/ai"
	"hiremate/internal/observability"
	"hiremate/internal/resume"
	"hiremate/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the resume match analysis with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiremate.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		id, ok := s.pathUUID(w, r)
		if !ok {
			return
		}

		job, err := s.Store.GetJob(ctx, id)
		if err != nil {
			span.RecordError(err)
			s.writeAppError(w, err, "Failed to load job")
			return
		}

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Resume) == "" {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume", "resume field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("job.requirements_count", len(job.Requirements)),
			attribute.String("operation", "match"),
		)

		input := types.MatchInput{
			JobTitle:     job.Title,
			Requirements: job.Requirements,
			Resume:       req.Resume,
		}

		metrics := om.GetMetrics()
		var outcome types.MatchOutcome
		err = metrics.TrackAIOperationWithTokens(ctx, "match", func(ctx context.Context) *observability.AIOperationResult {
			result, tokenUsage, aiErr := s.Matcher.Analyze(ctx, input)
			outcome = result
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "match_analyzed", false, om)
			s.writeAppError(w, err, "Failed to analyze resume")
			return
		}

		metrics.RecordBusinessMetric(ctx, "match_analyzed", true, om,
			attribute.String("source", string(outcome.Source)),
			attribute.Int("score", outcome.Analysis.Score))
		if outcome.Source == types.SourceFallback {
			metrics.RecordBusinessMetric(ctx, "analysis_fallback", true, om)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("analysis.source", string(outcome.Source)),
			attribute.Int("analysis.score", outcome.Analysis.Score),
		)

		writeJSON(w, http.StatusOK, outcome)
	}
}

// createApplyHandler wraps the application submission with observability
func (s *Server) createApplyHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hiremate.api")
		ctx, span := tracer.Start(ctx, "api.apply")
		defer span.End()

		id, ok := s.pathUUID(w, r)
		if !ok {
			return
		}

		job, err := s.Store.GetJob(ctx, id)
		if err != nil {
			span.RecordError(err)
			s.writeAppError(w, err, "Failed to load job")
			return
		}

		var req ApplyRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", "name, a valid email and resume text are required", http.StatusBadRequest)
			return
		}

		// A client-supplied analysis must satisfy the same shape constraints
		// as one produced here
		if req.Analysis != nil {
			if err := ai.ValidateAnalysis(*req.Analysis); err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Invalid analysis", err.Error(), http.StatusBadRequest)
				return
			}
		}

		application := &types.Application{
			JobID:    job.ID,
			Name:     req.Name,
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			Resume:   req.Resume,
			Analysis: req.Analysis,
		}

		// Signed-in job seekers get linked to their application; anonymous
		// submissions stay anonymous
		if token := bearerToken(r); token != "" {
			if claims, err := s.Tokens.Verify(ctx, token); err == nil && claims.Role == types.RoleJobSeeker {
				seekerID := claims.UserID
				application.JobSeekerID = &seekerID
			}
		}

		metrics := om.GetMetrics()
		if err := s.Store.CreateApplication(ctx, application); err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "application_submitted", false, om)
			s.writeAppError(w, err, "Failed to submit application")
			return
		}

		// Counter update is best effort; the accepted application wins
		if err := s.Store.IncrementApplicantCount(ctx, job.ID); err != nil {
			s.Logger.Warn("Failed to increment applicant count",
				"job_id", job.ID.String(),
				"error", err.Error())
		}

		var source types.AnalysisSource
		if application.Analysis != nil {
			source = types.SourceAI
		}
		s.Notifier.ApplicationSubmitted(job, application, source)

		metrics.RecordBusinessMetric(ctx, "application_submitted", true, om,
			attribute.Bool("has_analysis", application.Analysis != nil))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("application.id", application.ID.String()),
		)

		s.Logger.Info("Application submitted",
			"application_id", application.ID.String(),
			"job_id", job.ID.String())

		writeJSON(w, http.StatusCreated, application)
	}
}

// extractResumeHandler extracts plain text from an uploaded resume file
func (s *Server) extractResumeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		writeErrorResponse(w, "Invalid upload", "multipart form with a file field is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, "Invalid upload", "file field is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.Warn("Failed to close uploaded file", "error", err.Error())
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, "Invalid upload", "failed to read uploaded file", http.StatusBadRequest)
		return
	}

	text, err := resume.Extract(header.Filename, data)
	if err != nil {
		s.writeAppError(w, err, "Failed to extract resume text")
		return
	}

	writeJSON(w, http.StatusOK, ExtractResponse{Text: text})
}
