package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	hiremateErrors "hiremate/internal/errors"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint covering the
// AI model, circuit breakers, the database, and the session store
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.getHealthCheckTimeout())
	defer cancel()

	response := map[string]any{
		"status":  "healthy",
		"service": "hiremate",
		"version": s.Version,
	}

	overallHealthy := true

	aiStatus := s.checkAIModelHealth(ctx)
	response["ai_model"] = aiStatus
	if available, ok := aiStatus["available"].(bool); ok && !available {
		overallHealthy = false
	}

	response["circuit_breakers"] = s.Matcher.Provider.GetCircuitBreakerStats()

	dbStatus := map[string]any{"available": true}
	if err := s.Store.Ping(ctx); err != nil {
		dbStatus["available"] = false
		dbStatus["error"] = err.Error()
		overallHealthy = false
	}
	response["database"] = dbStatus

	// Session store is optional; report but never degrade when disabled
	if s.Sessions != nil {
		sessionStatus := map[string]any{"available": true}
		if err := s.Sessions.Ping(ctx); err != nil {
			sessionStatus["available"] = false
			sessionStatus["error"] = err.Error()
			overallHealthy = false
		}
		response["session_store"] = sessionStatus
	} else {
		response["session_store"] = map[string]any{"enabled": false}
	}

	w.Header().Set("Content-Type", "application/json")
	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkAIModelHealth checks the availability of the match model
func (s *Server) checkAIModelHealth(ctx context.Context) map[string]any {
	modelInfo := s.Matcher.Provider.GetModelInfo(ctx)
	if modelInfo == nil {
		return map[string]any{
			"available": false,
			"error":     "model info unavailable",
		}
	}

	status := map[string]any{
		"name":      modelInfo.Name,
		"available": modelInfo.Available,
	}
	if modelInfo.DisplayName != "" {
		status["display_name"] = modelInfo.DisplayName
	}
	if modelInfo.Error != "" {
		status["error"] = modelInfo.Error
	}
	return status
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "hiremate",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if count, err := s.Store.CountApplications(r.Context()); err == nil {
		response["applications_total"] = count
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// writeAppError converts an application error to the JSON error envelope,
// mapping the error type to an HTTP status
func (s *Server) writeAppError(w http.ResponseWriter, err error, fallbackTitle string) {
	statusCode := http.StatusInternalServerError
	title := fallbackTitle
	message := err.Error()

	var appErr *hiremateErrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Type {
		case hiremateErrors.ErrorTypeValidation, hiremateErrors.ErrorTypeFormat:
			statusCode = http.StatusBadRequest
		case hiremateErrors.ErrorTypeAuth:
			statusCode = http.StatusUnauthorized
		case hiremateErrors.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
		case hiremateErrors.ErrorTypeConflict:
			statusCode = http.StatusConflict
		case hiremateErrors.ErrorTypeGateway:
			statusCode = http.StatusBadGateway
		}
	}

	if statusCode >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed")
	}

	writeErrorResponse(w, title, message, statusCode)
}
