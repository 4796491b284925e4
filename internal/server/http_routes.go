package server

import (
	"context"
	"net/http"
	"strings"

	"hiremate/internal/auth"
	"hiremate/internal/observability"
	"hiremate/internal/types"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimitHandler(requestLimitHandler(h))
	}
	recruiter := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimitHandler(s.jwtMiddleware(types.RoleRecruiter, requestLimitHandler(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.apiKeyMiddleware(s.statsHandler))

	mux.HandleFunc("POST /api/jobseeker/signup", public(s.createSignupHandler(types.RoleJobSeeker)))
	mux.HandleFunc("POST /api/jobseeker/signin", public(s.createSigninHandler(types.RoleJobSeeker)))
	mux.HandleFunc("POST /api/recruiter/signup", public(s.createSignupHandler(types.RoleRecruiter)))
	mux.HandleFunc("POST /api/recruiter/signin", public(s.createSigninHandler(types.RoleRecruiter)))
	mux.HandleFunc("POST /api/auth/signout", rateLimitHandler(s.signoutHandler))

	mux.HandleFunc("GET /api/jobs", rateLimitHandler(s.listJobsHandler))
	mux.HandleFunc("GET /api/jobs/{id}", rateLimitHandler(s.getJobHandler))
	mux.HandleFunc("POST /api/jobs", recruiter(s.createJobHandler(om)))
	mux.HandleFunc("POST /api/jobs/{id}/close", recruiter(s.closeJobHandler))
	mux.HandleFunc("GET /api/jobs/{id}/applications", recruiter(s.listApplicationsHandler))

	mux.HandleFunc("POST /api/jobs/{id}/analyze", public(s.createAnalyzeHandler(om)))
	mux.HandleFunc("POST /api/jobs/{id}/apply", public(s.createApplyHandler(om)))
	mux.HandleFunc("POST /api/resumes/extract", public(s.extractResumeHandler))

	return mux
}

// jwtMiddleware authenticates the request with a Bearer JWT and requires the
// given role. The verified claims are stored on the request context.
func (s *Server) jwtMiddleware(role types.UserRole, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.Logger.Info("Authentication failed: missing token",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Missing token", "Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		claims, err := s.Tokens.Verify(r.Context(), token)
		if err != nil {
			s.Logger.Info("Authentication failed: invalid token",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Invalid token", "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		if claims.Role != role {
			s.Logger.Info("Authentication failed: wrong role",
				"endpoint", r.URL.Path,
				"role", string(claims.Role))
			writeErrorResponse(w, "Forbidden", "This endpoint requires a "+string(role)+" account", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// requestClaims returns the verified claims stored by jwtMiddleware, or nil
func requestClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*auth.Claims)
	return claims
}

// bearerToken extracts the Bearer token from the Authorization header
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}

// apiKeyMiddleware protects operational endpoints with a static API key
func (s *Server) apiKeyMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			apiKey = bearerToken(r)
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
