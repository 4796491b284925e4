package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hiremate/internal/auth"
	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/google/uuid"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		Tokens: auth.NewTokenManager(config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-characters-long",
			AccessTokenTTL: time.Hour,
		}, nil),
		MaxRequestSize: 1024,
		Logger:         hiremateErrors.NewLogger(slog.LevelError),
	}
}

func TestWriteAppErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "validation error maps to 400",
			err:            hiremateErrors.NewValidationError(hiremateErrors.ErrCodeInvalidRequest, "bad input", nil),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "format error maps to 400",
			err:            hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat, "bad format", nil),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "auth error maps to 401",
			err:            hiremateErrors.NewAuthError(hiremateErrors.ErrCodeInvalidCredentials, "bad credentials", nil),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not found error maps to 404",
			err:            hiremateErrors.NewNotFoundError(hiremateErrors.ErrCodeJobNotFound, "no such job", nil),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "conflict error maps to 409",
			err:            hiremateErrors.NewConflictError(hiremateErrors.ErrCodeDuplicateEmail, "email taken", nil),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "gateway error maps to 502",
			err:            hiremateErrors.NewGatewayError(hiremateErrors.ErrCodeAIServiceFailed, "provider down", nil),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "storage error maps to 500",
			err:            hiremateErrors.NewStorageError("QUERY_FAILED", "query failed", nil),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "plain error maps to 500",
			err:            errors.New("something broke"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			s.writeAppError(recorder, tt.err, "Request failed")

			if recorder.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, recorder.Code)
			}

			var response ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
				t.Fatalf("Response is not valid JSON: %v", err)
			}
			if response.Error != "Request failed" {
				t.Errorf("Expected error title 'Request failed', got %q", response.Error)
			}
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	s := newTestServer(t)

	recruiterID := uuid.New()
	recruiterToken, err := s.Tokens.Issue(recruiterID, types.RoleRecruiter)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	seekerToken, err := s.Tokens.Issue(uuid.New(), types.RoleJobSeeker)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	var gotClaims *auth.Claims
	handler := s.jwtMiddleware(types.RoleRecruiter, func(w http.ResponseWriter, r *http.Request) {
		gotClaims = requestClaims(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "missing token",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic " + recruiterToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong role",
			authHeader:     "Bearer " + seekerToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "valid recruiter token",
			authHeader:     "Bearer " + recruiterToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, recorder.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				if gotClaims == nil {
					t.Fatal("Expected claims on the request context")
				}
				if gotClaims.UserID != recruiterID {
					t.Errorf("Expected user id %s, got %s", recruiterID, gotClaims.UserID)
				}
				if gotClaims.Role != types.RoleRecruiter {
					t.Errorf("Expected recruiter role, got %s", gotClaims.Role)
				}
			}
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		configuredKeys map[string]bool
		header         map[string]string
		expectedStatus int
	}{
		{
			name:           "no keys configured skips auth",
			configuredKeys: nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing key",
			configuredKeys: map[string]bool{"valid-key-12345": true},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid key",
			configuredKeys: map[string]bool{"valid-key-12345": true},
			header:         map[string]string{"X-API-Key": "wrong-key"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid key via header",
			configuredKeys: map[string]bool{"valid-key-12345": true},
			header:         map[string]string{"X-API-Key": "valid-key-12345"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid key via bearer token",
			configuredKeys: map[string]bool{"valid-key-12345": true},
			header:         map[string]string{"Authorization": "Bearer valid-key-12345"},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.APIKeys = tt.configuredKeys

			handler := s.apiKeyMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, recorder.Code)
			}
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	s := newTestServer(t)
	s.MaxRequestSize = 64

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := parseJSONRequest(r, &payload); err != nil {
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		handler(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", recorder.Code)
		}
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("x", 200) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()

		handler(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "request body too large") {
			t.Errorf("Expected size limit message, got: %s", recorder.Body.String())
		}
	})
}

func TestParseJSONRequestContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")

	var payload map[string]any
	err := parseJSONRequest(req, &payload)
	if err == nil {
		t.Fatal("Expected error for non-JSON content type")
	}
	if !strings.Contains(err.Error(), "content-type must be application/json") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		apiKey   string
		expected string
	}{
		{"", "****"},
		{"short", "****"},
		{"12345678", "****"},
		{"123456789", "12345678****"},
		{"sk-1234567890abcdef", "sk-12345****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.apiKey); got != tt.expected {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.expected)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"lowercase scheme", "bearer abc123", ""},
		{"bearer only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.expected {
				t.Errorf("bearerToken() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		param    string
		def      int
		expected int
	}{
		{"missing param uses default", "/api/jobs", "limit", 50, 50},
		{"valid param", "/api/jobs?limit=10", "limit", 50, 10},
		{"invalid param uses default", "/api/jobs?limit=abc", "limit", 50, 50},
		{"negative param uses default", "/api/jobs?offset=-5", "offset", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := queryInt(req, tt.param, tt.def); got != tt.expected {
				t.Errorf("queryInt() = %d, want %d", got, tt.expected)
			}
		})
	}
}
