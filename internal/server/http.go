package server

import (
	"time"

	"hiremate/internal/ai"
	"hiremate/internal/auth"
	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/notify"
	"hiremate/internal/store"
	"hiremate/internal/types"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// SignupRequest represents the request body for the signup endpoints.
// Company is required on the recruiter route only.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Company  string `json:"company"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the sanitized account record
type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type JobRequest struct {
	Title        string            `json:"title" validate:"required"`
	Company      string            `json:"company" validate:"required"`
	Description  string            `json:"description"`
	Requirements []string          `json:"requirements" validate:"required,min=1,dive,required"`
	Location     string            `json:"location"`
	Salary       types.SalaryRange `json:"salary"`
}

type AnalyzeRequest struct {
	Resume string `json:"resume"`
}

type ApplyRequest struct {
	Name     string                `json:"name" validate:"required"`
	Email    string                `json:"email" validate:"required,email"`
	Resume   string                `json:"resume" validate:"required"`
	Analysis *types.AnalysisResult `json:"analysis,omitempty"`
}

type ExtractResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration and dependencies for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate auto-reload
	CertWatcher *CertWatcher

	// API Authentication for operational endpoints
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Domain dependencies
	Store    *store.Store
	Matcher  *ai.Service
	Tokens   *auth.TokenManager
	Sessions *auth.SessionStore
	Notifier *notify.Publisher

	validate  *validator.Validate
	sanitizer *bluemonday.Policy

	// Logger
	Logger *hiremateErrors.Logger
}

// Dependencies groups the domain services wired into the server
type Dependencies struct {
	Store    *store.Store
	Matcher  *ai.Service
	Tokens   *auth.TokenManager
	Sessions *auth.SessionStore
	Notifier *notify.Publisher
}

// NewServer creates a new Server instance
func NewServer(appCfg *config.Config, version string, deps Dependencies, logger *hiremateErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range appCfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	rateLimit := &appCfg.Server.RateLimit
	var rateLimiter *LimiterManager
	if rateLimit.Enabled {
		rateLimiter = NewLimiterManager(
			rateLimit.RequestsPerMin,
			rateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        version,
		AppConfig:      appCfg,
		TLSConfig:      appCfg.Server.TLS,
		APIKeys:        apiKeyMap,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.IdleTimeout,
		MaxRequestSize: appCfg.App.MaxRequestSize,
		RateLimit:      rateLimit,
		RateLimiter:    rateLimiter,
		Store:          deps.Store,
		Matcher:        deps.Matcher,
		Tokens:         deps.Tokens,
		Sessions:       deps.Sessions,
		Notifier:       deps.Notifier,
		validate:       validator.New(),
		sanitizer:      bluemonday.UGCPolicy(),
		Logger:         logger,
	}
}
