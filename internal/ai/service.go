package ai

import (
	"context"
	"fmt"
	"strings"

	"hiremate/internal/config"
	"hiremate/internal/errors"
	"hiremate/internal/types"
)

// FallbackNotice is surfaced to clients when a locally computed analysis is
// returned instead of an AI one.
const FallbackNotice = "AI analysis was unavailable; an estimated analysis is shown instead."

// Service runs resume match analysis with a fallback path when the AI
// provider fails or returns an unusable response.
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance
func NewService(cfg *config.OperationAIConfig, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewGatewayError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Analyze runs a match analysis against the configured provider. When the
// provider fails or its response cannot be parsed, the outcome carries a
// locally computed analysis and a notice instead of an error. Only input
// validation problems and context cancellation surface as errors.
func (s *Service) Analyze(ctx context.Context, input types.MatchInput) (types.MatchOutcome, *TokenUsage, error) {
	if err := validateMatchInput(input); err != nil {
		return types.MatchOutcome{}, nil, err
	}

	analysis, tokenUsage, err := s.Provider.AnalyzeMatch(ctx, input)
	if err == nil {
		return types.MatchOutcome{
			Analysis: analysis,
			Source:   types.SourceAI,
		}, tokenUsage, nil
	}

	if ctx.Err() != nil {
		return types.MatchOutcome{}, nil, ctx.Err()
	}

	if !errors.IsRecoverableAnalysisError(err) {
		return types.MatchOutcome{}, nil, err
	}

	s.logger.Warn("AI analysis failed, using fallback analysis",
		"job_title", input.JobTitle,
		"error", err.Error())

	return types.MatchOutcome{
		Analysis: FallbackAnalysis(input),
		Source:   types.SourceFallback,
		Notice:   FallbackNotice,
	}, nil, nil
}

// validateMatchInput checks the analysis input before it reaches the provider
func validateMatchInput(input types.MatchInput) error {
	if strings.TrimSpace(input.Resume) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required", nil)
	}
	if strings.TrimSpace(input.JobTitle) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job title is required", nil)
	}
	return nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
