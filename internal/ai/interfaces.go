package ai

import (
	"context"

	"hiremate/internal/types"
)

// Provider interface for different AI implementations.
// AnalyzeMatch returns token usage information - callers can ignore it if not needed.
type Provider interface {
	AnalyzeMatch(ctx context.Context, input types.MatchInput) (types.AnalysisResult, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
