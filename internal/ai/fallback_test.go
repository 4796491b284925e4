package ai

import (
	"strings"
	"testing"

	"hiremate/internal/types"
)

func TestFallbackAnalysis(t *testing.T) {
	input := types.MatchInput{
		JobTitle:     "Backend Engineer",
		Requirements: []string{"Go", "PostgreSQL", "Docker"},
		Resume:       "Five years building services in Go.",
	}

	result := FallbackAnalysis(input)

	if result.Score != 75 {
		t.Errorf("Expected fixed fallback score 75, got %d", result.Score)
	}

	if len(result.SkillsMatch) != len(input.Requirements) {
		t.Fatalf("Expected one skill match per requirement, got %d for %d requirements",
			len(result.SkillsMatch), len(input.Requirements))
	}
	for i, sm := range result.SkillsMatch {
		if sm.Skill != input.Requirements[i] {
			t.Errorf("Skill match %d should reference requirement %q, got %q", i, input.Requirements[i], sm.Skill)
		}
		if sm.Match < 60 || sm.Match > 100 {
			t.Errorf("Skill match for %q should be in [60, 100], got %d", sm.Skill, sm.Match)
		}
	}

	if result.ExperienceMatch != "Good" {
		t.Errorf("Expected experience match 'Good', got %q", result.ExperienceMatch)
	}

	if len(result.Recommendations) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d", len(result.Recommendations))
	}
	if !strings.Contains(result.Recommendations[0], "Go") {
		t.Errorf("First recommendation should reference the first requirement, got %q", result.Recommendations[0])
	}

	// The fallback must always pass the same validation applied to AI output
	if err := ValidateAnalysis(result); err != nil {
		t.Errorf("Fallback analysis failed validation: %v", err)
	}
}

func TestFallbackAnalysisNoRequirements(t *testing.T) {
	input := types.MatchInput{
		JobTitle: "Generalist",
		Resume:   "Resume text.",
	}

	result := FallbackAnalysis(input)

	if len(result.SkillsMatch) != 0 {
		t.Errorf("Expected no skill matches without requirements, got %d", len(result.SkillsMatch))
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d", len(result.Recommendations))
	}
	if err := ValidateAnalysis(result); err != nil {
		t.Errorf("Fallback analysis failed validation: %v", err)
	}
}
