package ai

import (
	"testing"

	"hiremate/internal/errors"
	"hiremate/internal/types"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json passes through",
			input:    `{"score": 80}`,
			expected: `{"score": 80}`,
		},
		{
			name:     "json fence with language label",
			input:    "```json\n{\"score\": 80}\n```",
			expected: `{"score": 80}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"score\": 80}\n```",
			expected: `{"score": 80}`,
		},
		{
			name:     "surrounding prose",
			input:    "Here is the analysis you asked for:\n{\"score\": 80}\nLet me know if you need anything else.",
			expected: `{"score": 80}`,
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  \n{\"score\": 80}\n  ",
			expected: `{"score": 80}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSON(tt.input)
			if got != tt.expected {
				t.Errorf("CleanJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	raw := "```json\n" + `{
		"score": 82,
		"skillsMatch": [
			{"skill": "Go", "match": 90},
			{"skill": "PostgreSQL", "match": 70}
		],
		"experienceMatch": "Good",
		"recommendations": ["Highlight quantifiable achievements"]
	}` + "\n```"

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis failed: %v", err)
	}

	if result.Score != 82 {
		t.Errorf("Expected score 82, got %d", result.Score)
	}
	if len(result.SkillsMatch) != 2 {
		t.Fatalf("Expected 2 skill matches, got %d", len(result.SkillsMatch))
	}
	if result.SkillsMatch[0].Skill != "Go" || result.SkillsMatch[0].Match != 90 {
		t.Errorf("Unexpected first skill match: %+v", result.SkillsMatch[0])
	}
	if result.ExperienceMatch != "Good" {
		t.Errorf("Expected experience match 'Good', got %q", result.ExperienceMatch)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("Expected 1 recommendation, got %d", len(result.Recommendations))
	}
}

func TestParseAnalysisErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "not json at all",
			raw:  "I could not analyze this resume.",
		},
		{
			name: "truncated json",
			raw:  `{"score": 82, "skillsMatch": [`,
		},
		{
			name: "score out of range",
			raw:  `{"score": 140, "skillsMatch": [], "experienceMatch": "Good", "recommendations": []}`,
		},
		{
			name: "negative skill match",
			raw:  `{"score": 80, "skillsMatch": [{"skill": "Go", "match": -5}], "experienceMatch": "Good", "recommendations": []}`,
		},
		{
			name: "empty skill name",
			raw:  `{"score": 80, "skillsMatch": [{"skill": "  ", "match": 50}], "experienceMatch": "Good", "recommendations": []}`,
		},
		{
			name: "missing experience match",
			raw:  `{"score": 80, "skillsMatch": [], "experienceMatch": "", "recommendations": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.raw)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if errors.TypeOf(err) != errors.ErrorTypeFormat {
				t.Errorf("Expected format error, got type %q", errors.TypeOf(err))
			}
			if !errors.IsRecoverableAnalysisError(err) {
				t.Error("Parse errors should be recoverable so the fallback path can run")
			}
		})
	}
}

func TestValidateAnalysisAcceptsBoundaryScores(t *testing.T) {
	result := types.AnalysisResult{
		Score: 0,
		SkillsMatch: []types.SkillMatch{
			{Skill: "Go", Match: 0},
			{Skill: "Docker", Match: 100},
		},
		ExperienceMatch: "Below Average",
		Recommendations: []string{},
	}

	if err := ValidateAnalysis(result); err != nil {
		t.Errorf("Boundary scores should be valid: %v", err)
	}

	result.Score = 100
	if err := ValidateAnalysis(result); err != nil {
		t.Errorf("Score 100 should be valid: %v", err)
	}
}
