package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"hiremate/internal/types"
)

func sampleOutcome() types.MatchOutcome {
	return types.MatchOutcome{
		Analysis: types.AnalysisResult{
			Score: 72,
			SkillsMatch: []types.SkillMatch{
				{Skill: "Go", Match: 90},
				{Skill: "PostgreSQL", Match: 60},
			},
			ExperienceMatch: "Strong backend experience, limited frontend exposure",
			Recommendations: []string{
				"Highlight distributed systems work",
				"Add PostgreSQL projects",
			},
		},
		Source: types.SourceAI,
	}
}

func TestTextFormatter(t *testing.T) {
	formatter := &MatchTextFormatter{}

	output, err := formatter.Format(sampleOutcome())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	expectations := []string{
		"=== RESUME MATCH ANALYSIS ===",
		"Overall Score: 72/100",
		"Experience Match: Strong backend experience, limited frontend exposure",
		"Source: ai",
		"=== SKILLS ===",
		"- Go: 90/100",
		"- PostgreSQL: 60/100",
		"=== RECOMMENDATIONS ===",
		"1. Highlight distributed systems work",
		"2. Add PostgreSQL projects",
	}
	for _, want := range expectations {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}

	if strings.Contains(output, "NOTE:") {
		t.Errorf("Did not expect a notice in output without one:\n%s", output)
	}
}

func TestTextFormatterFallbackNotice(t *testing.T) {
	formatter := &MatchTextFormatter{}

	outcome := sampleOutcome()
	outcome.Source = types.SourceFallback
	outcome.Notice = "AI analysis was unavailable"

	output, err := formatter.Format(outcome)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(output, "NOTE: AI analysis was unavailable") {
		t.Errorf("Expected notice in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Source: fallback") {
		t.Errorf("Expected fallback source in output, got:\n%s", output)
	}
}

func TestTextFormatterWrongType(t *testing.T) {
	formatter := &MatchTextFormatter{}

	if _, err := formatter.Format("not an outcome"); err == nil {
		t.Error("Expected error for wrong data type")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	formatter := &MatchMarkdownFormatter{}

	output, err := formatter.Format(sampleOutcome())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	expectations := []string{
		"# Resume Match Analysis",
		"**Overall Score:** 72/100",
		"**Source:** ai",
		"| Skill | Match |",
		"| Go | 90/100 |",
		"## Recommendations",
		"1. Highlight distributed systems work",
	}
	for _, want := range expectations {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestMarkdownFormatterNotice(t *testing.T) {
	formatter := &MatchMarkdownFormatter{}

	outcome := sampleOutcome()
	outcome.Notice = "AI analysis was unavailable"

	output, err := formatter.Format(outcome)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(output, "> AI analysis was unavailable") {
		t.Errorf("Expected blockquote notice in output, got:\n%s", output)
	}
}

func TestJSONFormatter(t *testing.T) {
	formatter := &JSONFormatter{}

	output, err := formatter.Format(sampleOutcome())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded types.MatchOutcome
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Analysis.Score != 72 {
		t.Errorf("Expected score 72, got %d", decoded.Analysis.Score)
	}
	if decoded.Source != types.SourceAI {
		t.Errorf("Expected source ai, got %s", decoded.Source)
	}
}

func TestRegistryFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name    string
		format  string
		data    any
		wantErr bool
		want    string
	}{
		{
			name:   "text for match outcome",
			format: "text",
			data:   sampleOutcome(),
			want:   "=== RESUME MATCH ANALYSIS ===",
		},
		{
			name:   "markdown for match outcome",
			format: "markdown",
			data:   sampleOutcome(),
			want:   "# Resume Match Analysis",
		},
		{
			name:   "json for match outcome",
			format: "json",
			data:   sampleOutcome(),
			want:   "\"score\": 72",
		},
		{
			name:   "json falls back for arbitrary data",
			format: "json",
			data:   map[string]string{"status": "ok"},
			want:   "\"status\": \"ok\"",
		},
		{
			name:    "unknown format",
			format:  "xml",
			data:    sampleOutcome(),
			wantErr: true,
		},
		{
			name:    "text has no fallback for arbitrary data",
			format:  "text",
			data:    map[string]string{"status": "ok"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := registry.Format(tt.data, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, output)
			}
		})
	}
}

func TestRegistrySupportedFormats(t *testing.T) {
	registry := NewFormatterRegistry()

	formats := registry.GetSupportedFormats()
	if len(formats) != 3 {
		t.Fatalf("Expected 3 formats, got %d: %v", len(formats), formats)
	}
	for _, want := range []string{"json", "text", "markdown"} {
		found := false
		for _, format := range formats {
			if format == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %q in supported formats, got %v", want, formats)
		}
	}
}
