package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"hiremate/internal/errors"
	"hiremate/internal/types"
)

// CleanJSON strips markdown code fences and surrounding prose from a model
// response so the remaining text can be unmarshaled. Models occasionally wrap
// JSON output in ```json fences or prefix it with a short explanation even
// when told not to.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	// Drop any prose around the outermost JSON object
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	return clean
}

// ParseAnalysis cleans and unmarshals a model response into an AnalysisResult
// and validates its shape. Failures return a format error so callers can fall
// back to a locally computed analysis.
func ParseAnalysis(raw string) (types.AnalysisResult, error) {
	var result types.AnalysisResult

	cleaned := CleanJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return types.AnalysisResult{}, errors.NewFormatError(errors.ErrCodeAnalysisUnparsable,
			"Failed to parse analysis response as JSON", err)
	}

	if err := ValidateAnalysis(result); err != nil {
		return types.AnalysisResult{}, err
	}

	return result, nil
}

// ValidateAnalysis checks that an analysis result has the expected shape and
// that all scores are within range.
func ValidateAnalysis(result types.AnalysisResult) error {
	if result.Score < 0 || result.Score > 100 {
		return errors.NewFormatError(errors.ErrCodeAnalysisShape,
			fmt.Sprintf("Analysis score %d is out of range [0, 100]", result.Score), nil)
	}

	for i, sm := range result.SkillsMatch {
		if strings.TrimSpace(sm.Skill) == "" {
			return errors.NewFormatError(errors.ErrCodeAnalysisShape,
				fmt.Sprintf("Skill match entry %d has an empty skill name", i), nil)
		}
		if sm.Match < 0 || sm.Match > 100 {
			return errors.NewFormatError(errors.ErrCodeAnalysisShape,
				fmt.Sprintf("Skill match for %q is out of range [0, 100]: %d", sm.Skill, sm.Match), nil)
		}
	}

	if strings.TrimSpace(result.ExperienceMatch) == "" {
		return errors.NewFormatError(errors.ErrCodeAnalysisShape,
			"Analysis is missing the experience match assessment", nil)
	}

	return nil
}
