package ai

// DefaultMatchSystemPrompt is the default system instruction for resume match
// analysis.
const DefaultMatchSystemPrompt = `You are an expert HR analyst and technical recruiter with a strict commitment to honesty and accuracy. Your core principles are:

- Base every assessment only on what the resume actually states
- NEVER invent skills or experience the candidate did not claim
- Provide honest, data-driven scoring
- Give concrete, actionable improvement recommendations

Your expertise includes:
- Candidate screening and skill gap analysis
- Matching resumes against job requirements
- HR best practices and industry standards`

// DefaultMatchUserPrompt is the default user prompt template for resume match
// analysis. Placeholders: job title, comma-joined requirements, resume text.
const DefaultMatchUserPrompt = `Analyze this resume for the %s role. Job requirements: %s.
Return a JSON object with these properties:
- score: number (0-100) representing overall match
- skillsMatch: array of objects with 'skill' and 'match' (percentage 0-100) properties
- experienceMatch: string ('Excellent', 'Good', 'Average', or 'Below Average')
- recommendations: array of strings with improvement suggestions

Resume:
%s

Format your response ONLY as a valid JSON object with no explanation or preamble.`

// resolvePrompt selects the correct prompt string based on priority order:
// 1. A prompt defined in the configuration (file contents already folded in).
// 2. The hardcoded default prompt.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
