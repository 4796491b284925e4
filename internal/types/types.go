package types

import (
	"time"

	"github.com/google/uuid"
)

// UserRole discriminates the two account collections.
type UserRole string

const (
	RoleJobSeeker UserRole = "jobseeker"
	RoleRecruiter UserRole = "recruiter"
)

// JobSeeker is a candidate account. The password hash never leaves the store.
type JobSeeker struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Recruiter is a hiring account; company is required on signup.
type Recruiter struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Company      string    `json:"company"`
	CreatedAt    time.Time `json:"createdAt"`
}

// JobStatus transitions open -> closed, one-directional.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// SalaryRange is the structured salary band attached to a listing.
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is a listing owned by a recruiter. Requirements is ordered and never
// empty; ApplicantCount is a cached counter incremented best-effort on apply.
type Job struct {
	ID             uuid.UUID   `json:"id"`
	RecruiterID    uuid.UUID   `json:"recruiterId"`
	Title          string      `json:"title"`
	Company        string      `json:"company"`
	Description    string      `json:"description"`
	Requirements   []string    `json:"requirements"`
	Location       string      `json:"location"`
	Salary         SalaryRange `json:"salary"`
	Status         JobStatus   `json:"status"`
	ApplicantCount int         `json:"applicantCount"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// Application is one apply action against a job. JobSeekerID is nil for
// anonymous applicants. Analysis is optional and, when present, always
// satisfies the AnalysisResult shape constraints. Immutable once created.
type Application struct {
	ID          uuid.UUID       `json:"id"`
	JobID       uuid.UUID       `json:"jobId"`
	JobSeekerID *uuid.UUID      `json:"jobSeekerId,omitempty"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Resume      string          `json:"resume"`
	Analysis    *AnalysisResult `json:"analysis,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SkillMatch scores one job requirement against the resume, 0-100.
type SkillMatch struct {
	Skill string `json:"skill"`
	Match int    `json:"match"`
}

// AnalysisResult is the resume-match analysis embedded in an Application.
// The skill entries are expected to follow the job's requirements order;
// that correspondence is prompted for, not mechanically enforced.
type AnalysisResult struct {
	Score           int          `json:"score"`
	SkillsMatch     []SkillMatch `json:"skillsMatch"`
	ExperienceMatch string       `json:"experienceMatch"`
	Recommendations []string     `json:"recommendations"`
}

// AnalysisSource tags which provider produced an analysis.
type AnalysisSource string

const (
	SourceAI       AnalysisSource = "ai"
	SourceFallback AnalysisSource = "fallback"
)

// MatchInput is the input for a resume-match analysis.
type MatchInput struct {
	JobTitle     string   `json:"jobTitle"`
	Requirements []string `json:"requirements"`
	Resume       string   `json:"resume"`
}

// MatchOutcome is the result of the two-source match flow. Notice is set
// only on the fallback path so callers can surface the degraded trust level.
type MatchOutcome struct {
	Analysis AnalysisResult `json:"analysis"`
	Source   AnalysisSource `json:"source"`
	Notice   string         `json:"notice,omitempty"`
}
