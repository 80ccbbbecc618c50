// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity grades red flags, consistency risks and risk factors.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Career trajectory classifications.
const (
	TrajectoryUpward           = "upward"
	TrajectoryLateral          = "lateral"
	TrajectoryMixed            = "mixed"
	TrajectoryDownward         = "downward"
	TrajectoryInsufficientData = "insufficient_data"
)

// RedFlag is a concern a recruiter would raise while scanning a resume.
type RedFlag struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence,omitempty"`
}

// CareerProgressionAnalysis describes the title trajectory across work
// history. Promotions is nil when none were inferred.
type CareerProgressionAnalysis struct {
	Trajectory             string   `json:"trajectory"`
	Promotions             *int     `json:"promotions_count,omitempty"`
	ResponsibilityIncrease bool     `json:"responsibility_increase"`
	TitleProgression       []string `json:"title_progression,omitempty"`
}

// EmploymentGap is a detected gap between two positions.
type EmploymentGap struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	DurationMonths float64 `json:"duration_months"`
}

// JobStabilityAnalysis summarizes tenure patterns. Tenure is currently a
// coarse assumption because dates are opaque strings; the fields keep their
// full shape so the penalty rules stay exercised once real date spans land.
type JobStabilityAnalysis struct {
	AvgTenureMonths  float64         `json:"average_tenure_months"`
	ShortTenureCount int             `json:"short_tenure_jobs_count"`
	EmploymentGaps   []EmploymentGap `json:"employment_gaps"`
}

// RecruiterResult is the outcome of the recruiter review stage.
type RecruiterResult struct {
	Persona                string                    `json:"recruiter_persona,omitempty"`
	EvaluationScore        float64                   `json:"evaluation_score"`
	CareerProgressionScore float64                   `json:"career_progression_score"`
	JobStabilityScore      float64                   `json:"job_stability_score"`
	RedFlags               []RedFlag                 `json:"red_flags"`
	CareerProgression      CareerProgressionAnalysis `json:"career_progression_analysis"`
	JobStability           JobStabilityAnalysis      `json:"job_stability_analysis"`
}
