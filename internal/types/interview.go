// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Claim types.
const (
	ClaimTypeAchievement = "achievement"
	ClaimTypeSkill       = "skill"
)

// Depth indicators for how substantively a claim is written.
const (
	DepthSurface  = "surface"
	DepthModerate = "moderate"
	DepthDeep     = "deep"
)

// Per-claim consistency risk levels. An empty value means no risk.
const (
	ClaimRiskNone   = ""
	ClaimRiskMedium = "medium"
	ClaimRiskHigh   = "high"
)

// ResumeClaim is a single assertion extracted from the resume that an
// interviewer could probe.
type ResumeClaim struct {
	Text               string   `json:"claim_text"`
	Type               string   `json:"claim_type"`
	DefensibilityScore float64  `json:"defensibility_score"`
	DepthIndicator     string   `json:"depth_indicator"`
	ConsistencyRisk    string   `json:"consistency_risk,omitempty"`
	SupportingEvidence []string `json:"supporting_evidence,omitempty"`
}

// PredictedQuestion is an interview question the evaluator expects a claim
// to attract.
type PredictedQuestion struct {
	Question     string  `json:"question"`
	Likelihood   float64 `json:"likelihood"`
	Type         string  `json:"question_type"`
	RelatedClaim string  `json:"related_claim,omitempty"`
	Reasoning    string  `json:"reasoning,omitempty"`
}

// ConsistencyRisk is a mismatch between what the resume asserts and what it
// substantiates.
type ConsistencyRisk struct {
	RiskType             string   `json:"risk_type"`
	Severity             Severity `json:"severity"`
	Description          string   `json:"description"`
	RelatedClaim         string   `json:"related_claim,omitempty"`
	MitigationSuggestion string   `json:"mitigation_suggestion,omitempty"`
}

// InterviewReadinessResult is the outcome of the interview readiness stage.
type InterviewReadinessResult struct {
	ReadinessScore     float64             `json:"readiness_score"`
	ResumeClaims       []ResumeClaim       `json:"resume_claims"`
	PredictedQuestions []PredictedQuestion `json:"predicted_questions"`
	ConsistencyRisks   []ConsistencyRisk   `json:"consistency_risks"`
}
