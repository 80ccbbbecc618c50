// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Recommendation priorities, ordered from most to least urgent.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Recommendation categories.
const (
	CategoryFormatting             = "formatting"
	CategoryContentImprovement     = "content_improvement"
	CategoryKeywordOptimization    = "keyword_optimization"
	CategoryGapExplanation         = "gap_explanation"
	CategoryAchievementEnhancement = "achievement_enhancement"
	CategorySkillAddition          = "skill_addition"
)

// Stage labels used by risk factors, recommendations and stage
// explanations. These name the hiring gates, not the pipeline stages.
const (
	StageLabelATS       = "ats"
	StageLabelRecruiter = "recruiter"
	StageLabelInterview = "interview"
	StageLabelOffer     = "offer"
	StageLabelOverall   = "overall"
)

// StageExplanation gives the human-readable reasoning behind one stage's
// outcome. Positive observations land in ReferencedSignals, negative ones
// in ReferencedRisks; KeyFactors interleaves both in generation order.
type StageExplanation struct {
	Summary           string   `json:"summary"`
	KeyFactors        []string `json:"key_factors"`
	ReferencedSignals []string `json:"referenced_signals"`
	ReferencedRisks   []string `json:"referenced_risks"`
	EstimatedImpact   float64  `json:"estimated_impact"`
}

// Recommendation is a concrete, actionable change to the resume together
// with its expected effect. Delta fields are nil when the catalog entry
// carries no quantified impact.
type Recommendation struct {
	Priority               string   `json:"priority"`
	Category               string   `json:"category"`
	Action                 string   `json:"action"`
	Impact                 string   `json:"impact"`
	Reasoning              string   `json:"reasoning"`
	StageAffected          string   `json:"stage_affected"`
	ImpactScoreDelta       *float64 `json:"impact_score_delta,omitempty"`
	ImpactProbabilityDelta *float64 `json:"impact_probability_delta,omitempty"`
	ReferencedRisk         string   `json:"referenced_risk,omitempty"`
	ReferencedSignal       string   `json:"referenced_signal,omitempty"`
}

// CounterfactualImpact quantifies how much a counterfactual scenario would
// move the outcome if applied.
type CounterfactualImpact struct {
	ScoreDelta       float64            `json:"score_delta"`
	ProbabilityDelta float64            `json:"probability_delta"`
	StageImpacts     map[string]float64 `json:"stage_impacts"`
}

// Counterfactual is a what-if scenario derived from a high-priority
// recommendation. ExpectedScore and ExpectedProbability project the
// scenario onto the current overall score and offer probability.
type Counterfactual struct {
	Scenario            string               `json:"scenario"`
	ChangeDescription   string               `json:"change_description"`
	Impact              CounterfactualImpact `json:"expected_impact"`
	ExpectedScore       float64              `json:"expected_score"`
	ExpectedProbability float64              `json:"expected_probability"`
	ReferencedFactors   []string             `json:"referenced_factors"`
}

// ExplainabilityArtifact is the full explanation bundle for a completed
// analysis, keyed by stage label (ats, recruiter, interview, overall).
type ExplainabilityArtifact struct {
	StageExplanations map[string]StageExplanation `json:"stage_explanations"`
	Recommendations   []Recommendation            `json:"recommendations"`
	Counterfactuals   []Counterfactual            `json:"counterfactuals"`
}
