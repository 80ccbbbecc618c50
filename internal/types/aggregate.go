// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StageProbabilities are the per-stage pass probabilities after signal
// compounding and funnel ordering. Each later stage is never more likely
// than the one before it: offer <= interview_pass <= recruiter_pass <=
// ats_pass.
type StageProbabilities struct {
	ATSPass       float64 `json:"ats_pass"`
	RecruiterPass float64 `json:"recruiter_pass"`
	InterviewPass float64 `json:"interview_pass"`
	Offer         float64 `json:"offer"`
}

// RiskFactor is a single contributor that lowers the overall hiring
// probability.
type RiskFactor struct {
	Factor      string   `json:"factor"`
	Stage       string   `json:"stage"`
	Impact      float64  `json:"impact_on_overall_probability"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// ComponentContributions breaks the overall score into its weighted stage
// components.
type ComponentContributions struct {
	ATSContribution       float64 `json:"ats_contribution"`
	RecruiterContribution float64 `json:"recruiter_contribution"`
	InterviewContribution float64 `json:"interview_contribution"`
}

// CompoundingSignal is a cross-stage effect where the outcome of one stage
// shifts the pass probabilities of later stages.
type CompoundingSignal struct {
	Signal         string   `json:"signal"`
	StagesAffected []string `json:"stages_affected"`
	CompoundEffect float64  `json:"compound_effect"`
}

// SignalSummary groups the compounding signals applied to a candidate.
type SignalSummary struct {
	PositiveSignals []CompoundingSignal `json:"positive_signals"`
	NegativeSignals []CompoundingSignal `json:"negative_signals"`
}

// AggregatedScore is the combined outcome across every stage.
type AggregatedScore struct {
	OverallScore           float64                `json:"overall_score"`
	StageProbabilities     StageProbabilities     `json:"stage_probabilities"`
	RiskFactors            []RiskFactor           `json:"risk_factors"`
	ComponentContributions ComponentContributions `json:"component_contributions"`
	SignalSummary          SignalSummary          `json:"signal_compounding_summary"`
}
