package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Stage weights for the overall score. Interview carries the most weight
// because it is the final gate.
const (
	atsWeight       = 0.30
	recruiterWeight = 0.30
	interviewWeight = 0.40
)

// Probability impact of a recruiter red flag by severity.
var redFlagImpacts = map[types.Severity]float64{
	types.SeverityCritical: -0.25,
	types.SeverityHigh:     -0.15,
	types.SeverityMedium:   -0.08,
	types.SeverityLow:      -0.03,
}

// Probability impact of an interview consistency risk by severity.
var consistencyRiskImpacts = map[types.Severity]float64{
	types.SeverityCritical: -0.30,
	types.SeverityHigh:     -0.20,
	types.SeverityMedium:   -0.10,
	types.SeverityLow:      -0.05,
}

const (
	defaultRedFlagImpact = -0.05
	defaultRiskImpact    = -0.10
)

// Aggregate combines the three stage results into stage probabilities, an
// overall 0-100 score, ranked risk factors, and per-stage contributions.
// The computation is pure; calling it twice with the same inputs yields
// identical output.
func Aggregate(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) types.AggregatedScore {
	result := types.AggregatedScore{}

	base := baseProbabilities(ats, recruiter, interview)
	result.SignalSummary = ComputeSignals(ats, recruiter, interview)
	result.StageProbabilities = applyCompounding(base, result.SignalSummary)
	result.OverallScore = overallScore(ats, recruiter, interview)
	result.RiskFactors = rankRiskFactors(ats, recruiter, interview, result.SignalSummary)
	result.ComponentContributions = contributions(ats, recruiter, interview)

	return result
}

// baseProbabilities maps each stage score linearly onto [0,1]. The offer
// probability is conditional on the interview: clearing it comfortably
// lands in [0.7,0.9], anything else decays to at most 0.25.
func baseProbabilities(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) types.StageProbabilities {
	probs := types.StageProbabilities{
		ATSPass:       clampProbability(ats.CompatibilityScore / 100.0),
		RecruiterPass: clampProbability(recruiter.EvaluationScore / 100.0),
		InterviewPass: clampProbability(interview.ReadinessScore / 100.0),
	}

	if probs.InterviewPass > 0.5 {
		probs.Offer = 0.7 + (probs.InterviewPass-0.5)*0.4
	} else {
		probs.Offer = probs.InterviewPass * 0.5
	}
	probs.Offer = clampProbability(probs.Offer)

	return probs
}

// applyCompounding shifts later-stage probabilities by each signal's
// effect. The ats_pass probability anchors the funnel and is never
// adjusted. After every signal has been applied, each stage is capped by
// the stage before it so the funnel stays monotone.
func applyCompounding(base types.StageProbabilities, summary types.SignalSummary) types.StageProbabilities {
	adjusted := base

	for _, signal := range summary.PositiveSignals {
		if signal.CompoundEffect == 0 {
			continue
		}
		if affectsStage(signal, types.StageLabelRecruiter) {
			adjusted.RecruiterPass = math.Min(1.0, adjusted.RecruiterPass+signal.CompoundEffect)
		}
		if affectsStage(signal, types.StageLabelInterview) {
			adjusted.InterviewPass = math.Min(1.0, adjusted.InterviewPass+signal.CompoundEffect)
		}
		if affectsStage(signal, types.StageLabelOffer) {
			adjusted.Offer = math.Min(1.0, adjusted.Offer+signal.CompoundEffect)
		}
	}

	for _, signal := range summary.NegativeSignals {
		if signal.CompoundEffect == 0 {
			continue
		}
		if affectsStage(signal, types.StageLabelRecruiter) {
			adjusted.RecruiterPass = math.Max(0.0, adjusted.RecruiterPass+signal.CompoundEffect)
		}
		if affectsStage(signal, types.StageLabelInterview) {
			adjusted.InterviewPass = math.Max(0.0, adjusted.InterviewPass+signal.CompoundEffect)
		}
		if affectsStage(signal, types.StageLabelOffer) {
			adjusted.Offer = math.Max(0.0, adjusted.Offer+signal.CompoundEffect)
		}
	}

	adjusted.RecruiterPass = math.Min(adjusted.RecruiterPass, adjusted.ATSPass)
	adjusted.InterviewPass = math.Min(adjusted.InterviewPass, adjusted.RecruiterPass)
	adjusted.Offer = math.Min(adjusted.Offer, adjusted.InterviewPass)

	return adjusted
}

func affectsStage(signal types.CompoundingSignal, stage string) bool {
	for _, affected := range signal.StagesAffected {
		if affected == stage {
			return true
		}
	}
	return false
}

// overallScore is the weighted average of the raw stage scores, before any
// probability compounding.
func overallScore(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) float64 {
	overall := ats.CompatibilityScore*atsWeight +
		recruiter.EvaluationScore*recruiterWeight +
		interview.ReadinessScore*interviewWeight
	return round2(math.Max(0.0, math.Min(100.0, overall)))
}

// rankRiskFactors collects risks from every stage plus the negative
// compounding signals and sorts them by impact, most damaging first. The
// sort is stable so equal impacts keep their stage order.
func rankRiskFactors(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult, summary types.SignalSummary) []types.RiskFactor {
	var factors []types.RiskFactor

	if ats.CompatibilityScore < 50.0 {
		severity := types.SeverityMedium
		if ats.CompatibilityScore < 40.0 {
			severity = types.SeverityHigh
		}
		factors = append(factors, types.RiskFactor{
			Factor:      "Low ATS compatibility score",
			Stage:       types.StageLabelATS,
			Impact:      (50.0 - ats.CompatibilityScore) / 100.0 * -0.3,
			Severity:    severity,
			Description: fmt.Sprintf("ATS compatibility score is %.1f/100", ats.CompatibilityScore),
		})
	}

	for _, flag := range recruiter.RedFlags {
		impact, ok := redFlagImpacts[flag.Severity]
		if !ok {
			impact = defaultRedFlagImpact
		}
		factors = append(factors, types.RiskFactor{
			Factor:      flag.Type,
			Stage:       types.StageLabelRecruiter,
			Impact:      impact,
			Severity:    flag.Severity,
			Description: flag.Description,
		})
	}

	for _, risk := range interview.ConsistencyRisks {
		impact, ok := consistencyRiskImpacts[risk.Severity]
		if !ok {
			impact = defaultRiskImpact
		}
		factors = append(factors, types.RiskFactor{
			Factor:      risk.RiskType,
			Stage:       types.StageLabelInterview,
			Impact:      impact,
			Severity:    risk.Severity,
			Description: risk.Description,
		})
	}

	for _, signal := range summary.NegativeSignals {
		if signal.CompoundEffect == 0 {
			continue
		}
		// Scaled down: a compounding effect moves one stage, not the
		// whole funnel.
		impact := signal.CompoundEffect * 0.8
		severity := types.SeverityMedium
		if math.Abs(impact) > 0.15 {
			severity = types.SeverityHigh
		}
		factors = append(factors, types.RiskFactor{
			Factor:      signal.Signal,
			Stage:       strings.Join(signal.StagesAffected, ","),
			Impact:      impact,
			Severity:    severity,
			Description: fmt.Sprintf("Signal compounding effect: %s", signal.Signal),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Impact < factors[j].Impact
	})

	return factors
}

// contributions records how much each stage contributes to the overall
// score under the shared weights.
func contributions(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) types.ComponentContributions {
	return types.ComponentContributions{
		ATSContribution:       round2(ats.CompatibilityScore * atsWeight),
		RecruiterContribution: round2(recruiter.EvaluationScore * recruiterWeight),
		InterviewContribution: round2(interview.ReadinessScore * interviewWeight),
	}
}

func clampProbability(value float64) float64 {
	return math.Max(0.0, math.Min(1.0, value))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
