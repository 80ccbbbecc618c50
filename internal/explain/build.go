package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Score thresholds shared by every stage explanation ladder.
const (
	strongThreshold   = 70.0
	moderateThreshold = 50.0
)

// Build assembles the full explainability artifact: one explanation per
// stage plus the overall assessment, the ranked recommendations, and
// counterfactual scenarios derived from the top ones. The analysis context
// must carry the ATS, recruiter, interview, and aggregated score results.
func Build(ac *types.AnalysisContext) types.ExplainabilityArtifact {
	artifact := types.ExplainabilityArtifact{
		StageExplanations: map[string]types.StageExplanation{
			types.StageLabelATS:       explainATSStage(ac.ATS),
			types.StageLabelRecruiter: explainRecruiterStage(ac.Recruiter),
			types.StageLabelInterview: explainInterviewStage(ac.Interview),
			types.StageLabelOverall:   explainOverallStage(ac.Score),
		},
	}

	artifact.Recommendations = Recommend(ac)
	artifact.Counterfactuals = counterfactuals(ac.Score, artifact.Recommendations)

	return artifact
}

func explainATSStage(ats *types.ATSResult) types.StageExplanation {
	var keyFactors, signals, risks []string

	switch {
	case ats.CompatibilityScore >= strongThreshold:
		keyFactors = append(keyFactors, fmt.Sprintf("Strong ATS compatibility score: %.1f/100", ats.CompatibilityScore))
		signals = append(signals, "High ATS compatibility")
	case ats.CompatibilityScore >= moderateThreshold:
		keyFactors = append(keyFactors, fmt.Sprintf("Moderate ATS compatibility score: %.1f/100", ats.CompatibilityScore))
		signals = append(signals, "Moderate ATS compatibility")
	}

	switch {
	case ats.KeywordMatchPercentage >= 70.0:
		keyFactors = append(keyFactors, fmt.Sprintf("Good keyword match: %.1f%%", ats.KeywordMatchPercentage))
		signals = append(signals, "High keyword match percentage")
	case ats.KeywordMatchPercentage >= 50.0:
		keyFactors = append(keyFactors, fmt.Sprintf("Moderate keyword match: %.1f%%", ats.KeywordMatchPercentage))
		signals = append(signals, "Moderate keyword match percentage")
	}

	if ats.RequiredFields.AllPresent {
		keyFactors = append(keyFactors, "All required fields present (email, phone, work history)")
		signals = append(signals, "Complete required fields")
	}

	if !ats.RequiredFields.Email {
		keyFactors = append(keyFactors, "Missing email address")
		risks = append(risks, "Missing required field: email")
	}
	if !ats.RequiredFields.Phone {
		keyFactors = append(keyFactors, "Missing phone number")
		risks = append(risks, "Missing required field: phone")
	}
	if !ats.RequiredFields.WorkHistory {
		keyFactors = append(keyFactors, "Missing work history")
		risks = append(risks, "Missing required field: work history")
	}

	if ats.KeywordMatchPercentage < 50.0 {
		factor := fmt.Sprintf("Low keyword match: %.1f%%", ats.KeywordMatchPercentage)
		keyFactors = append(keyFactors, factor)
		risks = append(risks, factor)
	}

	if ats.HardFilters.AllMet == types.TriFalse {
		if ats.HardFilters.ExperienceMet == types.TriFalse {
			keyFactors = append(keyFactors, "Hard filter failed: missing required skills")
			risks = append(risks, "Hard filter failed: missing required skills")
		}
		if ats.HardFilters.EducationMet == types.TriFalse {
			keyFactors = append(keyFactors, "Hard filter failed: missing required education")
			risks = append(risks, "Hard filter failed: missing required education")
		}
	}

	var summary string
	switch {
	case ats.CompatibilityScore >= strongThreshold:
		summary = fmt.Sprintf("ATS compatibility is strong (%.1f/100). Resume likely to pass ATS screening.", ats.CompatibilityScore)
	case ats.CompatibilityScore >= moderateThreshold:
		summary = fmt.Sprintf("ATS compatibility is moderate (%.1f/100). Some improvements could increase pass probability.", ats.CompatibilityScore)
	default:
		summary = fmt.Sprintf("ATS compatibility is weak (%.1f/100). Significant improvements needed to pass ATS screening.", ats.CompatibilityScore)
	}

	return types.StageExplanation{
		Summary:           summary,
		KeyFactors:        keyFactors,
		ReferencedSignals: signals,
		ReferencedRisks:   risks,
		EstimatedImpact:   ats.CompatibilityScore,
	}
}

func explainRecruiterStage(result *types.RecruiterResult) types.StageExplanation {
	var keyFactors, signals, risks []string

	if result.EvaluationScore >= strongThreshold {
		keyFactors = append(keyFactors, fmt.Sprintf("Strong recruiter evaluation score: %.1f/100", result.EvaluationScore))
		signals = append(signals, "High recruiter evaluation score")
	}
	if result.CareerProgressionScore >= 0.7 {
		keyFactors = append(keyFactors, "Positive career progression trajectory")
		signals = append(signals, "Strong career progression")
	}
	if result.JobStabilityScore >= 0.7 {
		keyFactors = append(keyFactors, "Good job stability indicators")
		signals = append(signals, "Strong job stability")
	}

	if result.EvaluationScore < moderateThreshold {
		keyFactors = append(keyFactors, fmt.Sprintf("Low recruiter evaluation score: %.1f/100", result.EvaluationScore))
		risks = append(risks, fmt.Sprintf("Low recruiter score: %.1f", result.EvaluationScore))
	}
	for _, flag := range result.RedFlags {
		keyFactors = append(keyFactors, fmt.Sprintf("Red flag: %s (%s severity)", flag.Type, flag.Severity))
		risks = append(risks, flag.Type)
	}
	if result.JobStabilityScore < 0.5 {
		keyFactors = append(keyFactors, "Job stability concerns detected")
		risks = append(risks, "Low job stability score")
	}
	if result.CareerProgressionScore < 0.5 {
		keyFactors = append(keyFactors, "Career progression concerns detected")
		risks = append(risks, "Low career progression score")
	}

	var summary string
	switch {
	case result.EvaluationScore >= strongThreshold:
		summary = fmt.Sprintf("Recruiter evaluation is strong (%.1f/100). Resume likely to advance to interview stage.", result.EvaluationScore)
	case result.EvaluationScore >= moderateThreshold:
		summary = fmt.Sprintf("Recruiter evaluation is moderate (%.1f/100). Some concerns may affect advancement.", result.EvaluationScore)
	default:
		summary = fmt.Sprintf("Recruiter evaluation is weak (%.1f/100). Significant concerns may prevent advancement.", result.EvaluationScore)
	}

	return types.StageExplanation{
		Summary:           summary,
		KeyFactors:        keyFactors,
		ReferencedSignals: signals,
		ReferencedRisks:   risks,
		EstimatedImpact:   result.EvaluationScore,
	}
}

func explainInterviewStage(result *types.InterviewReadinessResult) types.StageExplanation {
	var keyFactors, signals, risks []string

	if result.ReadinessScore >= strongThreshold {
		keyFactors = append(keyFactors, fmt.Sprintf("Strong interview readiness score: %.1f/100", result.ReadinessScore))
		signals = append(signals, "High interview readiness")
	}

	defensible := 0
	vague := 0
	for _, claim := range result.ResumeClaims {
		if claim.DefensibilityScore >= 0.7 {
			defensible++
		}
		if claim.DefensibilityScore < 0.5 {
			vague++
		}
	}
	if defensible > 0 {
		keyFactors = append(keyFactors, fmt.Sprintf("%d defensible resume claim(s) with strong evidence", defensible))
		signals = append(signals, "Defensible claims with evidence")
	}

	if result.ReadinessScore < moderateThreshold {
		keyFactors = append(keyFactors, fmt.Sprintf("Low interview readiness score: %.1f/100", result.ReadinessScore))
		risks = append(risks, fmt.Sprintf("Low interview readiness: %.1f", result.ReadinessScore))
	}
	for _, risk := range result.ConsistencyRisks {
		keyFactors = append(keyFactors, fmt.Sprintf("Consistency risk: %s (%s severity)", risk.RiskType, risk.Severity))
		risks = append(risks, risk.RiskType)
	}
	if vague > 0 {
		keyFactors = append(keyFactors, fmt.Sprintf("%d vague or low-defensibility claim(s) may be probed", vague))
		risks = append(risks, "Vague or low-defensibility claims")
	}

	var summary string
	switch {
	case result.ReadinessScore >= strongThreshold:
		summary = fmt.Sprintf("Interview readiness is strong (%.1f/100). Resume claims are defensible and interview-ready.", result.ReadinessScore)
	case result.ReadinessScore >= moderateThreshold:
		summary = fmt.Sprintf("Interview readiness is moderate (%.1f/100). Some claims may need clarification in interviews.", result.ReadinessScore)
	default:
		summary = fmt.Sprintf("Interview readiness is weak (%.1f/100). Multiple claims may be challenged in interviews.", result.ReadinessScore)
	}

	return types.StageExplanation{
		Summary:           summary,
		KeyFactors:        keyFactors,
		ReferencedSignals: signals,
		ReferencedRisks:   risks,
		EstimatedImpact:   result.ReadinessScore,
	}
}

func explainOverallStage(aggregate *types.AggregatedScore) types.StageExplanation {
	var keyFactors, signals, risks []string

	switch {
	case aggregate.OverallScore >= strongThreshold:
		keyFactors = append(keyFactors, fmt.Sprintf("Strong overall score: %.1f/100", aggregate.OverallScore))
		signals = append(signals, "High overall score")
	case aggregate.OverallScore >= moderateThreshold:
		keyFactors = append(keyFactors, fmt.Sprintf("Moderate overall score: %.1f/100", aggregate.OverallScore))
		signals = append(signals, "Moderate overall score")
	default:
		keyFactors = append(keyFactors, fmt.Sprintf("Weak overall score: %.1f/100", aggregate.OverallScore))
		risks = append(risks, fmt.Sprintf("Low overall score: %.1f", aggregate.OverallScore))
	}

	if aggregate.StageProbabilities.Offer > 0.5 {
		keyFactors = append(keyFactors, "Offer probability above 50%")
		signals = append(signals, "High offer probability")
	} else {
		keyFactors = append(keyFactors, "Offer probability below 50%")
		risks = append(risks, "Low offer probability")
	}

	topRisks := aggregate.RiskFactors
	if len(topRisks) > 3 {
		topRisks = topRisks[:3]
	}
	for _, risk := range topRisks {
		keyFactors = append(keyFactors, fmt.Sprintf("Risk: %s (%s severity, %.1f%% impact)", risk.Factor, risk.Severity, math.Abs(risk.Impact)*100))
		risks = append(risks, risk.Factor)
	}

	positives := aggregate.SignalSummary.PositiveSignals
	if len(positives) > 2 {
		positives = positives[:2]
	}
	for _, signal := range positives {
		keyFactors = append(keyFactors, fmt.Sprintf("Positive signal: %s", signal.Signal))
		signals = append(signals, signal.Signal)
	}

	var summary string
	switch {
	case aggregate.OverallScore >= strongThreshold:
		summary = fmt.Sprintf("Overall assessment is strong (%.1f/100). Candidate has good probability of receiving an offer.", aggregate.OverallScore)
	case aggregate.OverallScore >= moderateThreshold:
		summary = fmt.Sprintf("Overall assessment is moderate (%.1f/100). Some improvements could increase hiring probability.", aggregate.OverallScore)
	default:
		summary = fmt.Sprintf("Overall assessment is weak (%.1f/100). Significant improvements needed to increase hiring probability.", aggregate.OverallScore)
	}

	return types.StageExplanation{
		Summary:           summary,
		KeyFactors:        keyFactors,
		ReferencedSignals: signals,
		ReferencedRisks:   risks,
		EstimatedImpact:   aggregate.OverallScore,
	}
}

// counterfactuals projects the top critical/high recommendations onto the
// current outcome: what the score and offer probability would look like if
// the candidate applied each one. Recommendations without quantified
// deltas are skipped without replacement.
func counterfactuals(aggregate *types.AggregatedScore, recs []types.Recommendation) []types.Counterfactual {
	var top []types.Recommendation
	for _, rec := range recs {
		if rec.Priority != types.PriorityCritical && rec.Priority != types.PriorityHigh {
			continue
		}
		top = append(top, rec)
		if len(top) == 3 {
			break
		}
	}

	var scenarios []types.Counterfactual
	for _, rec := range top {
		if rec.ImpactScoreDelta == nil || *rec.ImpactScoreDelta == 0 ||
			rec.ImpactProbabilityDelta == nil || *rec.ImpactProbabilityDelta == 0 {
			continue
		}
		scoreDelta := *rec.ImpactScoreDelta
		probDelta := *rec.ImpactProbabilityDelta

		stageImpacts := map[string]float64{}
		switch rec.StageAffected {
		case types.StageLabelATS, types.StageLabelRecruiter, types.StageLabelInterview, types.StageLabelOverall:
			stageImpacts[rec.StageAffected] = scoreDelta
		}

		referenced := []string{}
		if rec.ReferencedRisk != "" {
			referenced = append(referenced, rec.ReferencedRisk)
		}

		scenarios = append(scenarios, types.Counterfactual{
			Scenario:          fmt.Sprintf("If you %s", strings.ToLower(rec.Action)),
			ChangeDescription: rec.Action,
			Impact: types.CounterfactualImpact{
				ScoreDelta:       scoreDelta,
				ProbabilityDelta: probDelta,
				StageImpacts:     stageImpacts,
			},
			ExpectedScore:       math.Min(100.0, aggregate.OverallScore+scoreDelta),
			ExpectedProbability: math.Min(1.0, aggregate.StageProbabilities.Offer+probDelta),
			ReferencedFactors:   referenced,
		})
	}

	return scenarios
}
