// Package scoring combines the per-stage results into stage probabilities,
// an overall score, and ranked risk factors. Signals compound across
// stages: a weak ATS screen drags the recruiter stage down, interview
// risks dominate the offer, and risks pile up across the whole funnel.
package scoring

import (
	"fmt"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// ATS influence thresholds and effects on the recruiter stage.
const (
	strongATSScore  = 80.0
	weakATSScore    = 50.0
	strongATSEffect = 0.05
	weakATSEffect   = -0.15
	mediumATSEffect = -0.05
)

// Interview dominance effects on the offer stage.
const (
	criticalRiskEffect  = -0.40
	multiHighRiskEffect = -0.25
	oneHighRiskEffect   = -0.15
	lowReadinessEffect  = -0.20
	highReadinessEffect = 0.10
	lowReadinessScore   = 50.0
	highReadinessScore  = 80.0
)

// Cross-stage risk compounding effects.
const (
	criticalATSScore     = 40.0
	criticalRisksEffect  = -0.35
	multiMediumEffect    = -0.20
	multiHighRisksEffect = -0.25
)

// ComputeSignals applies the compounding rules and returns the signals
// split into positive and negative groups.
func ComputeSignals(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) types.SignalSummary {
	summary := types.SignalSummary{}

	atsSignal := atsInfluence(ats)
	if atsSignal.CompoundEffect > 0 {
		summary.PositiveSignals = append(summary.PositiveSignals, atsSignal)
	} else {
		summary.NegativeSignals = append(summary.NegativeSignals, atsSignal)
	}

	if interviewSignal, ok := interviewDominance(interview); ok {
		if interviewSignal.CompoundEffect < 0 {
			summary.NegativeSignals = append(summary.NegativeSignals, interviewSignal)
		} else {
			summary.PositiveSignals = append(summary.PositiveSignals, interviewSignal)
		}
	}

	summary.NegativeSignals = append(summary.NegativeSignals, riskCompounding(ats, recruiter, interview)...)

	return summary
}

// atsInfluence maps the ATS outcome onto the recruiter stage. There is
// always exactly one ATS signal.
func atsInfluence(ats *types.ATSResult) types.CompoundingSignal {
	signal := types.CompoundingSignal{
		StagesAffected: []string{types.StageLabelATS, types.StageLabelRecruiter},
	}

	switch {
	case ats.CompatibilityScore >= strongATSScore:
		signal.Signal = "Strong ATS compatibility"
		signal.CompoundEffect = strongATSEffect
	case ats.CompatibilityScore < weakATSScore:
		signal.Signal = "Weak ATS compatibility"
		signal.CompoundEffect = weakATSEffect
	default:
		signal.Signal = "Moderate ATS compatibility"
		signal.CompoundEffect = mediumATSEffect
	}

	return signal
}

// interviewDominance maps interview consistency risks and readiness onto
// the offer stage. The first matching rule wins; middling readiness with
// no high risks produces no signal.
func interviewDominance(interview *types.InterviewReadinessResult) (types.CompoundingSignal, bool) {
	highCount := 0
	criticalCount := 0
	for _, risk := range interview.ConsistencyRisks {
		switch risk.Severity {
		case types.SeverityHigh:
			highCount++
		case types.SeverityCritical:
			criticalCount++
		}
	}

	signal := types.CompoundingSignal{
		StagesAffected: []string{types.StageLabelInterview, types.StageLabelOffer},
	}

	switch {
	case criticalCount > 0:
		signal.Signal = "Critical interview consistency risks detected"
		signal.CompoundEffect = criticalRiskEffect
	case highCount >= 2:
		signal.Signal = "Multiple high-severity interview consistency risks"
		signal.CompoundEffect = multiHighRiskEffect
	case highCount == 1:
		signal.Signal = "High-severity interview consistency risk detected"
		signal.CompoundEffect = oneHighRiskEffect
	case interview.ReadinessScore < lowReadinessScore:
		signal.Signal = "Low interview readiness score"
		signal.CompoundEffect = lowReadinessEffect
	case interview.ReadinessScore >= highReadinessScore:
		signal.Signal = "High interview readiness score"
		signal.CompoundEffect = highReadinessEffect
	default:
		return types.CompoundingSignal{}, false
	}

	return signal, true
}

// riskCompounding collects risks across all stages and emits a signal when
// they pile up: any critical risk, three or more medium interview risks,
// or two or more high risks anywhere.
func riskCompounding(ats *types.ATSResult, recruiter *types.RecruiterResult, interview *types.InterviewReadinessResult) []types.CompoundingSignal {
	var critical, high, medium []string

	if ats.CompatibilityScore < criticalATSScore {
		critical = append(critical, "ATS compatibility score below 40")
	}

	for _, flag := range recruiter.RedFlags {
		switch flag.Severity {
		case types.SeverityCritical:
			critical = append(critical, fmt.Sprintf("Recruiter red flag: %s", flag.Type))
		case types.SeverityHigh:
			high = append(high, fmt.Sprintf("Recruiter red flag: %s", flag.Type))
		}
	}

	for _, risk := range interview.ConsistencyRisks {
		switch risk.Severity {
		case types.SeverityCritical:
			critical = append(critical, fmt.Sprintf("Interview risk: %s", risk.RiskType))
		case types.SeverityHigh:
			high = append(high, fmt.Sprintf("Interview risk: %s", risk.RiskType))
		case types.SeverityMedium:
			medium = append(medium, fmt.Sprintf("Interview risk: %s", risk.RiskType))
		}
	}

	var signals []types.CompoundingSignal

	if len(critical) > 0 {
		shown := critical
		if len(shown) > 2 {
			shown = shown[:2]
		}
		signals = append(signals, types.CompoundingSignal{
			Signal:         fmt.Sprintf("Critical risks detected: %s", strings.Join(shown, ", ")),
			StagesAffected: []string{types.StageLabelATS, types.StageLabelRecruiter, types.StageLabelInterview, types.StageLabelOffer},
			CompoundEffect: criticalRisksEffect,
		})
	}

	if len(medium) >= 3 {
		signals = append(signals, types.CompoundingSignal{
			Signal:         fmt.Sprintf("Multiple medium risks compound to high overall risk (%d risks)", len(medium)),
			StagesAffected: []string{types.StageLabelRecruiter, types.StageLabelInterview, types.StageLabelOffer},
			CompoundEffect: multiMediumEffect,
		})
	}

	if len(high) >= 2 {
		signals = append(signals, types.CompoundingSignal{
			Signal:         fmt.Sprintf("Multiple high-severity risks compound (%d risks)", len(high)),
			StagesAffected: []string{types.StageLabelRecruiter, types.StageLabelInterview, types.StageLabelOffer},
			CompoundEffect: multiHighRisksEffect,
		})
	}

	return signals
}
