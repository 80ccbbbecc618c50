package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirelens/hirelens/internal/types"
)

func completedAnalysis() *types.AnalysisContext {
	ac := types.NewAnalysisContext("resume", "job", types.DefaultAnalyzeOptions())
	for _, stage := range types.StageOrder {
		ac.StageStatuses[stage] = types.StageSuccess
		ac.StageTimings[stage] = 0.002
	}
	ac.ATS = &types.ATSResult{CompatibilityScore: 72.5}
	ac.Recruiter = &types.RecruiterResult{EvaluationScore: 61.0}
	ac.Interview = &types.InterviewReadinessResult{ReadinessScore: 55.5}
	ac.Score = &types.AggregatedScore{
		OverallScore: 38.5,
		StageProbabilities: types.StageProbabilities{
			ATSPass:       0.8,
			RecruiterPass: 0.65,
			InterviewPass: 0.55,
			Offer:         0.29,
		},
	}
	return ac
}

func TestPrintAnalysisSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysisSummary(completedAnalysis())
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS SUMMARY")
	assert.Contains(t, output, "Status:   completed")
	assert.Contains(t, output, "38.5 / 100")
	assert.Contains(t, output, "72.5")
	assert.Contains(t, output, "Hiring Funnel:")
	assert.Contains(t, output, "ATS screen")
	assert.Contains(t, output, "80%")
	assert.Contains(t, output, "Offer")
	assert.Contains(t, output, "29%")
	assert.Contains(t, output, "█")
}

func TestPrintAnalysisSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysisSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysisSummary_MissingResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ac := types.NewAnalysisContext("resume", "job", types.DefaultAnalyzeOptions())
	p.PrintAnalysisSummary(ac)
	output := buf.String()

	assert.Contains(t, output, "completed_with_errors")
	assert.NotContains(t, output, "Overall Score")
	assert.NotContains(t, output, "Hiring Funnel")
}

func TestPrintStageTimings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStageTimings(completedAnalysis())
	output := buf.String()

	assert.Contains(t, output, "STAGE TIMINGS")
	assert.Contains(t, output, "parsing")
	assert.Contains(t, output, "explainability")
	assert.Contains(t, output, "0.002s")
	assert.Contains(t, output, "total")
	assert.Contains(t, output, "✓")
	assert.NotContains(t, output, "✗")
}

func TestPrintStageTimings_MarksFailedStage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ac := completedAnalysis()
	ac.StageStatuses[types.StageScoring] = types.StageFailed

	p.PrintStageTimings(ac)

	assert.Contains(t, buf.String(), "✗ scoring")
}

func TestPrintStageTimings_NothingRan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ac := types.NewAnalysisContext("resume", "job", types.DefaultAnalyzeOptions())
	p.PrintStageTimings(ac)

	assert.Empty(t, buf.String())
}

func TestPrintTopRisks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := &types.AggregatedScore{
		RiskFactors: []types.RiskFactor{
			{
				Factor:      "missing_required_skill",
				Stage:       types.StageLabelATS,
				Impact:      -0.18,
				Severity:    types.SeverityHigh,
				Description: "Required skill kubernetes is absent",
			},
			{
				Factor:      "short_tenure_pattern",
				Stage:       types.StageLabelRecruiter,
				Impact:      -0.08,
				Severity:    types.SeverityMedium,
				Description: "Two recent roles lasted under a year",
			},
		},
	}

	p.PrintTopRisks(score)
	output := buf.String()

	assert.Contains(t, output, "TOP RISK FACTORS")
	assert.Contains(t, output, "Found 2 risk factors")
	assert.Contains(t, output, "missing_required_skill")
	assert.Contains(t, output, "high severity, impact -0.18 (ats)")
	assert.Contains(t, output, "short_tenure_pattern")
}

func TestPrintTopRisks_Overflow(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := &types.AggregatedScore{}
	for i := 0; i < 7; i++ {
		score.RiskFactors = append(score.RiskFactors, types.RiskFactor{
			Factor:   fmt.Sprintf("factor_%d", i),
			Stage:    types.StageLabelATS,
			Severity: types.SeverityLow,
		})
	}

	p.PrintTopRisks(score)
	output := buf.String()

	assert.Contains(t, output, "factor_0")
	assert.Contains(t, output, "factor_4")
	assert.NotContains(t, output, "factor_5")
	assert.Contains(t, output, "... and 2 more risk factors")
}

func TestPrintTopRisks_NoRisks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTopRisks(&types.AggregatedScore{})

	assert.Contains(t, buf.String(), "NO RISK FACTORS IDENTIFIED")
}

func TestPrintTopRisks_NilScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTopRisks(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	artifact := &types.ExplainabilityArtifact{
		Recommendations: []types.Recommendation{
			{
				Priority: types.PriorityCritical,
				Action:   "Add kubernetes to the skills section",
				Impact:   "Could raise ATS compatibility by 15 points",
			},
			{
				Priority: types.PriorityMedium,
				Action:   "Quantify outcomes in the most recent role",
			},
		},
	}

	p.PrintRecommendations(artifact)
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "#1 [critical] Add kubernetes to the skills section")
	assert.Contains(t, output, "Could raise ATS compatibility by 15 points")
	assert.Contains(t, output, "#2 [medium]")
}

func TestPrintRecommendations_Overflow(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	artifact := &types.ExplainabilityArtifact{}
	for i := 0; i < 8; i++ {
		artifact.Recommendations = append(artifact.Recommendations, types.Recommendation{
			Priority: types.PriorityLow,
			Action:   fmt.Sprintf("action %d", i),
		})
	}

	p.PrintRecommendations(artifact)
	output := buf.String()

	assert.Contains(t, output, "action 0")
	assert.Contains(t, output, "action 4")
	assert.NotContains(t, output, "action 5")
	assert.Contains(t, output, "... and 3 more recommendations")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)
	p.PrintRecommendations(&types.ExplainabilityArtifact{})

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	artifact := &types.ExplainabilityArtifact{
		Recommendations: []types.Recommendation{
			{
				Priority: types.PriorityHigh,
				Action:   "Rework the professional summary so that it mirrors the language of the job posting exactly",
			},
		},
	}

	p.PrintRecommendations(artifact)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
