package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/types"
)

func sampleRows() []Row {
	return []Row{
		{
			Input:             "pair-001",
			ResumeSource:      "resumes/jane.txt",
			JobSource:         "jobs/backend.txt",
			Status:            types.AnalysisCompleted,
			OverallScore:      42.5,
			ATSScore:          72.5,
			RecruiterScore:    61.25,
			InterviewScore:    58.5,
			ATSPass:           0.8,
			RecruiterPass:     0.75,
			InterviewPass:     0.7,
			OfferProbability:  0.42,
			TopRecommendation: "Add kubernetes to the skills section",
			Risks: []Risk{
				{
					Factor:      "missing_required_skill",
					Stage:       types.StageATSSimulation,
					Severity:    "high",
					Impact:      -0.18,
					Description: "Required skill kubernetes is absent from the resume",
				},
				{
					Factor:      "short_tenure_pattern",
					Stage:       types.StageRecruiterEval,
					Severity:    "medium",
					Impact:      -0.08,
					Description: "Two of the last three roles lasted under a year",
				},
			},
		},
		{
			Input:             "pair-002",
			ResumeSource:      "resumes/alex.txt",
			JobSource:         "jobs/platform.txt",
			Status:            types.AnalysisCompletedWithErrors,
			OverallScore:      18.75,
			ATSScore:          44.5,
			TopRecommendation: "Close the missing cloud experience before applying",
			Risks: []Risk{
				{
					Factor:      "low_ats_compatibility",
					Stage:       types.StageATSSimulation,
					Severity:    "critical",
					Impact:      -0.3,
					Description: "Compatibility score below the auto-reject threshold",
				},
			},
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, sampleRows()))

	summary, risks, err := Read(path)
	require.NoError(t, err)

	require.Len(t, summary, 3)
	assert.Equal(t, summaryHeader, summary[0])
	assert.Equal(t, "pair-001", summary[1][0])
	assert.Equal(t, "resumes/jane.txt", summary[1][1])
	assert.Equal(t, "completed", summary[1][3])
	assert.Equal(t, "42.5", summary[1][4])
	assert.Equal(t, "72.5", summary[1][5])
	assert.Equal(t, "61.25", summary[1][6])
	assert.Equal(t, "0.8", summary[1][8])
	assert.Equal(t, "0.42", summary[1][11])
	assert.Equal(t, "Add kubernetes to the skills section", summary[1][12])
	assert.Equal(t, "pair-002", summary[2][0])
	assert.Equal(t, "completed_with_errors", summary[2][3])

	require.Len(t, risks, 4)
	assert.Equal(t, risksHeader, risks[0])
	assert.Equal(t, "pair-001", risks[1][0])
	assert.Equal(t, "missing_required_skill", risks[1][1])
	assert.Equal(t, "ats_simulation", risks[1][2])
	assert.Equal(t, "high", risks[1][3])
	assert.Equal(t, "-0.18", risks[1][4])
	assert.Equal(t, "short_tenure_pattern", risks[2][1])
	assert.Equal(t, "pair-002", risks[3][0])
	assert.Equal(t, "critical", risks[3][3])
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "report.xlsx")
	require.NoError(t, Write(path, sampleRows()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWrite_NoRowsStillProducesHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, nil))

	summary, risks, err := Read(path)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, summaryHeader, summary[0])
	require.Len(t, risks, 1)
	assert.Equal(t, risksHeader, risks[0])
}

func TestRead_MissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open report")
}

func TestFromAnalysis_MapsScoresAndRisks(t *testing.T) {
	ac := types.NewAnalysisContext("resume text", "job text", types.DefaultAnalyzeOptions())
	for _, stage := range types.StageOrder {
		ac.StageStatuses[stage] = types.StageSuccess
	}
	ac.ATS = &types.ATSResult{CompatibilityScore: 71.5}
	ac.Recruiter = &types.RecruiterResult{EvaluationScore: 64}
	ac.Interview = &types.InterviewReadinessResult{ReadinessScore: 58.5}
	ac.Score = &types.AggregatedScore{
		OverallScore: 39.25,
		StageProbabilities: types.StageProbabilities{
			ATSPass:       0.78,
			RecruiterPass: 0.66,
			InterviewPass: 0.59,
			Offer:         0.3,
		},
		RiskFactors: []types.RiskFactor{
			{
				Factor:      "missing_required_skill",
				Stage:       types.StageATSSimulation,
				Impact:      -0.18,
				Severity:    types.SeverityHigh,
				Description: "Required skill kubernetes is absent from the resume",
			},
		},
	}
	ac.Explanation = &types.ExplainabilityArtifact{
		Recommendations: []types.Recommendation{
			{Action: "Add kubernetes to the skills section"},
			{Action: "Quantify outcomes in the two most recent roles"},
		},
	}

	row := FromAnalysis("pair-001", "resumes/jane.txt", "jobs/backend.txt", ac)

	assert.Equal(t, "pair-001", row.Input)
	assert.Equal(t, "resumes/jane.txt", row.ResumeSource)
	assert.Equal(t, "jobs/backend.txt", row.JobSource)
	assert.Equal(t, types.AnalysisCompleted, row.Status)
	assert.Equal(t, 39.25, row.OverallScore)
	assert.Equal(t, 71.5, row.ATSScore)
	assert.Equal(t, 64.0, row.RecruiterScore)
	assert.Equal(t, 58.5, row.InterviewScore)
	assert.Equal(t, 0.78, row.ATSPass)
	assert.Equal(t, 0.66, row.RecruiterPass)
	assert.Equal(t, 0.59, row.InterviewPass)
	assert.Equal(t, 0.3, row.OfferProbability)
	assert.Equal(t, "Add kubernetes to the skills section", row.TopRecommendation)
	require.Len(t, row.Risks, 1)
	assert.Equal(t, "missing_required_skill", row.Risks[0].Factor)
	assert.Equal(t, "ats_simulation", row.Risks[0].Stage)
	assert.Equal(t, "high", row.Risks[0].Severity)
	assert.Equal(t, -0.18, row.Risks[0].Impact)
}

func TestFromAnalysis_ToleratesMissingResults(t *testing.T) {
	ac := types.NewAnalysisContext("resume text", "job text", types.DefaultAnalyzeOptions())
	ac.StageStatuses[types.StageParsing] = types.StageFailed
	ac.StageErrors[types.StageParsing] = "parsing failed: empty resume text"

	row := FromAnalysis("pair-003", "resumes/empty.txt", "jobs/backend.txt", ac)

	assert.Equal(t, types.AnalysisCompletedWithErrors, row.Status)
	assert.Zero(t, row.OverallScore)
	assert.Zero(t, row.ATSScore)
	assert.Zero(t, row.RecruiterScore)
	assert.Zero(t, row.InterviewScore)
	assert.Zero(t, row.OfferProbability)
	assert.Empty(t, row.TopRecommendation)
	assert.Empty(t, row.Risks)
}
