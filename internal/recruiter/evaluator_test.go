package recruiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/features"
	"github.com/hirelens/hirelens/internal/types"
)

func twoJobResume() *types.ParsedResume {
	return &types.ParsedResume{
		Email: "dana@example.com",
		Phone: "555",
		WorkExperience: []types.JobRecord{
			{
				Title:       "Software Engineer",
				StartDate:   "2019-01",
				EndDate:     "2021-06",
				Description: "Built billing pipeline processing 50000 invoices monthly",
			},
			{
				Title:       "Senior Software Engineer",
				StartDate:   "2021-07",
				EndDate:     "2024-01",
				Description: "Led team of 4 engineers and cut infra spend by 30%",
			},
		},
		Skills: []string{"Go"},
	}
}

func evaluateWith(t *testing.T, resume *types.ParsedResume) types.RecruiterResult {
	t.Helper()
	vector := features.Extract(resume, &types.ParsedJobDescription{})
	return Evaluate(resume, &vector, "generic")
}

func TestEvaluate_UpwardTrajectory(t *testing.T) {
	result := evaluateWith(t, twoJobResume())

	assert.Equal(t, types.TrajectoryUpward, result.CareerProgression.Trajectory)
	require.NotNil(t, result.CareerProgression.Promotions)
	assert.Equal(t, 1, *result.CareerProgression.Promotions)
	assert.True(t, result.CareerProgression.ResponsibilityIncrease)

	// 0.5 base + 0.3 upward + 0.05 promotions + 0.1 responsibility.
	assert.InDelta(t, 0.95, result.CareerProgressionScore, 0.001)

	// Short inline descriptions trip the short-resume flag; the digit
	// heuristic keeps the no-achievements flag away.
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, FlagGenericResume, result.RedFlags[0].Type)
	assert.InDelta(t, 95.0, result.EvaluationScore, 0.001)
}

func TestEvaluate_LateralTrajectory(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience[0].Title = "Engineer"
	resume.WorkExperience[1].Title = "Engineer"

	result := evaluateWith(t, resume)

	assert.Equal(t, types.TrajectoryLateral, result.CareerProgression.Trajectory)
	// 0.5 base + 0.0 lateral + 0.05 promotions + 0.1 responsibility.
	assert.InDelta(t, 0.65, result.CareerProgressionScore, 0.001)
}

func TestEvaluate_MixedTrajectory(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience = append(resume.WorkExperience, types.JobRecord{
		Title:       "Software Engineer",
		Description: "Maintained internal tools used by 200 employees",
	})

	result := evaluateWith(t, resume)

	assert.Equal(t, types.TrajectoryMixed, result.CareerProgression.Trajectory)
	// 0.5 base + 0.1 mixed + 0.1 promotions (2 x 0.05) + 0.1 responsibility.
	assert.InDelta(t, 0.8, result.CareerProgressionScore, 0.001)
}

func TestEvaluate_PositionAliasUsedForTitles(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience[0].Title = ""
	resume.WorkExperience[0].Position = "Backend Engineer"

	result := evaluateWith(t, resume)

	assert.Equal(t, []string{"Backend Engineer", "Senior Software Engineer"}, result.CareerProgression.TitleProgression)
	assert.Equal(t, types.TrajectoryUpward, result.CareerProgression.Trajectory)
}

func TestEvaluate_SingleJobInsufficientData(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience = resume.WorkExperience[:1]

	result := evaluateWith(t, resume)

	assert.Equal(t, types.TrajectoryInsufficientData, result.CareerProgression.Trajectory)
	assert.Nil(t, result.CareerProgression.Promotions)
	assert.InDelta(t, 0.5, result.CareerProgressionScore, 0.001)
}

func TestEvaluate_EmptyResume(t *testing.T) {
	result := evaluateWith(t, &types.ParsedResume{})

	// Zero average tenure trips the job-hopping penalty at high severity,
	// and the empty resume trips both generic-resume checks.
	assert.InDelta(t, 0.6, result.JobStabilityScore, 0.001)
	require.Len(t, result.RedFlags, 3)
	assert.Equal(t, FlagJobHopping, result.RedFlags[0].Type)
	assert.Equal(t, types.SeverityHigh, result.RedFlags[0].Severity)
	assert.Equal(t, FlagGenericResume, result.RedFlags[1].Type)
	assert.Equal(t, FlagGenericResume, result.RedFlags[2].Type)

	// 100 - 10 (high) - 5 - 5 (medium flags); progression and stability
	// both sit at or above the deduction thresholds.
	assert.InDelta(t, 80.0, result.EvaluationScore, 0.001)
}

func TestEvaluate_StableTenureAssumption(t *testing.T) {
	result := evaluateWith(t, twoJobResume())

	assert.InDelta(t, 24.0, result.JobStability.AvgTenureMonths, 0.001)
	assert.Zero(t, result.JobStability.ShortTenureCount)
	assert.Empty(t, result.JobStability.EmploymentGaps)
	assert.InDelta(t, 1.0, result.JobStabilityScore, 0.001)
}

func TestJobStabilityScore_LowTenurePenalty(t *testing.T) {
	result := &types.RecruiterResult{}
	analysis := types.JobStabilityAnalysis{AvgTenureMonths: 6.0}

	score := jobStabilityScore(analysis, result)

	assert.InDelta(t, 0.8, score, 0.001)
	require.Len(t, result.RedFlags, 1)
	flag := result.RedFlags[0]
	assert.Equal(t, FlagJobHopping, flag.Type)
	assert.Equal(t, types.SeverityMedium, flag.Severity)
	assert.Equal(t, "Average job tenure is 6.0 months, indicating potential job hopping pattern.", flag.Description)
	assert.Equal(t, "Average tenure: 6.0 months", flag.Evidence)
}

func TestJobStabilityScore_ShortTenureJobs(t *testing.T) {
	result := &types.RecruiterResult{}
	analysis := types.JobStabilityAnalysis{AvgTenureMonths: 24.0, ShortTenureCount: 2}

	score := jobStabilityScore(analysis, result)

	assert.InDelta(t, 0.8, score, 0.001)
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, types.SeverityHigh, result.RedFlags[0].Severity)
	assert.Equal(t, "2 job(s) with tenure less than 12 months.", result.RedFlags[0].Description)
}

func TestJobStabilityScore_EmploymentGaps(t *testing.T) {
	result := &types.RecruiterResult{}
	analysis := types.JobStabilityAnalysis{
		AvgTenureMonths: 24.0,
		EmploymentGaps: []types.EmploymentGap{
			{StartDate: "2020-01", EndDate: "2020-11", DurationMonths: 10.0},
		},
	}

	score := jobStabilityScore(analysis, result)

	// Penalty (10 - 6) / 12 exceeds the 0.3 cap.
	assert.InDelta(t, 0.7, score, 0.001)
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, FlagEmploymentGap, result.RedFlags[0].Type)
	assert.Equal(t, types.SeverityMedium, result.RedFlags[0].Severity)
	assert.Equal(t, "Employment gap(s) totaling 10.0 months detected.", result.RedFlags[0].Description)

	// Gaps past a year escalate to high severity.
	result = &types.RecruiterResult{}
	analysis.EmploymentGaps[0].DurationMonths = 14.0
	jobStabilityScore(analysis, result)
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, types.SeverityHigh, result.RedFlags[0].Severity)
}

func TestEvaluate_NoMetricsFlagged(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience[0].Description = "Worked on the billing pipeline"
	resume.WorkExperience[1].Description = "Helped with infrastructure projects"

	result := evaluateWith(t, resume)

	var genericCount int
	for _, flag := range result.RedFlags {
		if flag.Type == FlagGenericResume {
			genericCount++
		}
	}
	// One for the short resume, one for the missing metrics.
	assert.Equal(t, 2, genericCount)
}

func TestEvaluate_AchievementsListCountsAsMetrics(t *testing.T) {
	resume := twoJobResume()
	resume.WorkExperience[0].Description = "Worked on the billing pipeline"
	resume.WorkExperience[1].Description = "Helped with infrastructure projects"
	resume.WorkExperience[0].Achievements = []string{"Shipped the v2 API"}

	result := evaluateWith(t, resume)

	for _, flag := range result.RedFlags {
		assert.NotEqual(t, "No achievements with metrics detected", flag.Evidence)
	}
}

func TestEvaluate_PersonaRecorded(t *testing.T) {
	vector := features.Extract(twoJobResume(), &types.ParsedJobDescription{})
	result := Evaluate(twoJobResume(), &vector, "technical")
	assert.Equal(t, "technical", result.Persona)
}

func TestEvaluate_Idempotent(t *testing.T) {
	resume := twoJobResume()
	vector := features.Extract(resume, &types.ParsedJobDescription{})

	first := Evaluate(resume, &vector, "generic")
	second := Evaluate(resume, &vector, "generic")
	assert.Equal(t, first, second)
}
