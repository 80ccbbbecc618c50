package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/types"
)

func evaluateResume(resume *types.ParsedResume) types.InterviewReadinessResult {
	return Evaluate(resume, &types.FeatureVector{})
}

func TestEvaluate_MetricClaimIsDeep(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Cut infrastructure costs by 30%"}},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	claim := result.ResumeClaims[0]
	assert.Equal(t, types.ClaimTypeAchievement, claim.Type)
	assert.InDelta(t, 0.9, claim.DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthDeep, claim.DepthIndicator)
	assert.Equal(t, types.ClaimRiskNone, claim.ConsistencyRisk)
	assert.Contains(t, claim.SupportingEvidence, "30%")

	assert.Empty(t, result.PredictedQuestions)
	assert.InDelta(t, 100.0, result.ReadinessScore, 0.001)
}

func TestEvaluate_ActionVerbClaimIsModerate(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Designed the authentication microservice platform"}},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	claim := result.ResumeClaims[0]
	assert.InDelta(t, 0.7, claim.DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthModerate, claim.DepthIndicator)
	assert.Equal(t, types.ClaimRiskNone, claim.ConsistencyRisk)
	assert.Empty(t, claim.SupportingEvidence)
}

func TestEvaluate_VagueClaimIsSurface(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Helped with various internal projects over time"}},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	claim := result.ResumeClaims[0]
	assert.InDelta(t, 0.3, claim.DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthSurface, claim.DepthIndicator)
	assert.Equal(t, types.ClaimRiskHigh, claim.ConsistencyRisk)
}

func TestEvaluate_ShortClaimIsSurface(t *testing.T) {
	// No metrics, no action verb, no vague marker, under five words.
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"General platform duties"}},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	assert.InDelta(t, 0.3, result.ResumeClaims[0].DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthSurface, result.ResumeClaims[0].DepthIndicator)
}

func TestEvaluate_PlainClaimDefaultsToModerate(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Ownership of the data warehouse area"}},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	claim := result.ResumeClaims[0]
	assert.InDelta(t, 0.5, claim.DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthModerate, claim.DepthIndicator)
	assert.Equal(t, types.ClaimRiskMedium, claim.ConsistencyRisk)
}

func TestEvaluate_AchievementsPreferredOverDescription(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{
				Description:  "• Built the payments API used by 12 teams\n• Maintained CI pipelines",
				Achievements: []string{"Cut release time by 3 days"},
			},
		},
	})

	require.Len(t, result.ResumeClaims, 1)
	assert.Equal(t, "Cut release time by 3 days", result.ResumeClaims[0].Text)
}

func TestEvaluate_DescriptionSplitsIntoBullets(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Description: "• Built the payments API used by 12 teams\n• Implemented the retry queue"},
		},
	})

	require.Len(t, result.ResumeClaims, 2)
	assert.Equal(t, "Built the payments API used by 12 teams", result.ResumeClaims[0].Text)
	assert.Equal(t, "Implemented the retry queue", result.ResumeClaims[1].Text)
}

func TestEvaluate_SkillFallbackClaims(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		Skills: []string{"Go", "Python", "SQL", "AWS", "Docker", "Kubernetes"},
	})

	require.Len(t, result.ResumeClaims, 5)
	first := result.ResumeClaims[0]
	assert.Equal(t, "Proficient in Go", first.Text)
	assert.Equal(t, types.ClaimTypeSkill, first.Type)
	assert.InDelta(t, 0.5, first.DefensibilityScore, 0.001)
	assert.Equal(t, types.DepthSurface, first.DepthIndicator)
	assert.Equal(t, types.ClaimRiskMedium, first.ConsistencyRisk)

	// Each medium-risk claim draws a deep dive and a measurement question;
	// five claims would produce ten, which is exactly the cap.
	assert.Len(t, result.PredictedQuestions, 10)
}

func TestEvaluate_QuestionsForRiskyClaim(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Helped with the inventory reconciliation subsystem for warehouse operations"}},
		},
	})

	require.Len(t, result.PredictedQuestions, 3)

	deepDive := result.PredictedQuestions[0]
	assert.Equal(t, "Can you explain how you achieved: 'Helped with the inventory reconciliation subsystem...'?", deepDive.Question)
	assert.InDelta(t, 0.8, deepDive.Likelihood, 0.001)
	assert.Equal(t, QuestionDeepDive, deepDive.Type)
	assert.Equal(t, "Helped with the inventory reconciliation subsystem for warehouse operations", deepDive.RelatedClaim)
	assert.Equal(t, "Claim has high consistency risk and may need clarification.", deepDive.Reasoning)

	challenge := result.PredictedQuestions[1]
	assert.Equal(t, "What challenges did you face while working on this?", challenge.Question)
	assert.InDelta(t, 0.7, challenge.Likelihood, 0.001)
	assert.Equal(t, QuestionBehavioral, challenge.Type)

	measurement := result.PredictedQuestions[2]
	assert.Equal(t, "How did you measure the success of this achievement?", measurement.Question)
	assert.Equal(t, QuestionSituational, measurement.Type)
}

func TestEvaluate_MediumRiskClaimLikelihood(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Ownership of the data warehouse area"}},
		},
	})

	require.NotEmpty(t, result.PredictedQuestions)
	assert.InDelta(t, 0.6, result.PredictedQuestions[0].Likelihood, 0.001)
	assert.Equal(t, "Claim has medium consistency risk and may need clarification.", result.PredictedQuestions[0].Reasoning)
}

func TestEvaluate_UnusedSkillsRisk(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Description: "Built services in Go"},
		},
		Skills: []string{"Go", "COBOL", "Fortran", "Ada", "Pascal"},
	})

	require.NotEmpty(t, result.ConsistencyRisks)
	risk := result.ConsistencyRisks[0]
	assert.Equal(t, RiskSkillDepthMismatch, risk.RiskType)
	assert.Equal(t, types.SeverityMedium, risk.Severity)
	assert.Equal(t, "Skills listed but not mentioned in work experience: cobol, fortran, ada", risk.Description)
	assert.Equal(t, "Be prepared to explain how you used these skills in your work.", risk.MitigationSuggestion)
}

func TestEvaluate_VagueClaimRisk(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Helped with various internal projects over time"}},
		},
	})

	require.Len(t, result.ConsistencyRisks, 1)
	risk := result.ConsistencyRisks[0]
	assert.Equal(t, RiskVagueClaim, risk.RiskType)
	assert.Equal(t, types.SeverityHigh, risk.Severity)
	assert.Equal(t, "Claim lacks specific evidence: 'Helped with various internal projects over time...'", risk.Description)

	// One high claim (-8 -5) plus one high risk (-10).
	assert.InDelta(t, 77.0, result.ReadinessScore, 0.001)
}

func TestEvaluate_OverstatedAchievementRisk(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Made a significant improvement to reliability for the team"}},
		},
	})

	require.Len(t, result.ConsistencyRisks, 1)
	risk := result.ConsistencyRisks[0]
	assert.Equal(t, RiskOverstatedAchievement, risk.RiskType)
	assert.Equal(t, types.SeverityMedium, risk.Severity)
	assert.Equal(t, "Broad impact statement without metrics: 'Made a significant improvement to reliability for the team...'", risk.Description)
	assert.Equal(t, "Be ready to quantify the impact with specific numbers.", risk.MitigationSuggestion)
}

func TestEvaluate_QuantifiedBroadClaimNotOverstated(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{Achievements: []string{"Made a significant improvement, cutting error rates by 40%"}},
		},
	})

	for _, risk := range result.ConsistencyRisks {
		assert.NotEqual(t, RiskOverstatedAchievement, risk.RiskType)
	}
}

func TestEvaluate_EmptyResume(t *testing.T) {
	result := evaluateResume(&types.ParsedResume{})

	assert.Empty(t, result.ResumeClaims)
	assert.Empty(t, result.PredictedQuestions)
	assert.Empty(t, result.ConsistencyRisks)
	assert.InDelta(t, 100.0, result.ReadinessScore, 0.001)
}

func TestEvaluate_Deterministic(t *testing.T) {
	resume := &types.ParsedResume{
		WorkExperience: []types.JobRecord{
			{
				Description: "• Helped with tooling\n• Reduced build times by 60%",
			},
		},
		Skills: []string{"Go", "Terraform"},
	}

	first := evaluateResume(resume)
	second := evaluateResume(resume)
	assert.Equal(t, first, second)
}
