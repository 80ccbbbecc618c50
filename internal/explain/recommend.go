// Package explain turns evaluation results into human-readable artifacts:
// stage explanations, ranked recommendations, and counterfactual what-if
// scenarios. Every statement is backed by an actual signal or risk from
// the evaluators; nothing is generated from the raw resume text.
package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hirelens/hirelens/internal/interview"
	"github.com/hirelens/hirelens/internal/recruiter"
	"github.com/hirelens/hirelens/internal/types"
)

var priorityRank = map[string]int{
	types.PriorityCritical: 0,
	types.PriorityHigh:     1,
	types.PriorityMedium:   2,
	types.PriorityLow:      3,
}

// Recommend maps each identified risk to a concrete, actionable change and
// ranks the result by priority and expected impact. The analysis context
// must carry the ATS, recruiter, interview, and aggregated score results.
func Recommend(ac *types.AnalysisContext) []types.Recommendation {
	recs := atsRecommendations(ac.ATS)
	recs = append(recs, recruiterRecommendations(ac.Recruiter)...)
	recs = append(recs, interviewRecommendations(ac.Interview)...)
	recs = append(recs, aggregatedRecommendations(ac.Score, recs)...)

	rankRecommendations(recs)
	return recs
}

func atsRecommendations(ats *types.ATSResult) []types.Recommendation {
	var recs []types.Recommendation

	if !ats.RequiredFields.Email {
		recs = append(recs, types.Recommendation{
			Priority:               types.PriorityHigh,
			Category:               types.CategoryFormatting,
			Action:                 "Add email address to resume header",
			Impact:                 "ATS systems require email for contact. Missing email will cause immediate rejection.",
			Reasoning:              "ATS requires email field for candidate contact and tracking.",
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(25.0),
			ImpactProbabilityDelta: floatPtr(0.25),
			ReferencedRisk:         "Missing required field: email",
		})
	}

	if !ats.RequiredFields.Phone {
		recs = append(recs, types.Recommendation{
			Priority:               types.PriorityHigh,
			Category:               types.CategoryFormatting,
			Action:                 "Add phone number to resume header",
			Impact:                 "ATS systems require phone for contact. Missing phone will cause immediate rejection.",
			Reasoning:              "ATS requires phone field for candidate contact and tracking.",
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(25.0),
			ImpactProbabilityDelta: floatPtr(0.25),
			ReferencedRisk:         "Missing required field: phone",
		})
	}

	if !ats.RequiredFields.WorkHistory {
		recs = append(recs, types.Recommendation{
			Priority:               types.PriorityCritical,
			Category:               types.CategoryContentImprovement,
			Action:                 "Add work experience section with at least one job entry",
			Impact:                 "ATS requires work history. Missing work history will cause immediate rejection.",
			Reasoning:              "ATS systems filter out resumes without work experience.",
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(30.0),
			ImpactProbabilityDelta: floatPtr(0.30),
			ReferencedRisk:         "Missing required field: work history",
		})
	}

	if ats.KeywordMatchPercentage < 60.0 {
		priority := types.PriorityMedium
		if ats.KeywordMatchPercentage < 40.0 {
			priority = types.PriorityHigh
		}
		missing := ats.Keywords.Missing
		if len(missing) > 5 {
			missing = missing[:5]
		}
		recs = append(recs, types.Recommendation{
			Priority:               priority,
			Category:               types.CategoryKeywordOptimization,
			Action:                 fmt.Sprintf("Incorporate missing keywords naturally: %s", strings.Join(missing, ", ")),
			Impact:                 fmt.Sprintf("Keyword match is %.1f%%. Increasing to 70%%+ would significantly improve ATS compatibility.", ats.KeywordMatchPercentage),
			Reasoning:              fmt.Sprintf("ATS systems rank candidates by keyword match. Missing %d required keywords reduces visibility.", len(ats.Keywords.Missing)),
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(math.Min(20.0, (70.0-ats.KeywordMatchPercentage)*0.5)),
			ImpactProbabilityDelta: floatPtr(math.Min(0.20, (70.0-ats.KeywordMatchPercentage)/100.0)),
			ReferencedRisk:         fmt.Sprintf("Low keyword match: %.1f%%", ats.KeywordMatchPercentage),
		})
	}

	if ats.HardFilters.ExperienceMet == types.TriFalse {
		recs = append(recs, types.Recommendation{
			Priority:               types.PriorityHigh,
			Category:               types.CategoryContentImprovement,
			Action:                 "Highlight required skills more prominently in work experience descriptions",
			Impact:                 "Hard filter failure for required skills causes immediate ATS rejection.",
			Reasoning:              "ATS hard filters reject candidates who don't meet minimum skill requirements.",
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(20.0),
			ImpactProbabilityDelta: floatPtr(0.20),
			ReferencedRisk:         "Hard filter failed: missing required skills",
		})
	}

	if ats.HardFilters.EducationMet == types.TriFalse {
		recs = append(recs, types.Recommendation{
			Priority:               types.PriorityHigh,
			Category:               types.CategoryContentImprovement,
			Action:                 "Ensure education section clearly states required degree level",
			Impact:                 "Hard filter failure for required education causes immediate ATS rejection.",
			Reasoning:              "ATS hard filters reject candidates who don't meet minimum education requirements.",
			StageAffected:          types.StageLabelATS,
			ImpactScoreDelta:       floatPtr(15.0),
			ImpactProbabilityDelta: floatPtr(0.15),
			ReferencedRisk:         "Hard filter failed: missing required education",
		})
	}

	return recs
}

func recruiterRecommendations(result *types.RecruiterResult) []types.Recommendation {
	var recs []types.Recommendation

	for _, flag := range result.RedFlags {
		switch flag.Type {
		case recruiter.FlagJobHopping:
			priority := types.PriorityMedium
			scoreDelta, probDelta := 5.0, 0.05
			if flag.Severity == types.SeverityHigh {
				priority = types.PriorityHigh
				scoreDelta, probDelta = 10.0, 0.10
			}
			recs = append(recs, types.Recommendation{
				Priority:               priority,
				Category:               types.CategoryGapExplanation,
				Action:                 "Add brief explanation for short tenures or job changes in cover letter or resume summary",
				Impact:                 "Job hopping pattern raises recruiter concerns about stability. Explanation can mitigate concerns.",
				Reasoning:              flag.Description,
				StageAffected:          types.StageLabelRecruiter,
				ImpactScoreDelta:       floatPtr(scoreDelta),
				ImpactProbabilityDelta: floatPtr(probDelta),
				ReferencedRisk:         flag.Type,
			})

		case recruiter.FlagEmploymentGap:
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityMedium,
				Category:               types.CategoryGapExplanation,
				Action:                 "Add brief explanation for employment gap (e.g., 'Career break for family reasons' or 'Pursuing additional education')",
				Impact:                 "Unexplained employment gaps raise recruiter concerns. Brief explanation can address concerns.",
				Reasoning:              flag.Description,
				StageAffected:          types.StageLabelRecruiter,
				ImpactScoreDelta:       floatPtr(8.0),
				ImpactProbabilityDelta: floatPtr(0.08),
				ReferencedRisk:         flag.Type,
			})

		case recruiter.FlagGenericResume:
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityMedium,
				Category:               types.CategoryAchievementEnhancement,
				Action:                 "Add specific, quantifiable achievements with metrics (e.g., 'Increased revenue by 25%' or 'Reduced processing time by 40%')",
				Impact:                 "Generic resume lacks impact. Quantifiable achievements demonstrate value and results.",
				Reasoning:              flag.Description,
				StageAffected:          types.StageLabelRecruiter,
				ImpactScoreDelta:       floatPtr(12.0),
				ImpactProbabilityDelta: floatPtr(0.12),
				ReferencedRisk:         flag.Type,
			})

		case recruiter.FlagFormattingIssues:
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityLow,
				Category:               types.CategoryFormatting,
				Action:                 "Condense resume to 1-2 pages by removing less relevant information",
				Impact:                 "Very long resumes are difficult for recruiters to scan quickly.",
				Reasoning:              flag.Description,
				StageAffected:          types.StageLabelRecruiter,
				ImpactScoreDelta:       floatPtr(3.0),
				ImpactProbabilityDelta: floatPtr(0.03),
				ReferencedRisk:         flag.Type,
			})
		}
	}

	return recs
}

func interviewRecommendations(result *types.InterviewReadinessResult) []types.Recommendation {
	var recs []types.Recommendation

	for _, risk := range result.ConsistencyRisks {
		switch risk.RiskType {
		case interview.RiskVagueClaim:
			priority := types.PriorityMedium
			scoreDelta, probDelta := 8.0, 0.08
			if risk.Severity == types.SeverityHigh {
				priority = types.PriorityHigh
				scoreDelta, probDelta = 15.0, 0.15
			}
			related := "claim"
			if risk.RelatedClaim != "" {
				related = truncate(risk.RelatedClaim, 50)
			}
			recs = append(recs, types.Recommendation{
				Priority:               priority,
				Category:               types.CategoryAchievementEnhancement,
				Action:                 fmt.Sprintf("Add specific details and metrics to support claim: '%s...'", related),
				Impact:                 "Vague claims will be probed in interviews. Specific details with metrics make claims defensible.",
				Reasoning:              risk.Description,
				StageAffected:          types.StageLabelInterview,
				ImpactScoreDelta:       floatPtr(scoreDelta),
				ImpactProbabilityDelta: floatPtr(probDelta),
				ReferencedRisk:         risk.RiskType,
			})

		case interview.RiskOverstatedAchievement:
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityHigh,
				Category:               types.CategoryAchievementEnhancement,
				Action:                 "Add quantifiable metrics to support impact statement (e.g., specific numbers, percentages, timeframes)",
				Impact:                 "Overstated claims without metrics will be challenged in interviews. Quantifiable evidence supports claims.",
				Reasoning:              risk.Description,
				StageAffected:          types.StageLabelInterview,
				ImpactScoreDelta:       floatPtr(12.0),
				ImpactProbabilityDelta: floatPtr(0.12),
				ReferencedRisk:         risk.RiskType,
			})

		case interview.RiskSkillDepthMismatch:
			skills := "listed skills"
			if parts := strings.Split(risk.Description, ":"); len(parts) >= 2 {
				skills = strings.TrimSpace(parts[1])
			}
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityMedium,
				Category:               types.CategorySkillAddition,
				Action:                 fmt.Sprintf("Demonstrate listed skills in work experience descriptions: %s", skills),
				Impact:                 "Skills listed but not demonstrated raise interview questions. Show skill usage in context.",
				Reasoning:              risk.Description,
				StageAffected:          types.StageLabelInterview,
				ImpactScoreDelta:       floatPtr(10.0),
				ImpactProbabilityDelta: floatPtr(0.10),
				ReferencedRisk:         risk.RiskType,
			})

		case "missing_context":
			recs = append(recs, types.Recommendation{
				Priority:               types.PriorityMedium,
				Category:               types.CategoryContentImprovement,
				Action:                 "Add context to claims (team size, project scope, business impact, constraints faced)",
				Impact:                 "Claims without context are difficult to defend in interviews. Context demonstrates understanding.",
				Reasoning:              risk.Description,
				StageAffected:          types.StageLabelInterview,
				ImpactScoreDelta:       floatPtr(8.0),
				ImpactProbabilityDelta: floatPtr(0.08),
				ReferencedRisk:         risk.RiskType,
			})
		}
	}

	return recs
}

// aggregatedRecommendations covers high-impact risk factors that no
// stage-specific recommendation already references.
func aggregatedRecommendations(aggregate *types.AggregatedScore, existing []types.Recommendation) []types.Recommendation {
	referenced := make(map[string]bool, len(existing))
	for _, rec := range existing {
		if rec.ReferencedRisk != "" {
			referenced[rec.ReferencedRisk] = true
		}
	}

	var recs []types.Recommendation
	for _, factor := range aggregate.RiskFactors {
		if referenced[factor.Factor] {
			continue
		}
		if math.Abs(factor.Impact) < 0.10 {
			continue
		}

		priority := types.PriorityMedium
		if factor.Severity == types.SeverityCritical || factor.Severity == types.SeverityHigh {
			priority = types.PriorityHigh
		}
		stage := factor.Stage
		if strings.Contains(stage, ",") {
			stage = types.StageLabelOverall
		}

		recs = append(recs, types.Recommendation{
			Priority:               priority,
			Category:               types.CategoryContentImprovement,
			Action:                 fmt.Sprintf("Address %s to improve overall hiring probability", strings.ToLower(factor.Factor)),
			Impact:                 fmt.Sprintf("This risk factor reduces overall hiring probability by %.1f%%.", math.Abs(factor.Impact)*100),
			Reasoning:              factor.Description,
			StageAffected:          stage,
			ImpactScoreDelta:       floatPtr(math.Abs(factor.Impact) * 100.0),
			ImpactProbabilityDelta: floatPtr(math.Abs(factor.Impact)),
			ReferencedRisk:         factor.Factor,
		})
	}

	return recs
}

// rankRecommendations orders by priority, then by descending score delta.
// The sort is stable so catalog order breaks ties.
func rankRecommendations(recs []types.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		pi := rankOf(recs[i].Priority)
		pj := rankOf(recs[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return scoreDeltaOf(recs[i]) > scoreDeltaOf(recs[j])
	})
}

func rankOf(priority string) int {
	if rank, ok := priorityRank[priority]; ok {
		return rank
	}
	return 3
}

func scoreDeltaOf(rec types.Recommendation) float64 {
	if rec.ImpactScoreDelta == nil {
		return 0.0
	}
	return math.Abs(*rec.ImpactScoreDelta)
}

func floatPtr(v float64) *float64 {
	return &v
}

// truncate returns at most limit runes of text.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
