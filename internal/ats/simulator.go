// Package ats simulates applicant tracking system screening using
// deterministic rules: required-field checks, hard filters derived from the
// feature vector, and keyword matching against the job's required skills.
package ats

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Compatibility score deductions.
const (
	missingEmailPenalty       = 25.0
	missingPhonePenalty       = 25.0
	missingWorkHistoryPenalty = 30.0
	experienceFilterPenalty   = 20.0
	educationFilterPenalty    = 15.0
	maxKeywordPenalty         = 20.0
	keywordPenaltyThreshold   = 60.0
)

// Simulate runs the ATS screen for a resume/job pair. Checks execute in a
// fixed order and every failing check appends a rejection reason, so the
// reasons list is deterministic for identical inputs.
func Simulate(resume *types.ParsedResume, job *types.ParsedJobDescription, features *types.FeatureVector, atsType string) types.ATSResult {
	result := types.ATSResult{ATSType: atsType}

	result.RequiredFields = checkRequiredFields(resume, &result)
	result.HardFilters = checkHardFilters(features, &result)
	result.Keywords = matchKeywords(resume, job, features, &result)
	result.KeywordMatchPercentage = keywordMatchPercentage(result.Keywords)
	result.CompatibilityScore = compatibilityScore(&result)

	return result
}

// checkRequiredFields verifies the fields an ATS needs to file a candidate.
// Education is tracked but excluded from the AllPresent gate.
func checkRequiredFields(resume *types.ParsedResume, result *types.ATSResult) types.RequiredFieldsStatus {
	status := types.RequiredFieldsStatus{
		Email:       strings.TrimSpace(resume.Email) != "",
		Phone:       strings.TrimSpace(resume.Phone) != "",
		WorkHistory: len(resume.WorkExperience) > 0,
		Education:   len(resume.Education) > 0,
	}
	status.AllPresent = status.Email && status.Phone && status.WorkHistory

	if !status.Email {
		result.RejectionReasons = append(result.RejectionReasons, "Missing required field: email")
	}
	if !status.Phone {
		result.RejectionReasons = append(result.RejectionReasons, "Missing required field: phone")
	}
	if !status.WorkHistory {
		result.RejectionReasons = append(result.RejectionReasons, "Missing required field: work history")
	}

	return status
}

// checkHardFilters maps categorical features onto pass/fail filters. An
// undefined feature leaves its filter unknown; AllMet reduces over the
// defined filters only.
func checkHardFilters(features *types.FeatureVector, result *types.ATSResult) types.HardFilters {
	filters := types.HardFilters{}

	if features.Categorical.HasRequiredSkills.Known() {
		filters.ExperienceMet = features.Categorical.HasRequiredSkills
		if filters.ExperienceMet == types.TriFalse {
			result.RejectionReasons = append(result.RejectionReasons, "Hard filter failed: missing required skills")
		}
	}

	if features.Categorical.HasRequiredDegree.Known() {
		filters.EducationMet = features.Categorical.HasRequiredDegree
		if filters.EducationMet == types.TriFalse {
			result.RejectionReasons = append(result.RejectionReasons, "Hard filter failed: missing required education")
		}
	}

	filters.AllMet = types.TriAll(filters.ExperienceMet, filters.EducationMet)

	return filters
}

// matchKeywords compares the job's required skills against the resume's
// skill list (case-insensitive exact match). When the feature vector carries
// a keyword match count it overrides the local recount; the feature vector
// is the authoritative source.
func matchKeywords(resume *types.ParsedResume, job *types.ParsedJobDescription, features *types.FeatureVector, result *types.ATSResult) types.KeywordBreakdown {
	breakdown := types.KeywordBreakdown{TotalRequired: len(job.RequiredSkills)}
	if breakdown.TotalRequired == 0 {
		return breakdown
	}

	resumeSkills := make(map[string]bool, len(resume.Skills))
	for _, skill := range resume.Skills {
		resumeSkills[strings.ToLower(skill)] = true
	}

	for _, keyword := range job.RequiredSkills {
		if resumeSkills[strings.ToLower(keyword)] {
			breakdown.Matched = append(breakdown.Matched, types.MatchedKeyword{
				Keyword:  keyword,
				Location: "skills",
				Weight:   1.0,
			})
		} else {
			breakdown.Missing = append(breakdown.Missing, keyword)
		}
	}

	breakdown.TotalMatched = len(breakdown.Matched)
	if features.Quantitative.KeywordMatchCount != nil {
		breakdown.TotalMatched = *features.Quantitative.KeywordMatchCount
	}

	if breakdown.TotalMatched < breakdown.TotalRequired {
		missingCount := breakdown.TotalRequired - breakdown.TotalMatched
		shown := breakdown.Missing
		if len(shown) > 5 {
			shown = shown[:5]
		}
		result.RejectionReasons = append(result.RejectionReasons,
			fmt.Sprintf("Missing %d required keyword(s): %s", missingCount, strings.Join(shown, ", ")))
	}

	return breakdown
}

// keywordMatchPercentage is vacuously 100.0 when the job requires nothing.
func keywordMatchPercentage(breakdown types.KeywordBreakdown) float64 {
	if breakdown.TotalRequired == 0 {
		return 100.0
	}
	percentage := float64(breakdown.TotalMatched) / float64(breakdown.TotalRequired) * 100.0
	return round2(percentage)
}

// compatibilityScore starts at 100 and deducts per failed check, floored at
// zero.
func compatibilityScore(result *types.ATSResult) float64 {
	score := 100.0

	if !result.RequiredFields.Email {
		score -= missingEmailPenalty
	}
	if !result.RequiredFields.Phone {
		score -= missingPhonePenalty
	}
	if !result.RequiredFields.WorkHistory {
		score -= missingWorkHistoryPenalty
	}

	if result.HardFilters.ExperienceMet == types.TriFalse {
		score -= experienceFilterPenalty
	}
	if result.HardFilters.EducationMet == types.TriFalse {
		score -= educationFilterPenalty
	}

	if result.KeywordMatchPercentage < keywordPenaltyThreshold {
		penalty := keywordPenaltyThreshold - result.KeywordMatchPercentage
		score -= math.Min(penalty, maxKeywordPenalty)
	}

	return round2(math.Max(0.0, score))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
