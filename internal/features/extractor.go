// Package features computes deterministic features from parsed resume and
// job description data. Every feature comes from a simple rule or heuristic;
// there is no ML, no embeddings, and no I/O.
package features

import (
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Extract computes the feature vector for a resume/job pair. Each feature
// is computed independently; when the underlying data is absent the feature
// is appended to MissingFeatures instead of defaulting to a misleading
// zero. Every feature name ends up either computed (with an entry in
// ComputationMethods) or missing, never both.
func Extract(resume *types.ParsedResume, job *types.ParsedJobDescription) types.FeatureVector {
	vector := types.FeatureVector{
		ComputationMethods: make(map[string]string),
	}

	vector.Quantitative.SkillsCount = skillsCount(resume, &vector)
	vector.Quantitative.KeywordMatchCount = keywordMatchCount(resume, job, &vector)
	vector.Quantitative.ResumeLengthWords = resumeLengthWords(resume, &vector)
	vector.Quantitative.YearsExperience = yearsExperience(resume, &vector)

	vector.Categorical.HasRequiredSkills = hasRequiredSkills(resume, job, &vector)
	vector.Categorical.HasRequiredDegree = hasRequiredDegree(resume, job, &vector)

	return vector
}

// skillsCount counts listed skills. A nil skills slice means the document
// had no skills section, so the feature is missing; an empty non-nil slice
// is a real count of zero.
func skillsCount(resume *types.ParsedResume, vector *types.FeatureVector) *int {
	if resume.Skills == nil {
		markMissing(vector, types.FeatureSkillsCount)
		return nil
	}
	count := len(resume.Skills)
	vector.ComputationMethods[types.FeatureSkillsCount] = types.MethodDeterministicRule
	return &count
}

// keywordMatchCount counts job required skills that appear verbatim
// (case-insensitive) in the resume skills list.
func keywordMatchCount(resume *types.ParsedResume, job *types.ParsedJobDescription, vector *types.FeatureVector) *int {
	if len(resume.Skills) == 0 || len(job.RequiredSkills) == 0 {
		markMissing(vector, types.FeatureKeywordMatchCount)
		return nil
	}

	resumeSkills := lowerSet(resume.Skills)
	matches := 0
	for _, required := range job.RequiredSkills {
		if resumeSkills[strings.ToLower(required)] {
			matches++
		}
	}

	vector.ComputationMethods[types.FeatureKeywordMatchCount] = types.MethodDeterministicRule
	return &matches
}

// resumeLengthWords totals whitespace-delimited words across all work
// experience descriptions.
func resumeLengthWords(resume *types.ParsedResume, vector *types.FeatureVector) *int {
	words := 0
	for _, entry := range resume.WorkExperience {
		words += len(strings.Fields(entry.Description))
	}
	if words == 0 {
		markMissing(vector, types.FeatureResumeLengthWords)
		return nil
	}

	vector.ComputationMethods[types.FeatureResumeLengthWords] = types.MethodDeterministicRule
	return &words
}

// yearsExperience estimates experience with a coarse heuristic: every work
// entry carrying both a start and an end date contributes a fixed 12
// months. Date-span math is deliberately not implemented; dates are opaque
// strings from the parser. With no work history at all the value is an
// explicit 0.0 recorded as missing, not an absent field.
func yearsExperience(resume *types.ParsedResume, vector *types.FeatureVector) *float64 {
	if len(resume.WorkExperience) == 0 {
		markMissing(vector, types.FeatureYearsExperience)
		zero := 0.0
		return &zero
	}

	totalMonths := 0
	for _, entry := range resume.WorkExperience {
		if entry.StartDate != "" && entry.EndDate != "" {
			totalMonths += 12
		}
	}

	years := float64(totalMonths) / 12.0
	vector.ComputationMethods[types.FeatureYearsExperience] = types.MethodDeterministicHeuristic
	return &years
}

// hasRequiredSkills reports whether every job required skill appears in the
// resume skills list (case-insensitive exact match). Unknown when either
// list is empty.
func hasRequiredSkills(resume *types.ParsedResume, job *types.ParsedJobDescription, vector *types.FeatureVector) types.TriState {
	if len(resume.Skills) == 0 || len(job.RequiredSkills) == 0 {
		markMissing(vector, types.FeatureHasRequiredSkills)
		return types.TriUnknown
	}

	resumeSkills := lowerSet(resume.Skills)
	hasAll := true
	for _, required := range job.RequiredSkills {
		if !resumeSkills[strings.ToLower(required)] {
			hasAll = false
			break
		}
	}

	vector.ComputationMethods[types.FeatureHasRequiredSkills] = types.MethodDeterministicRule
	return types.TriFromBool(hasAll)
}

// hasRequiredDegree reports whether any resume degree contains the job's
// required education string (case-insensitive substring). Unknown when the
// job specifies no education requirement, and also when the resume lists no
// education at all: the check cannot be evaluated either way.
func hasRequiredDegree(resume *types.ParsedResume, job *types.ParsedJobDescription, vector *types.FeatureVector) types.TriState {
	if job.RequiredEducation == "" || len(resume.Education) == 0 {
		markMissing(vector, types.FeatureHasRequiredDegree)
		return types.TriUnknown
	}

	required := strings.ToLower(job.RequiredEducation)
	vector.ComputationMethods[types.FeatureHasRequiredDegree] = types.MethodDeterministicRule
	for _, education := range resume.Education {
		if strings.Contains(strings.ToLower(education.Degree), required) {
			return types.TriTrue
		}
	}
	return types.TriFalse
}

func markMissing(vector *types.FeatureVector, name string) {
	vector.MissingFeatures = append(vector.MissingFeatures, name)
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[strings.ToLower(value)] = true
	}
	return set
}
