// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Feature names shared between the extractor, the missing-features list and
// the computation-method map.
const (
	FeatureYearsExperience   = "years_experience"
	FeatureSkillsCount       = "skills_count"
	FeatureKeywordMatchCount = "keyword_match_count"
	FeatureResumeLengthWords = "resume_length_words"
	FeatureHasRequiredSkills = "has_required_skills"
	FeatureHasRequiredDegree = "has_required_degree"
)

// Computation method tags recorded per feature for explainability.
const (
	MethodDeterministicRule      = "deterministic_rule"
	MethodDeterministicHeuristic = "deterministic_heuristic"
)

// QuantitativeFeatures holds the numeric features. A nil field means the
// feature could not be computed from the available data; callers must not
// read a meaning into the zero value of a nil field.
type QuantitativeFeatures struct {
	YearsExperience   *float64 `json:"years_experience,omitempty"`
	SkillsCount       *int     `json:"skills_count,omitempty"`
	KeywordMatchCount *int     `json:"keyword_match_count,omitempty"`
	ResumeLengthWords *int     `json:"resume_length_words,omitempty"`
}

// CategoricalFeatures holds the boolean-like features as tri-states so an
// unevaluable check stays distinct from a failed one.
type CategoricalFeatures struct {
	HasRequiredSkills TriState `json:"has_required_skills"`
	HasRequiredDegree TriState `json:"has_required_degree"`
}

// FeatureVector is the output of feature extraction. Every feature name
// appears either in ComputationMethods (computed) or in MissingFeatures
// (not computable), never both and never neither. Value fields mirror that
// split, except years_experience which keeps an explicit 0.0 when missing.
type FeatureVector struct {
	Quantitative       QuantitativeFeatures `json:"quantitative"`
	Categorical        CategoricalFeatures  `json:"categorical"`
	MissingFeatures    []string             `json:"missing_features"`
	ComputationMethods map[string]string    `json:"computation_method"`
}

// IsMissing reports whether the named feature was recorded as not
// computable.
func (f *FeatureVector) IsMissing(name string) bool {
	for _, missing := range f.MissingFeatures {
		if missing == name {
			return true
		}
	}
	return false
}
