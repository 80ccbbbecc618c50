// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureVector_JSONMarshaling(t *testing.T) {
	years := 4.5
	skills := 8
	vector := FeatureVector{
		Quantitative: QuantitativeFeatures{
			YearsExperience: &years,
			SkillsCount:     &skills,
		},
		Categorical: CategoricalFeatures{
			HasRequiredSkills: TriTrue,
			HasRequiredDegree: TriUnknown,
		},
		MissingFeatures: []string{FeatureKeywordMatchCount},
		ComputationMethods: map[string]string{
			FeatureYearsExperience: MethodDeterministicHeuristic,
			FeatureSkillsCount:     MethodDeterministicRule,
		},
	}

	jsonBytes, err := json.MarshalIndent(vector, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"years_experience": 4.5`)
	assert.Contains(t, string(jsonBytes), `"skills_count": 8`)
	assert.Contains(t, string(jsonBytes), `"has_required_skills": true`)
	assert.Contains(t, string(jsonBytes), `"has_required_degree": null`)
	assert.Contains(t, string(jsonBytes), `"missing_features"`)
	assert.Contains(t, string(jsonBytes), `"computation_method"`)

	var unmarshaled FeatureVector
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, 4.5, *unmarshaled.Quantitative.YearsExperience)
	assert.Equal(t, 8, *unmarshaled.Quantitative.SkillsCount)
	assert.Nil(t, unmarshaled.Quantitative.KeywordMatchCount)
	assert.Equal(t, TriUnknown, unmarshaled.Categorical.HasRequiredDegree)
}

func TestFeatureVector_IsMissing(t *testing.T) {
	vector := FeatureVector{
		MissingFeatures: []string{FeatureYearsExperience, FeatureHasRequiredDegree},
	}

	assert.True(t, vector.IsMissing(FeatureYearsExperience))
	assert.True(t, vector.IsMissing(FeatureHasRequiredDegree))
	assert.False(t, vector.IsMissing(FeatureSkillsCount))
}

func TestQuantitativeFeatures_OmitsUnsetFields(t *testing.T) {
	vector := FeatureVector{}

	jsonBytes, err := json.Marshal(vector)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "years_experience")
	assert.NotContains(t, string(jsonBytes), "resume_length_words")
}
