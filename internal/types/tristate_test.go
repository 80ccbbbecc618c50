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

func TestTriState_MarshalJSON(t *testing.T) {
	trueBytes, err := json.Marshal(TriTrue)
	require.NoError(t, err)
	assert.Equal(t, "true", string(trueBytes))

	falseBytes, err := json.Marshal(TriFalse)
	require.NoError(t, err)
	assert.Equal(t, "false", string(falseBytes))

	unknownBytes, err := json.Marshal(TriUnknown)
	require.NoError(t, err)
	assert.Equal(t, "null", string(unknownBytes))
}

func TestTriState_UnmarshalJSON(t *testing.T) {
	var state TriState

	require.NoError(t, json.Unmarshal([]byte("true"), &state))
	assert.Equal(t, TriTrue, state)

	require.NoError(t, json.Unmarshal([]byte("false"), &state))
	assert.Equal(t, TriFalse, state)

	require.NoError(t, json.Unmarshal([]byte("null"), &state))
	assert.Equal(t, TriUnknown, state)

	err := json.Unmarshal([]byte(`"maybe"`), &state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tri-state value")
}

func TestTriState_RoundTripInStruct(t *testing.T) {
	filters := HardFilters{
		ExperienceMet: TriTrue,
		EducationMet:  TriUnknown,
		AllMet:        TriTrue,
	}

	jsonBytes, err := json.MarshalIndent(filters, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"experience_met": true`)
	assert.Contains(t, string(jsonBytes), `"education_met": null`)

	var unmarshaled HardFilters
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, TriTrue, unmarshaled.ExperienceMet)
	assert.Equal(t, TriUnknown, unmarshaled.EducationMet)
}

func TestTriState_Bool(t *testing.T) {
	value, known := TriTrue.Bool()
	assert.True(t, value)
	assert.True(t, known)

	value, known = TriFalse.Bool()
	assert.False(t, value)
	assert.True(t, known)

	_, known = TriUnknown.Bool()
	assert.False(t, known)
}

func TestTriState_String(t *testing.T) {
	assert.Equal(t, "true", TriTrue.String())
	assert.Equal(t, "false", TriFalse.String())
	assert.Equal(t, "unknown", TriUnknown.String())
}

func TestTriFromBool(t *testing.T) {
	assert.Equal(t, TriTrue, TriFromBool(true))
	assert.Equal(t, TriFalse, TriFromBool(false))
}

func TestTriAll(t *testing.T) {
	// Unknown inputs are ignored when at least one input is known.
	assert.Equal(t, TriTrue, TriAll(TriTrue, TriUnknown))
	assert.Equal(t, TriTrue, TriAll(TriTrue, TriTrue))

	// Any known false wins.
	assert.Equal(t, TriFalse, TriAll(TriTrue, TriFalse))
	assert.Equal(t, TriFalse, TriAll(TriFalse, TriUnknown))

	// All unknown stays unknown.
	assert.Equal(t, TriUnknown, TriAll(TriUnknown, TriUnknown))
	assert.Equal(t, TriUnknown, TriAll())
}
