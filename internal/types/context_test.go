// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisContext(t *testing.T) {
	analysis := NewAnalysisContext("resume text", "job text", DefaultAnalyzeOptions())

	assert.NotEqual(t, uuid.Nil, analysis.AnalysisID)
	assert.Equal(t, "resume text", analysis.ResumeText)
	assert.Equal(t, "job text", analysis.JobDescriptionText)
	assert.False(t, analysis.StartTime.IsZero())

	require.Len(t, analysis.StageStatuses, len(StageOrder))
	for _, stage := range StageOrder {
		assert.Equal(t, StagePending, analysis.StageStatuses[stage])
	}
	assert.Empty(t, analysis.StageTimings)
	assert.Empty(t, analysis.StageErrors)
}

func TestAnalysisContext_Completed(t *testing.T) {
	analysis := NewAnalysisContext("", "", DefaultAnalyzeOptions())
	assert.False(t, analysis.Completed())

	for _, stage := range StageOrder {
		analysis.StageStatuses[stage] = StageSuccess
	}
	assert.True(t, analysis.Completed())

	analysis.StageStatuses[StageScoring] = StageFailed
	assert.False(t, analysis.Completed())
}

func TestAnalysisContext_FailedStages(t *testing.T) {
	analysis := NewAnalysisContext("", "", DefaultAnalyzeOptions())
	assert.Empty(t, analysis.FailedStages())

	analysis.StageStatuses[StageParsing] = StageFailed
	analysis.StageStatuses[StageScoring] = StageFailed

	failed := analysis.FailedStages()
	require.Len(t, failed, 2)
	assert.Equal(t, StageParsing, failed[0])
	assert.Equal(t, StageScoring, failed[1])
}
