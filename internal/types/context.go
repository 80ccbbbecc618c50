// Package types provides type definitions for structured data used throughout the hirelens system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Stage execution statuses.
const (
	StagePending = "pending"
	StageRunning = "running"
	StageSuccess = "success"
	StageFailed  = "failed"
)

// Pipeline stage names, in execution order.
const (
	StageParsing            = "parsing"
	StageFeatureExtraction  = "feature_extraction"
	StageATSSimulation      = "ats_simulation"
	StageRecruiterEval      = "recruiter_evaluation"
	StageInterviewReadiness = "interview_readiness"
	StageScoring            = "scoring"
	StageExplainability     = "explainability"
)

// AnalysisContext carries a single candidate analysis through the pipeline.
// Stages read the fields earlier stages populated and write their own
// result pointer. A nil result pointer means the stage has not run or
// failed.
type AnalysisContext struct {
	AnalysisID uuid.UUID `json:"analysis_id"`

	// Raw inputs.
	ResumeText         string `json:"resume_text,omitempty"`
	JobDescriptionText string `json:"job_description_text,omitempty"`

	Options AnalyzeOptions `json:"options"`

	// Stage outputs.
	Resume         *ParsedResume             `json:"parsed_resume,omitempty"`
	JobDescription *ParsedJobDescription     `json:"parsed_job_description,omitempty"`
	Features       *FeatureVector            `json:"features,omitempty"`
	ATS            *ATSResult                `json:"ats_result,omitempty"`
	Recruiter      *RecruiterResult          `json:"recruiter_result,omitempty"`
	Interview      *InterviewReadinessResult `json:"interview_result,omitempty"`
	Score          *AggregatedScore          `json:"aggregated_score,omitempty"`
	Explanation    *ExplainabilityArtifact   `json:"explainability,omitempty"`

	StartTime     time.Time          `json:"start_time"`
	StageStatuses map[string]string  `json:"stage_statuses"`
	StageTimings  map[string]float64 `json:"stage_timings_seconds"`
	StageErrors   map[string]string  `json:"stage_errors,omitempty"`
}

// NewAnalysisContext builds a context with a fresh analysis ID and every
// stage marked pending.
func NewAnalysisContext(resumeText, jobText string, opts AnalyzeOptions) *AnalysisContext {
	statuses := make(map[string]string, len(StageOrder))
	for _, stage := range StageOrder {
		statuses[stage] = StagePending
	}
	return &AnalysisContext{
		AnalysisID:         uuid.New(),
		ResumeText:         resumeText,
		JobDescriptionText: jobText,
		Options:            opts,
		StartTime:          time.Now().UTC(),
		StageStatuses:      statuses,
		StageTimings:       make(map[string]float64, len(StageOrder)),
		StageErrors:        make(map[string]string),
	}
}

// StageOrder lists pipeline stages in the order they execute.
var StageOrder = []string{
	StageParsing,
	StageFeatureExtraction,
	StageATSSimulation,
	StageRecruiterEval,
	StageInterviewReadiness,
	StageScoring,
	StageExplainability,
}

// Analysis result statuses. A run that recorded any stage failure is
// reported as completed_with_errors; the pipeline itself never aborts.
// AnalysisFailed is reserved for callers whose inputs never reached the
// pipeline at all, such as batch pairs with unreadable files.
const (
	AnalysisCompleted           = "completed"
	AnalysisCompletedWithErrors = "completed_with_errors"
	AnalysisFailed              = "failed"
)

// Completed reports whether every stage finished successfully.
func (c *AnalysisContext) Completed() bool {
	for _, stage := range StageOrder {
		if c.StageStatuses[stage] != StageSuccess {
			return false
		}
	}
	return true
}

// Status summarizes the run outcome as an API-facing string.
func (c *AnalysisContext) Status() string {
	if c.Completed() {
		return AnalysisCompleted
	}
	return AnalysisCompletedWithErrors
}

// FailedStages returns the stages that recorded a failure, in execution
// order.
func (c *AnalysisContext) FailedStages() []string {
	var failed []string
	for _, stage := range StageOrder {
		if c.StageStatuses[stage] == StageFailed {
			failed = append(failed, stage)
		}
	}
	return failed
}
