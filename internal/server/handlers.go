package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/parsing"
	"github.com/hirelens/hirelens/internal/pipeline"
	"github.com/hirelens/hirelens/internal/schemas"
	"github.com/hirelens/hirelens/internal/types"
)

var requestValidator = validator.New()

// AnalyzeRequest is the request body for /api/v1/analyze and
// /api/v1/analyze/stream. Each document comes either as raw text or as a
// structured JSON variant.
type AnalyzeRequest struct {
	ResumeText         string          `json:"resume_text,omitempty" validate:"required_without=ResumeJSON"`
	JobDescriptionText string          `json:"job_description_text,omitempty" validate:"required_without=JobDescriptionJSON"`
	ResumeJSON         json.RawMessage `json:"resume_json,omitempty"`
	JobDescriptionJSON json.RawMessage `json:"job_description_json,omitempty"`
	Options            map[string]any  `json:"options,omitempty"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return requestValidator.Struct(r)
}

// AnalyzeResponse is the response for /api/v1/analyze and
// /api/v1/analysis/{id}. Intermediate artifacts appear only when the
// corresponding include option was set on the request.
type AnalyzeResponse struct {
	AnalysisID         string                          `json:"analysis_id"`
	Status             string                          `json:"status"`
	OverallScore       float64                         `json:"overall_score"`
	StageProbabilities *types.StageProbabilities       `json:"stage_probabilities,omitempty"`
	StageStatuses      map[string]string               `json:"stage_statuses"`
	StageTimings       map[string]float64              `json:"stage_timings_seconds"`
	StageErrors        map[string]string               `json:"stage_errors,omitempty"`
	ATS                *types.ATSResult                `json:"ats_result,omitempty"`
	Recruiter          *types.RecruiterResult          `json:"recruiter_result,omitempty"`
	Interview          *types.InterviewReadinessResult `json:"interview_result,omitempty"`
	Score              *types.AggregatedScore          `json:"aggregated_score,omitempty"`
	Explanation        *types.ExplainabilityArtifact   `json:"explainability,omitempty"`
	ParsedResume       *types.ParsedResume             `json:"parsed_resume,omitempty"`
	ParsedJob          *types.ParsedJobDescription     `json:"parsed_job_description,omitempty"`
	Features           *types.FeatureVector            `json:"features,omitempty"`
}

// parseAnalyzeRequest decodes, validates, and prepares an analysis context
// from the request body. On a bad request it writes the error response and
// returns nil.
func (s *Server) parseAnalyzeRequest(w http.ResponseWriter, r *http.Request) *types.AnalysisContext {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return nil
	}

	opts, err := types.DecodeAnalyzeOptions(req.Options)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid options: "+err.Error())
		return nil
	}

	ac := types.NewAnalysisContext(req.ResumeText, req.JobDescriptionText, opts)

	// Structured documents bypass text parsing; the parsing stage keeps
	// whatever is already on the context.
	if len(req.ResumeJSON) > 0 {
		resume, err := parsing.DecodeResumeJSON(req.ResumeJSON)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume JSON: "+err.Error())
			return nil
		}
		ac.Resume = resume
	}
	if len(req.JobDescriptionJSON) > 0 {
		job, err := parsing.DecodeJobDescriptionJSON(req.JobDescriptionJSON)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid job description JSON: "+err.Error())
			return nil
		}
		ac.JobDescription = job
	}

	return ac
}

// handleAnalyze runs the full pipeline synchronously and returns the result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ac := s.parseAnalyzeRequest(w, r)
	if ac == nil {
		return
	}

	if err := pipeline.Run(r.Context(), ac, pipeline.RunOptions{Logger: s.logger}); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Pipeline failed: "+err.Error())
		return
	}

	s.store.Put(ac)
	s.jsonResponse(w, http.StatusOK, toAnalyzeResponse(ac))
}

// handleAnalyzeStream runs the pipeline while streaming stage progress as
// SSE events, then emits a final complete or error event.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	ac := s.parseAnalyzeRequest(w, r)
	if ac == nil {
		return
	}

	stream, err := newEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := pipeline.RunOptions{
		Logger: s.logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := stream.sendStage(event); err != nil {
				s.logger.Warn("writing SSE event", zap.Error(err))
			}
		},
	}

	if err := pipeline.Run(r.Context(), ac, opts); err != nil {
		stream.sendError(err.Error())
		return
	}

	s.store.Put(ac)
	stream.sendComplete(ac.AnalysisID.String(), ac.Status())
}

// handleGetAnalysis returns a previously stored analysis.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	if _, err := uuid.Parse(idStr); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return
	}

	ac, ok := s.store.Get(idStr)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, toAnalyzeResponse(ac))
}

// ValidateInputsRequest is the request body for /api/v1/validate-inputs.
type ValidateInputsRequest struct {
	ResumeJSON         json.RawMessage `json:"resume_json,omitempty"`
	JobDescriptionJSON json.RawMessage `json:"job_description_json,omitempty"`
}

// DocumentValidation is the per-document outcome of schema validation.
type DocumentValidation struct {
	Valid  bool                 `json:"valid"`
	Errors []schemas.FieldError `json:"errors,omitempty"`
}

// ValidateInputsResponse reports schema validation per submitted document.
type ValidateInputsResponse struct {
	Resume         *DocumentValidation `json:"resume,omitempty"`
	JobDescription *DocumentValidation `json:"job_description,omitempty"`
}

// handleValidateInputs validates documents against their JSON schemas
// without running an analysis.
func (s *Server) handleValidateInputs(w http.ResponseWriter, r *http.Request) {
	var req ValidateInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.ResumeJSON) == 0 && len(req.JobDescriptionJSON) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one of resume_json or job_description_json is required")
		return
	}

	var resp ValidateInputsResponse

	if len(req.ResumeJSON) > 0 {
		validation, err := validateDocument(schemas.ValidateResume, req.ResumeJSON)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Resume = validation
	}
	if len(req.JobDescriptionJSON) > 0 {
		validation, err := validateDocument(schemas.ValidateJobDescription, req.JobDescriptionJSON)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.JobDescription = validation
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// validateDocument maps a schema validation outcome to the API shape. Schema
// load failures are server errors, not document errors.
func validateDocument(validate func([]byte) error, doc json.RawMessage) (*DocumentValidation, error) {
	err := validate(doc)
	if err == nil {
		return &DocumentValidation{Valid: true}, nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return &DocumentValidation{Valid: false, Errors: validationErr.Errors}, nil
	}

	return nil, fmt.Errorf("schema validation unavailable: %v", err)
}

// toAnalyzeResponse shapes a finished analysis for the API, honoring the
// include options recorded on the context.
func toAnalyzeResponse(ac *types.AnalysisContext) AnalyzeResponse {
	resp := AnalyzeResponse{
		AnalysisID:    ac.AnalysisID.String(),
		Status:        ac.Status(),
		StageStatuses: ac.StageStatuses,
		StageTimings:  ac.StageTimings,
		ATS:           ac.ATS,
		Recruiter:     ac.Recruiter,
		Interview:     ac.Interview,
		Score:         ac.Score,
		Explanation:   ac.Explanation,
	}

	if len(ac.StageErrors) > 0 {
		resp.StageErrors = ac.StageErrors
	}
	if ac.Score != nil {
		resp.OverallScore = ac.Score.OverallScore
		resp.StageProbabilities = &ac.Score.StageProbabilities
	}

	if ac.Options.IncludeParsedResume {
		resp.ParsedResume = ac.Resume
	}
	if ac.Options.IncludeParsedJobDescription {
		resp.ParsedJob = ac.JobDescription
	}
	if ac.Options.IncludeFeatureVectors {
		resp.Features = ac.Features
	}

	return resp
}

// extractValidationErrors extracts validation error messages from validator
// errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
