// Package pipeline orchestrates the candidate analysis stages: parsing,
// feature extraction, the three gate evaluators, score aggregation, and
// explainability. A failing stage records its error on the context and the
// run continues; downstream stages decide for themselves whether they can
// still produce output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/ats"
	"github.com/hirelens/hirelens/internal/explain"
	"github.com/hirelens/hirelens/internal/features"
	"github.com/hirelens/hirelens/internal/interview"
	"github.com/hirelens/hirelens/internal/parsing"
	"github.com/hirelens/hirelens/internal/pipeline/stages"
	"github.com/hirelens/hirelens/internal/recruiter"
	"github.com/hirelens/hirelens/internal/scoring"
	"github.com/hirelens/hirelens/internal/types"
)

// ProgressEvent describes a stage transition during a pipeline run.
type ProgressEvent struct {
	AnalysisID string  `json:"analysis_id"`
	Stage      string  `json:"stage"`
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
	Elapsed    float64 `json:"elapsed_seconds,omitempty"`
}

// ProgressCallback receives progress events as stages start and finish.
type ProgressCallback func(event ProgressEvent)

// RunOptions configures a pipeline run.
type RunOptions struct {
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// stageFunc executes one stage against the context and returns a short
// human-readable completion message.
type stageFunc func(ac *types.AnalysisContext) (string, error)

var stageFuncs = map[string]stageFunc{
	types.StageParsing:            runParsing,
	types.StageFeatureExtraction:  runFeatureExtraction,
	types.StageATSSimulation:      runATSSimulation,
	types.StageRecruiterEval:      runRecruiterEvaluation,
	types.StageInterviewReadiness: runInterviewReadiness,
	types.StageScoring:            runScoring,
	types.StageExplainability:     runExplainability,
}

// Run executes every stage of the analysis pipeline against the context.
// Stages run to completion once started; the context parameter is accepted
// for interface symmetry with callers that manage timeouts around the run.
// Stage failures never abort the run. The only error Run returns is an
// invalid stage order.
func Run(_ context.Context, ac *types.AnalysisContext, opts RunOptions) error {
	if err := stages.ValidateOrder(types.StageOrder); err != nil {
		return err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, name := range types.StageOrder {
		runStage(ac, name, opts, logger)
	}

	return nil
}

func runStage(ac *types.AnalysisContext, name string, opts RunOptions, logger *zap.Logger) {
	category := stages.Category(name)

	ac.StageStatuses[name] = types.StageRunning
	emitProgress(opts, ProgressEvent{
		AnalysisID: ac.AnalysisID.String(),
		Stage:      name,
		Category:   category,
		Status:     types.StageRunning,
	})

	start := time.Now()
	message, err := stageFuncs[name](ac)
	elapsed := time.Since(start).Seconds()
	ac.StageTimings[name] = elapsed

	if err != nil {
		ac.StageStatuses[name] = types.StageFailed
		ac.StageErrors[name] = err.Error()
		logger.Warn("pipeline stage failed",
			zap.String("analysis_id", ac.AnalysisID.String()),
			zap.String("stage", name),
			zap.Float64("elapsed_seconds", elapsed),
			zap.Error(err),
		)
		emitProgress(opts, ProgressEvent{
			AnalysisID: ac.AnalysisID.String(),
			Stage:      name,
			Category:   category,
			Status:     types.StageFailed,
			Message:    err.Error(),
			Elapsed:    elapsed,
		})
		return
	}

	ac.StageStatuses[name] = types.StageSuccess
	logger.Info("pipeline stage completed",
		zap.String("analysis_id", ac.AnalysisID.String()),
		zap.String("stage", name),
		zap.String("message", message),
		zap.Float64("elapsed_seconds", elapsed),
	)
	emitProgress(opts, ProgressEvent{
		AnalysisID: ac.AnalysisID.String(),
		Stage:      name,
		Category:   category,
		Status:     types.StageSuccess,
		Message:    message,
		Elapsed:    elapsed,
	})
}

func emitProgress(opts RunOptions, event ProgressEvent) {
	if opts.OnProgress == nil {
		return
	}
	opts.OnProgress(event)
}

// runParsing fills the parsed documents. Pre-decoded documents supplied by
// the caller (structured JSON inputs) are kept as-is.
func runParsing(ac *types.AnalysisContext) (string, error) {
	if ac.Resume == nil {
		resume, err := parsing.ParseResume(ac.ResumeText)
		if err != nil {
			return "", err
		}
		ac.Resume = resume
	}
	if ac.JobDescription == nil {
		job, err := parsing.ParseJobDescription(ac.JobDescriptionText)
		if err != nil {
			return "", err
		}
		ac.JobDescription = job
	}

	return fmt.Sprintf("Parsed resume (%d jobs, %d skills) and job description (%d required skills)",
		len(ac.Resume.WorkExperience), len(ac.Resume.Skills), len(ac.JobDescription.RequiredSkills)), nil
}

func runFeatureExtraction(ac *types.AnalysisContext) (string, error) {
	if ac.Resume == nil || ac.JobDescription == nil {
		return "", errors.New("parsed resume or job description unavailable")
	}

	vector := features.Extract(ac.Resume, ac.JobDescription)
	ac.Features = &vector

	computed := len(vector.ComputationMethods)
	total := computed + len(vector.MissingFeatures)
	return fmt.Sprintf("Computed %d of %d features", computed, total), nil
}

func runATSSimulation(ac *types.AnalysisContext) (string, error) {
	switch {
	case ac.Resume == nil || ac.JobDescription == nil:
		return "", errors.New("parsed resume or job description unavailable")
	case ac.Features == nil:
		return "", errors.New("feature vector unavailable")
	}

	result := ats.Simulate(ac.Resume, ac.JobDescription, ac.Features, ac.Options.ATSType)
	ac.ATS = &result

	return fmt.Sprintf("ATS compatibility %.1f/100 (%d rejection reasons)",
		result.CompatibilityScore, len(result.RejectionReasons)), nil
}

func runRecruiterEvaluation(ac *types.AnalysisContext) (string, error) {
	switch {
	case ac.Resume == nil:
		return "", errors.New("parsed resume unavailable")
	case ac.Features == nil:
		return "", errors.New("feature vector unavailable")
	}

	result := recruiter.Evaluate(ac.Resume, ac.Features, ac.Options.RecruiterPersona)
	ac.Recruiter = &result

	return fmt.Sprintf("Recruiter evaluation %.1f/100 (%d red flags)",
		result.EvaluationScore, len(result.RedFlags)), nil
}

func runInterviewReadiness(ac *types.AnalysisContext) (string, error) {
	switch {
	case ac.Resume == nil:
		return "", errors.New("parsed resume unavailable")
	case ac.Features == nil:
		return "", errors.New("feature vector unavailable")
	}

	result := interview.Evaluate(ac.Resume, ac.Features)
	ac.Interview = &result

	return fmt.Sprintf("Interview readiness %.1f/100 (%d claims, %d risks)",
		result.ReadinessScore, len(result.ResumeClaims), len(result.ConsistencyRisks)), nil
}

// runScoring aggregates whatever gate results exist. A missing gate result
// is scored as a zero-valued one so a partial run still yields an overall
// picture; the fabricated zero result is never written back to the context.
func runScoring(ac *types.AnalysisContext) (string, error) {
	atsResult := ac.ATS
	if atsResult == nil {
		atsResult = &types.ATSResult{}
	}
	recruiterResult := ac.Recruiter
	if recruiterResult == nil {
		recruiterResult = &types.RecruiterResult{}
	}
	interviewResult := ac.Interview
	if interviewResult == nil {
		interviewResult = &types.InterviewReadinessResult{}
	}

	score := scoring.Aggregate(atsResult, recruiterResult, interviewResult)
	ac.Score = &score

	return fmt.Sprintf("Overall score %.1f/100, offer probability %.2f",
		score.OverallScore, score.StageProbabilities.Offer), nil
}

func runExplainability(ac *types.AnalysisContext) (string, error) {
	if ac.Score == nil {
		return "", errors.New("aggregated score unavailable")
	}

	// Explain over a local view so zero-valued stand-ins for missing gate
	// results never leak into the stored context.
	view := *ac
	if view.ATS == nil {
		view.ATS = &types.ATSResult{}
	}
	if view.Recruiter == nil {
		view.Recruiter = &types.RecruiterResult{}
	}
	if view.Interview == nil {
		view.Interview = &types.InterviewReadinessResult{}
	}

	artifact := explain.Build(&view)
	ac.Explanation = &artifact

	return fmt.Sprintf("%d recommendations, %d counterfactuals",
		len(artifact.Recommendations), len(artifact.Counterfactuals)), nil
}
