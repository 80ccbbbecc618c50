package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/ingestion"
	"github.com/hirelens/hirelens/internal/observability"
	"github.com/hirelens/hirelens/internal/parsing"
	"github.com/hirelens/hirelens/internal/pipeline"
	"github.com/hirelens/hirelens/internal/schemas"
	"github.com/hirelens/hirelens/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Run the full analysis pipeline on one resume/job pair and emit the
analysis as JSON. Inputs may be plain text, markdown, HTML or structured
JSON documents; JSON documents skip text parsing and enter the pipeline
pre-parsed.`,
	RunE: runAnalyze,
}

var (
	analyzeResume    string
	analyzeJob       string
	analyzeATSType   string
	analyzePersona   string
	analyzeRoleLevel string
	analyzeOutput    string
	analyzeValidate  bool
	analyzeVerbose   bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "path to the resume file (txt, md, html or json)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "path to the job description file (txt, md, html or json)")
	analyzeCmd.Flags().StringVar(&analyzeATSType, "ats-type", "", "ATS profile to simulate (default generic)")
	analyzeCmd.Flags().StringVar(&analyzePersona, "persona", "", "recruiter persona to simulate (default generic)")
	analyzeCmd.Flags().StringVar(&analyzeRoleLevel, "role-level", "", "target role level recorded with the evaluation")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the analysis JSON to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "validate JSON documents against their schemas first")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "print stage progress and result summaries")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := analyzeCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	opts := types.DefaultAnalyzeOptions()
	if analyzeATSType != "" {
		opts.ATSType = analyzeATSType
	}
	if analyzePersona != "" {
		opts.RecruiterPersona = analyzePersona
	}
	if analyzeRoleLevel != "" {
		opts.RoleLevel = analyzeRoleLevel
	}

	resumeText, resumeMeta, err := ingestion.FromFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}
	jobText, jobMeta, err := ingestion.FromFile(analyzeJob)
	if err != nil {
		return fmt.Errorf("failed to ingest job description: %w", err)
	}

	ac, err := newAnalysis(resumeText, resumeMeta, jobText, jobMeta, opts, analyzeValidate)
	if err != nil {
		return err
	}

	// Keep stdout a clean JSON channel: the pipeline logs only when
	// --debug asks for it, and verbose progress goes through OnProgress.
	runOpts := pipeline.RunOptions{Logger: zap.NewNop()}
	if viper.GetBool("logging.debug") {
		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		runOpts.Logger = log
	}
	if analyzeVerbose {
		runOpts.OnProgress = printProgress
	}

	if err := pipeline.Run(context.Background(), ac, runOpts); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if analyzeVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintAnalysisSummary(ac)
		printer.PrintStageTimings(ac)
		printer.PrintTopRisks(ac.Score)
		printer.PrintRecommendations(ac.Explanation)
	}

	payload, err := json.MarshalIndent(ac, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, append(payload, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Analysis written to %s\n", analyzeOutput)
		return nil
	}

	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

// newAnalysis assembles the pipeline context from two ingested documents.
// JSON documents are decoded (and optionally schema-validated) up front so
// the parsing stage keeps them as-is instead of parsing raw text.
func newAnalysis(resumeText string, resumeMeta *ingestion.Metadata, jobText string, jobMeta *ingestion.Metadata, opts types.AnalyzeOptions, validate bool) (*types.AnalysisContext, error) {
	ac := types.NewAnalysisContext(resumeText, jobText, opts)

	if resumeMeta.Format == ingestion.FormatJSON {
		doc := []byte(resumeText)
		if validate {
			if err := schemas.ValidateResume(doc); err != nil {
				return nil, fmt.Errorf("resume failed schema validation: %w", err)
			}
		}
		parsed, err := parsing.DecodeResumeJSON(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode resume JSON: %w", err)
		}
		ac.Resume = parsed
		ac.ResumeText = ""
	}

	if jobMeta.Format == ingestion.FormatJSON {
		doc := []byte(jobText)
		if validate {
			if err := schemas.ValidateJobDescription(doc); err != nil {
				return nil, fmt.Errorf("job description failed schema validation: %w", err)
			}
		}
		parsed, err := parsing.DecodeJobDescriptionJSON(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode job description JSON: %w", err)
		}
		ac.JobDescription = parsed
		ac.JobDescriptionText = ""
	}

	return ac, nil
}

// printProgress writes one line per finished stage in verbose mode. Verbose
// output goes to stderr so stdout stays a clean JSON channel.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func printProgress(event pipeline.ProgressEvent) {
	switch event.Status {
	case types.StageSuccess:
		fmt.Fprintf(os.Stderr, "✓ %-22s %6.3fs  %s\n", event.Stage, event.Elapsed, event.Message)
	case types.StageFailed:
		fmt.Fprintf(os.Stderr, "✗ %-22s %6.3fs  %s\n", event.Stage, event.Elapsed, event.Message)
	}
}
