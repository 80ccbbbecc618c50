// Package recruiter simulates a recruiter's resume review using
// deterministic rules: career progression, job stability, and resume
// quality checks that surface red flags.
package recruiter

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Red flag types raised during evaluation.
const (
	FlagJobHopping       = "job_hopping"
	FlagEmploymentGap    = "employment_gap"
	FlagGenericResume    = "generic_resume"
	FlagFormattingIssues = "formatting_issues"
)

// Thresholds for resume quality checks.
const (
	shortResumeWords = 200
	longResumeWords  = 1500
)

// assumedTenureMonths stands in for real tenure when dates cannot be
// parsed. Start/end dates are opaque strings, so tenure math is a
// documented limitation; the penalty rules below still run against the
// assumed value.
const assumedTenureMonths = 24.0

// Evaluation score deductions per red flag severity.
var flagDeductions = map[types.Severity]float64{
	types.SeverityCritical: 20.0,
	types.SeverityHigh:     10.0,
	types.SeverityMedium:   5.0,
	types.SeverityLow:      2.0,
}

// Evaluate reviews a resume the way a screening recruiter would: it scores
// career progression and job stability, flags quality concerns, and folds
// everything into an evaluation score on a 0-100 scale.
func Evaluate(resume *types.ParsedResume, features *types.FeatureVector, persona string) types.RecruiterResult {
	result := types.RecruiterResult{Persona: persona}

	result.CareerProgression = analyzeCareerProgression(resume)
	result.CareerProgressionScore = careerProgressionScore(result.CareerProgression)

	result.JobStability = analyzeJobStability(resume)
	result.JobStabilityScore = jobStabilityScore(result.JobStability, &result)

	checkResumeQuality(resume, features, &result)

	result.EvaluationScore = evaluationScore(result.CareerProgressionScore, result.JobStabilityScore, result.RedFlags)

	return result
}

// analyzeCareerProgression inspects the title sequence across work history.
// Fewer than two entries is not enough signal to classify a trajectory.
func analyzeCareerProgression(resume *types.ParsedResume) types.CareerProgressionAnalysis {
	analysis := types.CareerProgressionAnalysis{Trajectory: types.TrajectoryInsufficientData}

	work := resume.WorkExperience
	if len(work) < 2 {
		return analysis
	}

	var titles []string
	for _, job := range work {
		if title := job.EffectiveTitle(); title != "" {
			titles = append(titles, title)
		}
	}
	analysis.TitleProgression = titles

	// Title-hierarchy parsing is not implemented; any title change counts
	// as potential progression.
	if len(titles) >= 2 {
		promotions := len(titles) - 1
		if promotions > 0 {
			analysis.Promotions = &promotions
		}

		unique := make(map[string]bool, len(titles))
		for _, title := range titles {
			unique[title] = true
		}
		switch {
		case len(unique) == len(titles):
			analysis.Trajectory = types.TrajectoryUpward
		case len(unique) == 1:
			analysis.Trajectory = types.TrajectoryLateral
		default:
			analysis.Trajectory = types.TrajectoryMixed
		}
	}

	analysis.ResponsibilityIncrease = len(work) > 1

	return analysis
}

// careerProgressionScore maps the trajectory analysis onto [0,1].
func careerProgressionScore(analysis types.CareerProgressionAnalysis) float64 {
	if analysis.Trajectory == types.TrajectoryInsufficientData {
		return 0.5
	}

	score := 0.5
	switch analysis.Trajectory {
	case types.TrajectoryUpward:
		score += 0.3
	case types.TrajectoryMixed:
		score += 0.1
	case types.TrajectoryDownward:
		score -= 0.2
	}

	if analysis.Promotions != nil && *analysis.Promotions > 0 {
		score += math.Min(0.2, float64(*analysis.Promotions)*0.05)
	}

	if analysis.ResponsibilityIncrease {
		score += 0.1
	}

	return clamp01(score)
}

// analyzeJobStability summarizes tenure patterns. Dates are opaque, so any
// work history gets the assumed average tenure with no short stints or gaps
// detected; the shape stays full so the penalty rules keep working once
// real date spans land.
func analyzeJobStability(resume *types.ParsedResume) types.JobStabilityAnalysis {
	if len(resume.WorkExperience) == 0 {
		return types.JobStabilityAnalysis{}
	}
	return types.JobStabilityAnalysis{AvgTenureMonths: assumedTenureMonths}
}

// jobStabilityScore scores stability on [0,1] and raises red flags for
// tenure and gap concerns.
func jobStabilityScore(analysis types.JobStabilityAnalysis, result *types.RecruiterResult) float64 {
	score := 1.0

	if analysis.AvgTenureMonths < 12.0 {
		penalty := (12.0 - analysis.AvgTenureMonths) / 12.0
		score -= math.Min(0.4, penalty*0.4)

		severity := types.SeverityMedium
		if analysis.AvgTenureMonths < 6.0 {
			severity = types.SeverityHigh
		}
		result.RedFlags = append(result.RedFlags, types.RedFlag{
			Type:        FlagJobHopping,
			Severity:    severity,
			Description: fmt.Sprintf("Average job tenure is %.1f months, indicating potential job hopping pattern.", analysis.AvgTenureMonths),
			Evidence:    fmt.Sprintf("Average tenure: %.1f months", analysis.AvgTenureMonths),
		})
	}

	if analysis.ShortTenureCount > 0 {
		score -= math.Min(0.3, float64(analysis.ShortTenureCount)*0.1)

		severity := types.SeverityHigh
		if analysis.ShortTenureCount == 1 {
			severity = types.SeverityMedium
		}
		result.RedFlags = append(result.RedFlags, types.RedFlag{
			Type:        FlagJobHopping,
			Severity:    severity,
			Description: fmt.Sprintf("%d job(s) with tenure less than 12 months.", analysis.ShortTenureCount),
			Evidence:    fmt.Sprintf("Short tenure jobs: %d", analysis.ShortTenureCount),
		})
	}

	if len(analysis.EmploymentGaps) > 0 {
		totalGapMonths := 0.0
		for _, gap := range analysis.EmploymentGaps {
			totalGapMonths += gap.DurationMonths
		}
		if totalGapMonths > 6.0 {
			score -= math.Min(0.3, (totalGapMonths-6.0)/12.0)

			severity := types.SeverityMedium
			if totalGapMonths > 12.0 {
				severity = types.SeverityHigh
			}
			result.RedFlags = append(result.RedFlags, types.RedFlag{
				Type:        FlagEmploymentGap,
				Severity:    severity,
				Description: fmt.Sprintf("Employment gap(s) totaling %.1f months detected.", totalGapMonths),
				Evidence:    fmt.Sprintf("Total gap duration: %.1f months", totalGapMonths),
			})
		}
	}

	return clamp01(score)
}

// checkResumeQuality flags resumes that are too thin, too long, or carry no
// quantifiable achievements.
func checkResumeQuality(resume *types.ParsedResume, features *types.FeatureVector, result *types.RecruiterResult) {
	resumeLength := 0
	if features.Quantitative.ResumeLengthWords != nil {
		resumeLength = *features.Quantitative.ResumeLengthWords
	}

	if resumeLength < shortResumeWords {
		result.RedFlags = append(result.RedFlags, types.RedFlag{
			Type:        FlagGenericResume,
			Severity:    types.SeverityMedium,
			Description: "Resume is very short, may lack detail or appear generic.",
			Evidence:    fmt.Sprintf("Resume length: %d words", resumeLength),
		})
	} else if resumeLength > longResumeWords {
		result.RedFlags = append(result.RedFlags, types.RedFlag{
			Type:        FlagFormattingIssues,
			Severity:    types.SeverityLow,
			Description: "Resume is very long, may be difficult to scan quickly.",
			Evidence:    fmt.Sprintf("Resume length: %d words", resumeLength),
		})
	}

	achievements := 0
	for _, job := range resume.WorkExperience {
		achievements += len(job.Achievements)
		if job.Description != "" && strings.ContainsAny(job.Description, "0123456789") {
			achievements++
		}
	}

	if achievements == 0 {
		result.RedFlags = append(result.RedFlags, types.RedFlag{
			Type:        FlagGenericResume,
			Severity:    types.SeverityMedium,
			Description: "Resume lacks quantifiable achievements or metrics.",
			Evidence:    "No achievements with metrics detected",
		})
	}
}

// evaluationScore folds progression, stability, and red flags into the
// final 0-100 recruiter score.
func evaluationScore(progression, stability float64, flags []types.RedFlag) float64 {
	score := 100.0

	if progression < 0.5 {
		score -= (0.5 - progression) * 30.0
	}
	if stability < 0.5 {
		score -= (0.5 - stability) * 40.0
	}

	for _, flag := range flags {
		score -= flagDeductions[flag.Severity]
	}

	return math.Round(math.Max(0.0, math.Min(100.0, score))*100) / 100
}

func clamp01(value float64) float64 {
	return math.Max(0.0, math.Min(1.0, value))
}
