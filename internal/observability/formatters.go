// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// funnelBarSlots is the resolution of the probability bars
	funnelBarSlots = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysisSummary outputs the stage scores and the hiring funnel for
// a finished analysis.
func (p *Printer) PrintAnalysisSummary(ac *types.AnalysisContext) {
	if ac == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analysis: %s\n", ac.AnalysisID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", ac.Status()))
	sb.WriteString("\n")

	if ac.Score != nil {
		sb.WriteString(fmt.Sprintf("Overall Score:    %.1f / 100\n", ac.Score.OverallScore))
	}
	if ac.ATS != nil {
		sb.WriteString(fmt.Sprintf("ATS Score:        %.1f\n", ac.ATS.CompatibilityScore))
	}
	if ac.Recruiter != nil {
		sb.WriteString(fmt.Sprintf("Recruiter Score:  %.1f\n", ac.Recruiter.EvaluationScore))
	}
	if ac.Interview != nil {
		sb.WriteString(fmt.Sprintf("Interview Score:  %.1f\n", ac.Interview.ReadinessScore))
	}

	if ac.Score != nil {
		probs := ac.Score.StageProbabilities
		sb.WriteString("\n")
		sb.WriteString("Hiring Funnel:\n")
		sb.WriteString(fmt.Sprintf("  %-16s %s %3.0f%%\n", "ATS screen", funnelBar(probs.ATSPass), probs.ATSPass*100))
		sb.WriteString(fmt.Sprintf("  %-16s %s %3.0f%%\n", "Recruiter review", funnelBar(probs.RecruiterPass), probs.RecruiterPass*100))
		sb.WriteString(fmt.Sprintf("  %-16s %s %3.0f%%\n", "Interview", funnelBar(probs.InterviewPass), probs.InterviewPass*100))
		sb.WriteString(fmt.Sprintf("  %-16s %s %3.0f%%\n", "Offer", funnelBar(probs.Offer), probs.Offer*100))
	}

	p.printBox("ANALYSIS SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStageTimings outputs per-stage status and elapsed time in
// execution order. Stages that never ran are skipped.
func (p *Printer) PrintStageTimings(ac *types.AnalysisContext) {
	if ac == nil || len(ac.StageTimings) == 0 {
		return
	}

	var sb strings.Builder
	var total float64
	for _, stage := range types.StageOrder {
		seconds, ok := ac.StageTimings[stage]
		if !ok {
			continue
		}
		marker := "✓"
		if ac.StageStatuses[stage] == types.StageFailed {
			marker = "✗"
		}
		total += seconds
		sb.WriteString(fmt.Sprintf("%s %-22s %8.3fs\n", marker, stage, seconds))
	}
	sb.WriteString(fmt.Sprintf("  %-22s %8.3fs", "total", total))

	p.printBox("STAGE TIMINGS", sb.String())
}

// PrintTopRisks outputs the highest-impact risk factors. The scoring
// stage ranks them most damaging first, so the first entries are the top.
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) PrintTopRisks(score *types.AggregatedScore) {
	if score == nil {
		return
	}
	if len(score.RiskFactors) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RISK FACTORS IDENTIFIED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d risk factors:\n\n", len(score.RiskFactors)))

	count := min(len(score.RiskFactors), maxItemsToShow)
	for i := 0; i < count; i++ {
		risk := score.RiskFactors[i]
		factor := risk.Factor
		if len(factor) > 45 {
			factor = factor[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", factor))
		description := risk.Description
		if len(description) > 50 {
			description = description[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", description))
		sb.WriteString(fmt.Sprintf("  %s severity, impact %.2f (%s)\n", risk.Severity, risk.Impact, risk.Stage))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(score.RiskFactors) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more risk factors\n", len(score.RiskFactors)-maxItemsToShow))
	}

	p.printBox("TOP RISK FACTORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the top prioritized recommendations with
// their expected impact.
func (p *Printer) PrintRecommendations(artifact *types.ExplainabilityArtifact) {
	if artifact == nil || len(artifact.Recommendations) == 0 {
		return
	}

	var sb strings.Builder

	count := min(len(artifact.Recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := artifact.Recommendations[i]
		action := rec.Action
		if len(action) > 50 {
			action = action[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d [%s] %s\n", i+1, rec.Priority, action))
		if rec.Impact != "" {
			impact := rec.Impact
			if len(impact) > 50 {
				impact = impact[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", impact))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(artifact.Recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more recommendations\n", len(artifact.Recommendations)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// funnelBar renders a fixed-width bar for a probability in [0, 1].
func funnelBar(prob float64) string {
	if prob < 0 {
		prob = 0
	}
	if prob > 1 {
		prob = 1
	}
	filled := int(prob*funnelBarSlots + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", funnelBarSlots-filled)
}
