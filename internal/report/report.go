// Package report renders batch analysis results into xlsx workbooks.
//
// The workbook carries two sheets: Summary holds one line per analyzed
// resume/job pair, Risks flattens every risk factor across all pairs so
// they can be filtered and sorted in a spreadsheet.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/hirelens/hirelens/internal/types"
)

// Sheet names in the generated workbook.
const (
	SummarySheet = "Summary"
	RisksSheet   = "Risks"
)

var summaryHeader = []string{
	"Input",
	"Resume",
	"Job",
	"Status",
	"Overall Score",
	"ATS Score",
	"Recruiter Score",
	"Interview Score",
	"P(ATS Pass)",
	"P(Recruiter Pass)",
	"P(Interview Pass)",
	"P(Offer)",
	"Top Recommendation",
}

var risksHeader = []string{
	"Input",
	"Factor",
	"Stage",
	"Severity",
	"Impact",
	"Description",
}

// Row is one Summary sheet line for a single analyzed pair.
type Row struct {
	Input             string
	ResumeSource      string
	JobSource         string
	Status            string
	OverallScore      float64
	ATSScore          float64
	RecruiterScore    float64
	InterviewScore    float64
	ATSPass           float64
	RecruiterPass     float64
	InterviewPass     float64
	OfferProbability  float64
	TopRecommendation string
	Risks             []Risk
}

// Risk is one flattened risk factor attributed to its input pair.
type Risk struct {
	Factor      string
	Stage       string
	Severity    string
	Impact      float64
	Description string
}

// FromAnalysis flattens a finished analysis into a report row. Results a
// failed stage never produced stay at their zero values so partial runs
// still land in the report.
func FromAnalysis(input, resumeSource, jobSource string, ac *types.AnalysisContext) Row {
	row := Row{
		Input:        input,
		ResumeSource: resumeSource,
		JobSource:    jobSource,
		Status:       ac.Status(),
	}
	if ac.ATS != nil {
		row.ATSScore = ac.ATS.CompatibilityScore
	}
	if ac.Recruiter != nil {
		row.RecruiterScore = ac.Recruiter.EvaluationScore
	}
	if ac.Interview != nil {
		row.InterviewScore = ac.Interview.ReadinessScore
	}
	if ac.Score != nil {
		row.OverallScore = ac.Score.OverallScore
		row.ATSPass = ac.Score.StageProbabilities.ATSPass
		row.RecruiterPass = ac.Score.StageProbabilities.RecruiterPass
		row.InterviewPass = ac.Score.StageProbabilities.InterviewPass
		row.OfferProbability = ac.Score.StageProbabilities.Offer
		for _, rf := range ac.Score.RiskFactors {
			row.Risks = append(row.Risks, Risk{
				Factor:      rf.Factor,
				Stage:       rf.Stage,
				Severity:    string(rf.Severity),
				Impact:      rf.Impact,
				Description: rf.Description,
			})
		}
	}
	if ac.Explanation != nil && len(ac.Explanation.Recommendations) > 0 {
		row.TopRecommendation = ac.Explanation.Recommendations[0].Action
	}
	return row
}

// Write renders rows into an xlsx workbook at path, creating parent
// directories as needed.
func Write(path string, rows []Row) error {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(RisksSheet); err != nil {
		return fmt.Errorf("failed to create risks sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}

	if err := writeSummarySheet(f, rows, headerStyle); err != nil {
		return err
	}
	if err := writeRisksSheet(f, rows, headerStyle); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Read loads both sheets back as raw string grids.
func Read(path string) (summary, risks [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	summary, err = f.GetRows(SummarySheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s sheet: %w", SummarySheet, err)
	}
	risks, err = f.GetRows(RisksSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s sheet: %w", RisksSheet, err)
	}
	return summary, risks, nil
}

func writeSummarySheet(f *excelize.File, rows []Row, headerStyle int) error {
	if err := setRow(f, SummarySheet, 1, headerCells(summaryHeader)); err != nil {
		return err
	}
	for i, row := range rows {
		values := []any{
			row.Input,
			row.ResumeSource,
			row.JobSource,
			row.Status,
			row.OverallScore,
			row.ATSScore,
			row.RecruiterScore,
			row.InterviewScore,
			row.ATSPass,
			row.RecruiterPass,
			row.InterviewPass,
			row.OfferProbability,
			row.TopRecommendation,
		}
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}
	if err := styleHeader(f, SummarySheet, len(summaryHeader), headerStyle); err != nil {
		return err
	}
	widths := []struct {
		start, end string
		width      float64
	}{
		{"A", "C", 28},
		{"D", "D", 22},
		{"E", "L", 15},
		{"M", "M", 48},
	}
	for _, w := range widths {
		if err := f.SetColWidth(SummarySheet, w.start, w.end, w.width); err != nil {
			return fmt.Errorf("failed to size summary columns: %w", err)
		}
	}
	return nil
}

func writeRisksSheet(f *excelize.File, rows []Row, headerStyle int) error {
	if err := setRow(f, RisksSheet, 1, headerCells(risksHeader)); err != nil {
		return err
	}
	rowIdx := 2
	for _, row := range rows {
		for _, risk := range row.Risks {
			values := []any{
				row.Input,
				risk.Factor,
				risk.Stage,
				risk.Severity,
				risk.Impact,
				risk.Description,
			}
			if err := setRow(f, RisksSheet, rowIdx, values); err != nil {
				return err
			}
			rowIdx++
		}
	}
	if err := styleHeader(f, RisksSheet, len(risksHeader), headerStyle); err != nil {
		return err
	}
	widths := []struct {
		start, end string
		width      float64
	}{
		{"A", "B", 28},
		{"C", "C", 22},
		{"D", "E", 12},
		{"F", "F", 60},
	}
	for _, w := range widths {
		if err := f.SetColWidth(RisksSheet, w.start, w.end, w.width); err != nil {
			return fmt.Errorf("failed to size risks columns: %w", err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns, styleID int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to address header cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

func headerCells(header []string) []any {
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}
