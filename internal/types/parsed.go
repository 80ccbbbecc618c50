// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ParseWarning describes a non-fatal issue found while parsing an input
// document. Warnings degrade confidence but never abort an analysis.
type ParseWarning struct {
	Type     string `json:"type"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// JobRecord is a single work-experience entry in a parsed resume.
// Some document sources label the title field "position"; both are kept
// and EffectiveTitle resolves the preference.
type JobRecord struct {
	Title        string   `json:"title,omitempty"`
	Position     string   `json:"position,omitempty"`
	Company      string   `json:"company,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// EffectiveTitle returns the job title, falling back to the position alias.
func (j JobRecord) EffectiveTitle() string {
	if j.Title != "" {
		return j.Title
	}
	return j.Position
}

// CombinedText joins the description and achievements into one searchable
// blob, used for checking whether listed skills show up in real work.
func (j JobRecord) CombinedText() string {
	parts := make([]string, 0, len(j.Achievements)+1)
	if j.Description != "" {
		parts = append(parts, j.Description)
	}
	parts = append(parts, j.Achievements...)
	return strings.Join(parts, " ")
}

// EducationRecord is a single education entry in a parsed resume.
type EducationRecord struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ParsedResume is the structured form of a resume document. It is produced
// by the parsing adapters and treated as immutable by every evaluator.
//
// A nil Skills slice means the document had no skills section at all; an
// empty non-nil slice means the section existed but was empty. Feature
// extraction distinguishes the two.
type ParsedResume struct {
	Name             string             `json:"name,omitempty"`
	Email            string             `json:"email,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	Location         string             `json:"location,omitempty"`
	WorkExperience   []JobRecord        `json:"work_experience"`
	Education        []EducationRecord  `json:"education"`
	Skills           []string           `json:"skills"`
	ConfidenceScores map[string]float64 `json:"confidence_scores,omitempty"`
	Warnings         []ParseWarning     `json:"warnings,omitempty"`
}

// ParsedJobDescription is the structured form of a job posting. Skill
// lists preserve document order and may contain duplicates; deduplication
// is the consumer's decision.
type ParsedJobDescription struct {
	Title             string             `json:"title,omitempty"`
	Company           string             `json:"company,omitempty"`
	Location          string             `json:"location,omitempty"`
	RequiredSkills    []string           `json:"required_skills"`
	PreferredSkills   []string           `json:"preferred_skills"`
	RequiredEducation string             `json:"required_education,omitempty"`
	Keywords          []string           `json:"keywords,omitempty"`
	ConfidenceScores  map[string]float64 `json:"confidence_scores,omitempty"`
	Warnings          []ParseWarning     `json:"warnings,omitempty"`
}
