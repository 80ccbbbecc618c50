// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RequiredFieldsStatus records which mandatory resume fields an ATS screen
// found. AllPresent gates on email, phone and work history; education is
// tracked but deliberately excluded from the gate.
type RequiredFieldsStatus struct {
	Email       bool `json:"email"`
	Phone       bool `json:"phone"`
	WorkHistory bool `json:"work_history"`
	Education   bool `json:"education"`
	AllPresent  bool `json:"all_present"`
}

// HardFilters records pass/fail requirements derived from the feature
// vector. A filter stays unknown when the underlying feature could not be
// computed; AllMet reduces over the known filters only.
type HardFilters struct {
	ExperienceMet     TriState `json:"experience_met"`
	EducationMet      TriState `json:"education_met"`
	CertificationsMet TriState `json:"certifications_met"`
	AllMet            TriState `json:"all_met"`
}

// MatchedKeyword is a single required keyword found in the resume.
type MatchedKeyword struct {
	Keyword  string  `json:"keyword"`
	Location string  `json:"location"`
	Weight   float64 `json:"weight"`
}

// KeywordBreakdown details how the job's required keywords matched against
// the resume. TotalRequired counts duplicates as the job listed them.
type KeywordBreakdown struct {
	Matched       []MatchedKeyword `json:"matched_keywords"`
	Missing       []string         `json:"missing_keywords"`
	TotalRequired int              `json:"total_required"`
	TotalMatched  int              `json:"total_matched"`
}

// ATSResult is the outcome of the ATS screening stage.
type ATSResult struct {
	ATSType                string               `json:"ats_type"`
	RequiredFields         RequiredFieldsStatus `json:"required_fields_status"`
	HardFilters            HardFilters          `json:"hard_filters"`
	Keywords               KeywordBreakdown     `json:"keyword_breakdown"`
	KeywordMatchPercentage float64              `json:"keyword_match_percentage"`
	CompatibilityScore     float64              `json:"compatibility_score"`
	RejectionReasons       []string             `json:"rejection_reasons"`
}
