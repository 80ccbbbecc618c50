// Package parsing turns raw resume and job-description documents into the
// structured form the evaluators consume. Deterministic regex and section
// heuristics handle plain text; tolerant gjson decoders handle
// pre-structured JSON documents. Parsers fail only on unusable input:
// anything merely missing becomes a warning plus a zero confidence score.
package parsing

import (
	"regexp"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Confidence levels recorded per extracted field.
const (
	confidenceRegex     = 1.0
	confidenceHeuristic = 0.6
	confidenceAbsent    = 0.0
)

// Warning types.
const (
	warnMissingField   = "missing_field"
	warnMissingSection = "missing_section"
	warnLowConfidence  = "low_confidence"
	warnMalformedEntry = "malformed_entry"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Phone formats, most specific first: international with country code,
	// US parenthesized, plain separated or unseparated ten digits.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	}

	urlPattern      = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	locationPattern = regexp.MustCompile(`^[A-Z][A-Za-z .'-]+,\s*(?:[A-Z]{2}|[A-Z][A-Za-z .'-]+)$`)

	bulletLinePattern = regexp.MustCompile(`^\s*[-•*]\s*`)

	dateToken        = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`
	dateRangePattern = regexp.MustCompile(`(?i)(` + dateToken + `)\s*(?:-|–|—|to|through)\s*(` + dateToken + `|present|current|now)`)

	degreePattern      = regexp.MustCompile(`(?i)\b(bachelor|master|mba|ph\.?d|doctorate|associate|b\.?sc?|m\.?sc?|b\.?a|m\.?a)\b`)
	institutionPattern = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy)\b`)
	fieldOfStudyPattern = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z &/-]{2,60})`)
)

// Resume section headers, matched against whole trimmed lines.
var resumeSectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"experience", regexp.MustCompile(`(?i)^(work\s+experience|professional\s+experience|employment(\s+history)?|work\s+history|experience)\s*:?$`)},
	{"education", regexp.MustCompile(`(?i)^(education|academic\s+background|qualifications)\s*:?$`)},
	{"skills", regexp.MustCompile(`(?i)^(technical\s+skills?|core\s+competencies|competencies|skills?|expertise)\s*:?$`)},
}

// Headers for sections this parser recognizes but does not extract; their
// content must not leak into the section parsed before them.
var otherSectionPattern = regexp.MustCompile(`(?i)^(projects?|portfolio|certifications?|licenses?|summary|objective|profile|awards?|honors?|publications?|interests?|activities|references?|contact(\s+information)?|languages?)\s*:?$`)

// ParseResume extracts structured data from raw resume text. It never
// fails on incomplete documents: missing contact fields and sections are
// reported through ConfidenceScores and Warnings. The only error is empty
// input.
func ParseResume(text string) (*types.ParsedResume, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Document: "resume", Message: "empty input"}
	}

	resume := &types.ParsedResume{
		WorkExperience:   []types.JobRecord{},
		Education:        []types.EducationRecord{},
		ConfidenceScores: make(map[string]float64),
	}

	parseResumeContact(text, resume)

	sections := splitResumeSections(text)
	parseExperienceSection(sections["experience"], resume)
	parseEducationSection(sections["education"], resume)
	parseSkillsSection(sections["skills"], resume)

	return resume, nil
}

func parseResumeContact(text string, resume *types.ParsedResume) {
	if email := emailPattern.FindString(text); email != "" {
		resume.Email = email
		resume.ConfidenceScores["email"] = confidenceRegex
	} else {
		resume.ConfidenceScores["email"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnMissingField, "email", "Email address not found in resume", "high")
	}

	if phone := findPhone(text); phone != "" {
		resume.Phone = phone
		resume.ConfidenceScores["phone"] = confidenceRegex
	} else {
		resume.ConfidenceScores["phone"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnMissingField, "phone", "Phone number not found in resume", "medium")
	}

	lines := strings.Split(text, "\n")
	if name := extractName(lines); name != "" {
		resume.Name = name
		resume.ConfidenceScores["name"] = confidenceHeuristic
	} else {
		resume.ConfidenceScores["name"] = confidenceAbsent
	}

	if location := extractLocation(lines); location != "" {
		resume.Location = location
		resume.ConfidenceScores["location"] = confidenceHeuristic
	} else {
		resume.ConfidenceScores["location"] = confidenceAbsent
	}
}

func findPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// extractName takes the first non-empty line as the candidate name unless
// it reads as contact data or a section header.
func extractName(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 60 {
			return ""
		}
		if emailPattern.MatchString(trimmed) || findPhone(trimmed) != "" || urlPattern.MatchString(trimmed) {
			return ""
		}
		if resumeSectionName(trimmed) != "" || otherSectionPattern.MatchString(trimmed) {
			return ""
		}
		return trimmed
	}
	return ""
}

// extractLocation looks for a "City, Region" shaped line in the contact
// block at the top of the document.
func extractLocation(lines []string) string {
	inspected := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		inspected++
		if inspected > 5 {
			return ""
		}
		if emailPattern.MatchString(trimmed) || findPhone(trimmed) != "" {
			continue
		}
		if locationPattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

type resumeSection struct {
	present bool
	lines   []string
}

func resumeSectionName(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 40 {
		return ""
	}
	for _, header := range resumeSectionPatterns {
		if header.pattern.MatchString(trimmed) {
			return header.name
		}
	}
	return ""
}

func splitResumeSections(text string) map[string]*resumeSection {
	sections := map[string]*resumeSection{
		"experience": {},
		"education":  {},
		"skills":     {},
	}

	var current *resumeSection
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if name := resumeSectionName(trimmed); name != "" {
			current = sections[name]
			current.present = true
			continue
		}
		if len(trimmed) <= 40 && otherSectionPattern.MatchString(trimmed) {
			current = nil
			continue
		}
		if current != nil {
			current.lines = append(current.lines, line)
		}
	}
	return sections
}

func parseExperienceSection(sec *resumeSection, resume *types.ParsedResume) {
	if !sec.present {
		resume.ConfidenceScores["work_experience"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnMissingSection, "experience", "No experience section detected", "medium")
		return
	}

	for _, block := range splitBlocks(sec.lines) {
		if entry, ok := parseWorkBlock(block); ok {
			resume.WorkExperience = append(resume.WorkExperience, entry)
		}
	}

	if len(resume.WorkExperience) == 0 {
		resume.ConfidenceScores["work_experience"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnLowConfidence, "experience", "Experience section found but no entries could be parsed", "low")
		return
	}
	resume.ConfidenceScores["work_experience"] = confidenceHeuristic
}

// splitBlocks groups consecutive non-blank lines.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// Separators between a job title and an employer on the same line.
var titleCompanySeparators = []string{" at ", " @ ", " | ", " — ", " – ", " - ", ", "}

func parseWorkBlock(block []string) (types.JobRecord, bool) {
	var entry types.JobRecord
	var plain []string

	for _, line := range block {
		if bulletLinePattern.MatchString(line) {
			bullet := strings.TrimSpace(bulletLinePattern.ReplaceAllString(line, ""))
			if bullet != "" {
				entry.Achievements = append(entry.Achievements, bullet)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if entry.StartDate == "" {
			if loc := dateRangePattern.FindStringSubmatchIndex(trimmed); loc != nil {
				entry.StartDate = trimmed[loc[2]:loc[3]]
				entry.EndDate = trimmed[loc[4]:loc[5]]
				residue := strings.TrimSpace(trimmed[:loc[0]] + " " + trimmed[loc[1]:])
				residue = strings.Trim(residue, " \t|,()-–—")
				if residue != "" {
					plain = append(plain, residue)
				}
				continue
			}
		}
		plain = append(plain, trimmed)
	}

	if len(plain) > 0 {
		entry.Title, entry.Company = splitTitleCompany(plain[0])
		rest := plain[1:]
		if entry.Company == "" && len(rest) > 0 && looksLikeCompany(rest[0]) {
			entry.Company = rest[0]
			rest = rest[1:]
		}
		entry.Description = strings.Join(rest, " ")
	}

	ok := entry.Title != "" || entry.Company != "" || entry.StartDate != "" || len(entry.Achievements) > 0
	return entry, ok
}

func splitTitleCompany(line string) (title, company string) {
	for _, sep := range titleCompanySeparators {
		if idx := strings.Index(line, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

// looksLikeCompany guesses whether a line names an employer rather than
// starting the prose description: short and not sentence-shaped.
func looksLikeCompany(line string) bool {
	if len(line) > 60 || strings.HasSuffix(line, ".") {
		return false
	}
	return len(strings.Fields(line)) <= 6
}

func parseEducationSection(sec *resumeSection, resume *types.ParsedResume) {
	if !sec.present {
		resume.ConfidenceScores["education"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnMissingSection, "education", "No education section detected", "medium")
		return
	}

	for _, block := range splitBlocks(sec.lines) {
		if record, ok := parseEducationBlock(block); ok {
			resume.Education = append(resume.Education, record)
		}
	}

	if len(resume.Education) == 0 {
		resume.ConfidenceScores["education"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnLowConfidence, "education", "Education section found but no entries could be parsed", "low")
		return
	}
	resume.ConfidenceScores["education"] = confidenceHeuristic
}

func parseEducationBlock(block []string) (types.EducationRecord, bool) {
	var record types.EducationRecord

	for _, line := range block {
		trimmed := strings.TrimSpace(bulletLinePattern.ReplaceAllString(line, ""))
		if trimmed == "" {
			continue
		}

		if record.Year == "" {
			if year := yearPattern.FindString(trimmed); year != "" {
				record.Year = year
			}
		}

		switch {
		case record.Degree == "" && degreePattern.MatchString(trimmed):
			record.Degree = trimmed
			if match := fieldOfStudyPattern.FindStringSubmatch(trimmed); match != nil {
				record.Field = strings.TrimSpace(match[1])
			}
		case record.Institution == "" && institutionPattern.MatchString(trimmed):
			record.Institution = trimmed
		}
	}

	ok := record.Degree != "" || record.Institution != ""
	return record, ok
}

func parseSkillsSection(sec *resumeSection, resume *types.ParsedResume) {
	if !sec.present {
		resume.ConfidenceScores["skills"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnMissingSection, "skills", "No skills section detected", "medium")
		return
	}

	resume.Skills = []string{}
	seen := make(map[string]bool)
	for _, line := range sec.lines {
		cleaned := bulletLinePattern.ReplaceAllString(line, "")
		// Category prefixes like "Languages:" are labels, not skills.
		if idx := strings.Index(cleaned, ":"); idx >= 0 && idx < 30 {
			cleaned = cleaned[idx+1:]
		}
		for _, token := range strings.FieldsFunc(cleaned, isSkillSeparator) {
			skill := strings.TrimSpace(token)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			resume.Skills = append(resume.Skills, skill)
		}
	}

	if len(resume.Skills) == 0 {
		resume.ConfidenceScores["skills"] = confidenceAbsent
		appendWarning(&resume.Warnings, warnLowConfidence, "skills", "Skills section found but empty", "low")
		return
	}
	resume.ConfidenceScores["skills"] = confidenceHeuristic
}

func isSkillSeparator(r rune) bool {
	return r == ',' || r == '|' || r == ';' || r == '•'
}

func appendWarning(warnings *[]types.ParseWarning, warnType, field, message, severity string) {
	*warnings = append(*warnings, types.ParseWarning{
		Type:     warnType,
		Field:    field,
		Message:  message,
		Severity: severity,
	})
}
