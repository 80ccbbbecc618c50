package parsing

import (
	"regexp"
	"strings"

	"github.com/hirelens/hirelens/internal/types"
)

// Skill tokens recognized in job descriptions. Extraction order follows
// this catalog, which keeps results deterministic across runs.
var techKeywords = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node", "django", "flask", "spring", "sql", "postgresql", "mysql",
	"mongodb", "redis", "docker", "kubernetes", "aws", "azure", "gcp",
	"git", "linux", "agile", "scrum", "ci/cd", "rest", "api", "graphql",
	"microservices", "machine learning", "ai", "data science", "pandas",
	"numpy", "tensorflow", "pytorch", "scikit-learn",
}

var techKeywordPatterns = compileKeywordPatterns(techKeywords)

func compileKeywordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, keyword := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return patterns
}

const (
	// Window of text scanned after a requirements or preferences marker.
	keywordWindowRunes = 500

	maxRequiredSkills  = 20
	maxPreferredSkills = 15
)

var requiredSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(required|must have|requirements?|qualifications?):?\s*`),
	regexp.MustCompile(`(?i)\b(must|should)\s+(have|know|be)\b`),
}

var preferredSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(preferred|nice to have|bonus|plus):?\s*`),
	regexp.MustCompile(`(?i)\b(would be nice|helpful|advantageous)\b`),
}

var (
	titleLabelPattern      = regexp.MustCompile(`(?im)^(?:job\s+title|position|role):\s*(.+)$`)
	markdownHeadingPattern = regexp.MustCompile(`(?m)^#+\s*(.+)$`)
	companyLabelPattern    = regexp.MustCompile(`(?im)^company:\s*(.+)$`)
	locationLabelPattern   = regexp.MustCompile(`(?im)^location:\s*(.+)$`)

	degreeRequirementPattern = regexp.MustCompile(`(?i)\b(bachelor|master|mba|ph\.?d|doctorate|associate)(?:'s)?\b`)
)

// ParseJobDescription extracts structured data from raw job posting text.
// Required skills come from the text window following a requirements
// marker, falling back to the whole document; preferred skills never fall
// back. The only error is empty input.
func ParseJobDescription(text string) (*types.ParsedJobDescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Document: "job_description", Message: "empty input"}
	}

	job := &types.ParsedJobDescription{
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		ConfidenceScores: make(map[string]float64),
	}

	if title := extractJobTitle(text); title != "" {
		job.Title = title
		job.ConfidenceScores["title"] = confidenceHeuristic
	} else {
		job.ConfidenceScores["title"] = confidenceAbsent
		appendWarning(&job.Warnings, warnMissingField, "title", "No clear job title found", "medium")
	}

	if company := extractCompany(text, job.Title); company != "" {
		job.Company = company
		job.ConfidenceScores["company"] = confidenceHeuristic
	} else {
		job.ConfidenceScores["company"] = confidenceAbsent
	}

	if match := locationLabelPattern.FindStringSubmatch(text); match != nil {
		job.Location = strings.TrimSpace(match[1])
		job.ConfidenceScores["location"] = confidenceRegex
	} else {
		job.ConfidenceScores["location"] = confidenceAbsent
	}

	if window, ok := markerWindow(text, requiredSectionPatterns); ok {
		job.RequiredSkills = capSkills(extractTechKeywords(window), maxRequiredSkills)
	}
	if len(job.RequiredSkills) == 0 {
		job.RequiredSkills = capSkills(extractTechKeywords(text), maxRequiredSkills)
	}
	if len(job.RequiredSkills) > 0 {
		job.ConfidenceScores["required_skills"] = confidenceHeuristic
	} else {
		job.ConfidenceScores["required_skills"] = confidenceAbsent
		appendWarning(&job.Warnings, warnMissingField, "required_skills", "No required skills extracted", "medium")
	}

	if window, ok := markerWindow(text, preferredSectionPatterns); ok {
		job.PreferredSkills = capSkills(extractTechKeywords(window), maxPreferredSkills)
	}
	if len(job.PreferredSkills) > 0 {
		job.ConfidenceScores["preferred_skills"] = confidenceHeuristic
	} else {
		job.ConfidenceScores["preferred_skills"] = confidenceAbsent
	}

	if match := degreeRequirementPattern.FindStringSubmatch(text); match != nil {
		job.RequiredEducation = strings.ToLower(match[1])
		job.ConfidenceScores["required_education"] = confidenceHeuristic
	}

	job.Keywords = extractTechKeywords(text)
	if len(job.Keywords) == 0 {
		appendWarning(&job.Warnings, warnMissingField, "keywords", "No keywords extracted from job description", "high")
	}

	return job, nil
}

// extractJobTitle takes the first non-empty line when it is short enough
// to plausibly be a title, then falls back to labeled or markdown-heading
// forms.
func extractJobTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) < 100 && (!isAllUpper(trimmed) || len(trimmed) < 50) {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		break
	}

	if match := titleLabelPattern.FindStringSubmatch(text); match != nil {
		if title := strings.TrimSpace(match[1]); title != "" && len(title) < 100 {
			return title
		}
	}
	if match := markdownHeadingPattern.FindStringSubmatch(text); match != nil {
		if title := strings.TrimSpace(match[1]); title != "" && len(title) < 100 {
			return title
		}
	}
	return ""
}

func isAllUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

func extractCompany(text, title string) string {
	if match := companyLabelPattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	if idx := strings.Index(title, " at "); idx > 0 {
		return strings.TrimSpace(title[idx+len(" at "):])
	}
	return ""
}

// markerWindow returns the text window following the first match of any
// marker pattern.
func markerWindow(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, pattern := range patterns {
		if loc := pattern.FindStringIndex(text); loc != nil {
			window := []rune(text[loc[1]:])
			if len(window) > keywordWindowRunes {
				window = window[:keywordWindowRunes]
			}
			return string(window), true
		}
	}
	return "", false
}

// extractTechKeywords returns the catalog keywords found in text, in
// catalog order, each at most once.
func extractTechKeywords(text string) []string {
	lowered := strings.ToLower(text)
	found := []string{}
	for i, pattern := range techKeywordPatterns {
		if pattern.MatchString(lowered) {
			found = append(found, techKeywords[i])
		}
	}
	return found
}

func capSkills(skills []string, limit int) []string {
	if len(skills) > limit {
		return skills[:limit]
	}
	return skills
}
