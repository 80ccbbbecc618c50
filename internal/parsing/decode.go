package parsing

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hirelens/hirelens/internal/types"
)

// DecodeResumeJSON decodes a pre-structured resume document. The decoder
// is tolerant: it accepts "work_experience" or "experience" for the jobs
// array, skips malformed entries with a warning, and fails only on empty
// or invalid JSON.
func DecodeResumeJSON(raw []byte) (*types.ParsedResume, error) {
	doc, err := parseDocument(raw, "resume")
	if err != nil {
		return nil, err
	}

	resume := &types.ParsedResume{
		Name:           doc.Get("name").String(),
		Email:          doc.Get("email").String(),
		Phone:          doc.Get("phone").String(),
		Location:       doc.Get("location").String(),
		WorkExperience: []types.JobRecord{},
		Education:      []types.EducationRecord{},
	}

	jobs := doc.Get("work_experience")
	if !jobs.Exists() {
		jobs = doc.Get("experience")
	}
	for _, item := range jobs.Array() {
		if !item.IsObject() {
			appendWarning(&resume.Warnings, warnMalformedEntry, "work_experience", "Skipped work entry that is not an object", "low")
			continue
		}
		entry := types.JobRecord{
			Title:       item.Get("title").String(),
			Position:    item.Get("position").String(),
			Company:     item.Get("company").String(),
			StartDate:   item.Get("start_date").String(),
			EndDate:     item.Get("end_date").String(),
			Description: item.Get("description").String(),
		}
		for _, achievement := range item.Get("achievements").Array() {
			if text := strings.TrimSpace(achievement.String()); text != "" {
				entry.Achievements = append(entry.Achievements, text)
			}
		}
		resume.WorkExperience = append(resume.WorkExperience, entry)
	}

	for _, item := range doc.Get("education").Array() {
		if !item.IsObject() {
			appendWarning(&resume.Warnings, warnMalformedEntry, "education", "Skipped education entry that is not an object", "low")
			continue
		}
		resume.Education = append(resume.Education, types.EducationRecord{
			Degree:      item.Get("degree").String(),
			Institution: item.Get("institution").String(),
			Field:       item.Get("field").String(),
			Year:        item.Get("year").String(),
		})
	}

	if skills := doc.Get("skills"); skills.Exists() {
		resume.Skills = decodeSkills(skills)
	}

	return resume, nil
}

// DecodeJobDescriptionJSON decodes a pre-structured job description. It
// accepts "title" or "position" for the job title; when no keywords are
// given they are derived from the skill lists.
func DecodeJobDescriptionJSON(raw []byte) (*types.ParsedJobDescription, error) {
	doc, err := parseDocument(raw, "job_description")
	if err != nil {
		return nil, err
	}

	job := &types.ParsedJobDescription{
		Title:             firstString(doc, "title", "position"),
		Company:           doc.Get("company").String(),
		Location:          doc.Get("location").String(),
		RequiredEducation: strings.ToLower(doc.Get("required_education").String()),
		RequiredSkills:    stringList(doc.Get("required_skills")),
		PreferredSkills:   stringList(doc.Get("preferred_skills")),
	}

	job.Keywords = dedupeStrings(stringList(doc.Get("keywords")))
	if len(job.Keywords) == 0 {
		job.Keywords = dedupeStrings(append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...))
	}

	return job, nil
}

func parseDocument(raw []byte, document string) (gjson.Result, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return gjson.Result{}, &ParseError{Document: document, Message: "empty input"}
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &ParseError{Document: document, Message: "invalid JSON"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return gjson.Result{}, &ParseError{Document: document, Message: "top-level value is not an object"}
	}
	return doc, nil
}

func firstString(doc gjson.Result, keys ...string) string {
	for _, key := range keys {
		if value := doc.Get(key); value.Exists() {
			return value.String()
		}
	}
	return ""
}

// decodeSkills accepts either an array of strings or a single
// comma-separated string, deduplicated case-insensitively in input order.
func decodeSkills(skills gjson.Result) []string {
	var tokens []string
	if skills.IsArray() {
		for _, item := range skills.Array() {
			tokens = append(tokens, item.String())
		}
	} else {
		tokens = strings.Split(skills.String(), ",")
	}

	cleaned := []string{}
	seen := make(map[string]bool)
	for _, token := range tokens {
		skill := strings.TrimSpace(token)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, skill)
	}
	return cleaned
}

func stringList(result gjson.Result) []string {
	values := []string{}
	for _, item := range result.Array() {
		if text := strings.TrimSpace(item.String()); text != "" {
			values = append(values, text)
		}
	}
	return values
}

func dedupeStrings(values []string) []string {
	deduped := []string{}
	seen := make(map[string]bool)
	for _, value := range values {
		key := strings.ToLower(value)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, value)
	}
	return deduped
}
