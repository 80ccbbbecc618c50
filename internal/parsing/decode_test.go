package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResumeJSON_FullDocument(t *testing.T) {
	raw := []byte(`{
		"name": "Jane Smith",
		"email": "jane@example.com",
		"phone": "555-123-4567",
		"location": "Austin, TX",
		"work_experience": [
			{
				"title": "Engineer",
				"company": "Acme",
				"start_date": "2020",
				"end_date": "present",
				"description": "Built internal services.",
				"achievements": ["Shipped v2", "  "]
			},
			"not an object"
		],
		"education": [
			{"degree": "BSc Computer Science", "institution": "UT Austin", "year": 2016}
		],
		"skills": ["Go", "go", " Python "]
	}`)

	resume, err := DecodeResumeJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", resume.Name)
	assert.Equal(t, "jane@example.com", resume.Email)
	assert.Equal(t, "555-123-4567", resume.Phone)
	assert.Equal(t, "Austin, TX", resume.Location)

	require.Len(t, resume.WorkExperience, 1)
	entry := resume.WorkExperience[0]
	assert.Equal(t, "Engineer", entry.Title)
	assert.Equal(t, "Acme", entry.Company)
	assert.Equal(t, "2020", entry.StartDate)
	assert.Equal(t, "present", entry.EndDate)
	assert.Equal(t, []string{"Shipped v2"}, entry.Achievements)

	require.Len(t, resume.Education, 1)
	assert.Equal(t, "BSc Computer Science", resume.Education[0].Degree)
	assert.Equal(t, "UT Austin", resume.Education[0].Institution)
	assert.Equal(t, "2016", resume.Education[0].Year)

	assert.Equal(t, []string{"Go", "Python"}, resume.Skills)

	require.Len(t, resume.Warnings, 1)
	assert.Equal(t, "malformed_entry", resume.Warnings[0].Type)
	assert.Equal(t, "work_experience", resume.Warnings[0].Field)
	assert.Equal(t, "low", resume.Warnings[0].Severity)
}

func TestDecodeResumeJSON_ExperienceAlias(t *testing.T) {
	raw := []byte(`{
		"name": "Jordan Lee",
		"experience": [{"position": "Data Analyst", "company": "Initech"}]
	}`)

	resume, err := DecodeResumeJSON(raw)
	require.NoError(t, err)

	require.Len(t, resume.WorkExperience, 1)
	assert.Equal(t, "Data Analyst", resume.WorkExperience[0].Position)
	assert.Equal(t, "Data Analyst", resume.WorkExperience[0].EffectiveTitle())
	assert.Equal(t, "Initech", resume.WorkExperience[0].Company)
}

func TestDecodeResumeJSON_SkillsVariants(t *testing.T) {
	withString, err := DecodeResumeJSON([]byte(`{"skills": "Go, Python , go"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Python"}, withString.Skills)

	withoutSkills, err := DecodeResumeJSON([]byte(`{"name": "Jordan Lee"}`))
	require.NoError(t, err)
	assert.Nil(t, withoutSkills.Skills)
}

func TestDecodeResumeJSON_InvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		raw     []byte
		message string
	}{
		{"empty", []byte("  "), "parse resume: empty input"},
		{"invalid", []byte("{not json"), "parse resume: invalid JSON"},
		{"non-object", []byte("[1, 2]"), "parse resume: top-level value is not an object"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeResumeJSON(tc.raw)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.message, parseErr.Error())
		})
	}
}

func TestDecodeJobDescriptionJSON_FullDocument(t *testing.T) {
	raw := []byte(`{
		"title": "Data Engineer",
		"company": "Globex",
		"location": "Remote",
		"required_skills": ["SQL", "Python", "sql"],
		"preferred_skills": ["Airflow"],
		"required_education": "Bachelor",
		"keywords": ["sql", "python", "airflow", "SQL"]
	}`)

	job, err := DecodeJobDescriptionJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", job.Title)
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "bachelor", job.RequiredEducation)

	// Skill lists keep duplicates; keywords are deduplicated.
	assert.Equal(t, []string{"SQL", "Python", "sql"}, job.RequiredSkills)
	assert.Equal(t, []string{"Airflow"}, job.PreferredSkills)
	assert.Equal(t, []string{"sql", "python", "airflow"}, job.Keywords)
}

func TestDecodeJobDescriptionJSON_PositionAliasAndDerivedKeywords(t *testing.T) {
	raw := []byte(`{
		"position": "Backend Engineer",
		"required_skills": ["Go", "Postgres"],
		"preferred_skills": ["go", "Kafka"]
	}`)

	job, err := DecodeJobDescriptionJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, []string{"Go", "Postgres", "Kafka"}, job.Keywords)
}

func TestDecodeJobDescriptionJSON_InvalidInput(t *testing.T) {
	_, err := DecodeJobDescriptionJSON([]byte("null"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "job_description", parseErr.Document)
}
