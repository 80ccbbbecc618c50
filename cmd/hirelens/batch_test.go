package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/types"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplitPairFile(t *testing.T) {
	tests := []struct {
		file string
		base string
		kind string
	}{
		{"jane.resume.txt", "jane", "resume"},
		{"jane.job.txt", "jane", "job"},
		{"jane.resume.md", "jane", "resume"},
		{"backend.job.json", "backend", "job"},
		{"resume.txt", "", ""},
		{"notes.txt", "", ""},
		{"manifest.json", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			base, kind := splitPairFile(tt.file)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestDiscoverPairs(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "jane.resume.txt", "resume text")
	writeTestFile(t, dir, "jane.job.txt", "job text")
	writeTestFile(t, dir, "alex.resume.txt", "resume without a job")
	writeTestFile(t, dir, "readme.md", "not part of any pair")

	pairs, err := discoverPairs(dir)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	assert.Equal(t, "jane", pairs[0].Name)
	assert.Equal(t, filepath.Join(dir, "jane.resume.txt"), pairs[0].Resume)
	assert.Equal(t, filepath.Join(dir, "jane.job.txt"), pairs[0].Job)
}

func TestDiscoverPairs_SortedByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zoe", "amy", "mike"} {
		writeTestFile(t, dir, name+".resume.txt", "resume")
		writeTestFile(t, dir, name+".job.txt", "job")
	}

	pairs, err := discoverPairs(dir)
	require.NoError(t, err)
	require.Len(t, pairs, 3)

	assert.Equal(t, "amy", pairs[0].Name)
	assert.Equal(t, "mike", pairs[1].Name)
	assert.Equal(t, "zoe", pairs[2].Name)
}

func TestDiscoverPairs_NoPairs(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "notes.txt", "nothing to analyze here")

	_, err := discoverPairs(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resume/job pairs found")
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `{
		"pairs": [
			{"name": "backend", "resume": "cv.txt", "job": "posting.txt", "ats_type": "greenhouse"},
			{"resume": "/abs/other-cv.txt", "job": "other-posting.txt"}
		]
	}`
	path := writeTestFile(t, dir, "manifest.json", manifest)

	pairs, err := loadManifest(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, "backend", pairs[0].Name)
	assert.Equal(t, filepath.Join(dir, "cv.txt"), pairs[0].Resume)
	assert.Equal(t, filepath.Join(dir, "posting.txt"), pairs[0].Job)
	assert.Equal(t, "greenhouse", pairs[0].ATSType)

	// Unnamed pairs get a positional name; absolute paths stay as written.
	assert.Equal(t, "pair-002", pairs[1].Name)
	assert.Equal(t, "/abs/other-cv.txt", pairs[1].Resume)
	assert.Equal(t, filepath.Join(dir, "other-posting.txt"), pairs[1].Job)
}

func TestLoadManifest_MissingPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "manifest.json", `{"pairs": [{"name": "x", "resume": "cv.txt"}]}`)

	_, err := loadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing resume or job")
}

func TestLoadManifest_NoPairs(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "manifest.json", `{"pairs": []}`)

	_, err := loadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists no pairs")
}

func TestLoadPairs_ManifestWinsOverDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "jane.resume.txt", "resume")
	writeTestFile(t, dir, "jane.job.txt", "job")
	writeTestFile(t, dir, "manifest.json",
		`{"pairs": [{"name": "only", "resume": "jane.resume.txt", "job": "jane.job.txt"}]}`)

	pairs, err := loadPairs(dir)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "only", pairs[0].Name)
}

func TestLoadPairs_MissingInput(t *testing.T) {
	_, err := loadPairs(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestAnalyzePair_RunsFullPipeline(t *testing.T) {
	dir := t.TempDir()
	pair := batchPair{
		Name:    "jane",
		Resume:  writeTestFile(t, dir, "jane.resume.txt", testResume),
		Job:     writeTestFile(t, dir, "jane.job.txt", testJob),
		Persona: "skeptical",
	}

	ac, err := analyzePair(context.Background(), pair, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, types.AnalysisCompleted, ac.Status())
	require.NotNil(t, ac.Score)
	assert.Greater(t, ac.Score.OverallScore, 0.0)
	require.NotNil(t, ac.Recruiter)
	assert.Equal(t, "skeptical", ac.Recruiter.Persona)
}

func TestAnalyzePair_UnreadableResume(t *testing.T) {
	dir := t.TempDir()
	pair := batchPair{
		Name:   "ghost",
		Resume: filepath.Join(dir, "missing.resume.txt"),
		Job:    writeTestFile(t, dir, "ghost.job.txt", testJob),
	}

	_, err := analyzePair(context.Background(), pair, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ingest resume")
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	ac := types.NewAnalysisContext(testResume, testJob, types.DefaultAnalyzeOptions())

	require.NoError(t, writeArtifact(dir, "jane", ac))

	raw, err := os.ReadFile(filepath.Join(dir, "jane.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ac.AnalysisID.String(), decoded["analysis_id"])
	assert.Contains(t, decoded, "stage_statuses")
}
