package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hirelens/hirelens/internal/ingestion"
	"github.com/hirelens/hirelens/internal/pipeline"
	"github.com/hirelens/hirelens/internal/report"
	"github.com/hirelens/hirelens/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many resume/job pairs and write an xlsx report",
	Long: `Analyze many resume/job pairs concurrently and write an xlsx summary
report plus one analysis JSON artifact per pair.

The input is either a manifest JSON file:

  {"pairs": [{"name": "backend", "resume": "cv.txt", "job": "posting.txt"}]}

with paths resolved relative to the manifest, or a directory scanned for
<name>.resume.<ext> / <name>.job.<ext> file pairs. A manifest.json inside
the input directory takes precedence over scanning.`,
	RunE: runBatch,
}

var (
	batchInput     string
	batchOutput    string
	batchArtifacts string
)

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "directory of resume/job pairs or a manifest JSON file")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "report.xlsx", "path of the xlsx report")
	batchCmd.Flags().StringVar(&batchArtifacts, "artifacts", "", "directory for per-pair analysis JSON (default <output>.artifacts)")
	batchCmd.Flags().IntP("concurrency", "c", 0, "number of concurrent analyses (default from config)")

	if err := batchCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(batchCmd)
}

// batchPair is one resume/job input, either declared in a manifest or
// discovered by directory scanning.
type batchPair struct {
	Name      string `json:"name,omitempty"`
	Resume    string `json:"resume"`
	Job       string `json:"job"`
	ATSType   string `json:"ats_type,omitempty"`
	Persona   string `json:"recruiter_persona,omitempty"`
	RoleLevel string `json:"role_level,omitempty"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	pairs, err := loadPairs(batchInput)
	if err != nil {
		return err
	}

	artifactsDir := batchArtifacts
	if artifactsDir == "" {
		artifactsDir = strings.TrimSuffix(batchOutput, filepath.Ext(batchOutput)) + ".artifacts"
	}
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts directory: %w", err)
	}

	log.Info("starting batch analysis",
		zap.Int("pairs", len(pairs)),
		zap.Int("concurrency", cfg.Batch.Concurrency),
	)

	// One row per input, in input order. A pair whose files cannot be
	// ingested becomes a failed row instead of aborting the batch.
	results := make([]report.Row, len(pairs))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Batch.Concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			pairLog := log.With(zap.String("pair", pair.Name))
			ac, err := analyzePair(ctx, pair, pairLog)
			if err != nil {
				pairLog.Warn("pair analysis failed", zap.Error(err))
				results[i] = report.Row{
					Input:        pair.Name,
					ResumeSource: pair.Resume,
					JobSource:    pair.Job,
					Status:       types.AnalysisFailed,
				}
				return nil
			}
			results[i] = report.FromAnalysis(pair.Name, pair.Resume, pair.Job, ac)
			return writeArtifact(artifactsDir, pair.Name, ac)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := report.Write(batchOutput, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	failed := 0
	for _, row := range results {
		if row.Status == types.AnalysisFailed {
			failed++
		}
	}

	log.Info("batch analysis finished", zap.Int("pairs", len(pairs)), zap.Int("failed", failed))

	fmt.Fprintf(os.Stdout, "Analyzed %d pairs (%d failed)\n", len(pairs), failed)
	fmt.Fprintf(os.Stdout, "Report: %s\n", batchOutput)
	fmt.Fprintf(os.Stdout, "Artifacts: %s\n", artifactsDir)
	return nil
}

func analyzePair(ctx context.Context, pair batchPair, log *zap.Logger) (*types.AnalysisContext, error) {
	resumeText, resumeMeta, err := ingestion.FromFile(pair.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest resume: %w", err)
	}
	jobText, jobMeta, err := ingestion.FromFile(pair.Job)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest job description: %w", err)
	}

	opts := types.DefaultAnalyzeOptions()
	if pair.ATSType != "" {
		opts.ATSType = pair.ATSType
	}
	if pair.Persona != "" {
		opts.RecruiterPersona = pair.Persona
	}
	if pair.RoleLevel != "" {
		opts.RoleLevel = pair.RoleLevel
	}

	ac, err := newAnalysis(resumeText, resumeMeta, jobText, jobMeta, opts, false)
	if err != nil {
		return nil, err
	}

	if err := pipeline.Run(ctx, ac, pipeline.RunOptions{Logger: log}); err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	return ac, nil
}

func writeArtifact(dir, name string, ac *types.AnalysisContext) error {
	payload, err := json.MarshalIndent(ac, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis for %s: %w", name, err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// loadPairs resolves the --input flag into an ordered pair list.
func loadPairs(input string) ([]batchPair, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if info.IsDir() {
		manifest := filepath.Join(input, "manifest.json")
		if _, err := os.Stat(manifest); err == nil {
			return loadManifest(manifest)
		}
		return discoverPairs(input)
	}

	return loadManifest(input)
}

func loadManifest(path string) ([]batchPair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest struct {
		Pairs []batchPair `json:"pairs"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(manifest.Pairs) == 0 {
		return nil, fmt.Errorf("manifest %s lists no pairs", path)
	}

	base := filepath.Dir(path)
	for i := range manifest.Pairs {
		pair := &manifest.Pairs[i]
		if pair.Resume == "" || pair.Job == "" {
			return nil, fmt.Errorf("manifest pair %d is missing resume or job", i)
		}
		if !filepath.IsAbs(pair.Resume) {
			pair.Resume = filepath.Join(base, pair.Resume)
		}
		if !filepath.IsAbs(pair.Job) {
			pair.Job = filepath.Join(base, pair.Job)
		}
		if pair.Name == "" {
			pair.Name = fmt.Sprintf("pair-%03d", i+1)
		}
	}
	return manifest.Pairs, nil
}

// discoverPairs scans a directory for <name>.resume.<ext> files with a
// matching <name>.job.<ext>, sorted by name for a deterministic order.
func discoverPairs(dir string) ([]batchPair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	resumes := make(map[string]string)
	jobs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, kind := splitPairFile(entry.Name())
		switch kind {
		case "resume":
			resumes[base] = filepath.Join(dir, entry.Name())
		case "job":
			jobs[base] = filepath.Join(dir, entry.Name())
		}
	}

	var names []string
	for base := range resumes {
		if _, ok := jobs[base]; ok {
			names = append(names, base)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no resume/job pairs found in %s (expected <name>.resume.<ext> and <name>.job.<ext>)", dir)
	}

	pairs := make([]batchPair, 0, len(names))
	for _, base := range names {
		pairs = append(pairs, batchPair{Name: base, Resume: resumes[base], Job: jobs[base]})
	}
	return pairs, nil
}

func splitPairFile(name string) (base, kind string) {
	trimmed := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.HasSuffix(trimmed, ".resume"):
		return strings.TrimSuffix(trimmed, ".resume"), "resume"
	case strings.HasSuffix(trimmed, ".job"):
		return strings.TrimSuffix(trimmed, ".job"), "job"
	}
	return "", ""
}
