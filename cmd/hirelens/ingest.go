package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hirelens/hirelens/internal/fetch"
	"github.com/hirelens/hirelens/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and clean a document for later analysis",
	Long: `Ingest a resume or job posting from a local file or a URL, normalize
the text and report document metadata. URL ingestion detects known job
board platforms and uses platform-specific content extraction.`,
	RunE: runIngest,
}

var (
	ingestFile    string
	ingestURL     string
	ingestBrowser bool
	ingestOut     string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "path to a document file (txt, md, html or json)")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the document from")
	ingestCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "render sparse pages with a headless browser (requires Chrome)")
	ingestCmd.Flags().StringVarP(&ingestOut, "output", "o", "", "directory for the cleaned text and metadata files")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	var (
		text string
		meta *ingestion.Metadata
		name string
	)

	if ingestFile != "" {
		var err error
		text, meta, err = ingestion.FromFile(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
		name = strings.TrimSuffix(filepath.Base(ingestFile), filepath.Ext(ingestFile))
	} else {
		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		text, meta, err = ingestion.FromURL(context.Background(), ingestURL, ingestion.URLOptions{
			EnableBrowser: ingestBrowser,
			Logger:        log,
		})
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
		name = "posting"
	}

	if meta.Platform != "" && meta.Platform != string(fetch.PlatformUnknown) {
		fmt.Fprintf(os.Stderr, "Detected platform: %s (ATS: %s)\n", meta.Platform, fetch.Platform(meta.Platform).ATSType())
	}
	fmt.Fprintf(os.Stderr, "Ingested %d bytes, %d words\n", meta.Bytes, meta.Words)

	if ingestOut != "" {
		if err := ingestion.WriteOutput(ingestOut, name, text, meta); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Cleaned text: %s\n", filepath.Join(ingestOut, name+".cleaned.txt"))
		fmt.Fprintf(os.Stdout, "Metadata: %s\n", filepath.Join(ingestOut, name+".meta.json"))
		return nil
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}
