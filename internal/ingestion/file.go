package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hirelens/hirelens/internal/fetch"
)

// Input formats recognized by FromFile.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// ErrUnsupportedFormat is returned for file extensions FromFile cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// FromFile reads a local document and returns cleaned text with metadata.
// Plain text and markdown are cleaned directly, HTML is reduced to its main
// content first, and JSON passes through untouched so structured documents
// reach the JSON decoders intact.
func FromFile(path string) (string, *Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := detectFormat(path)
	var text string
	switch format {
	case FormatHTML:
		extracted, err := fetch.ExtractMainText(string(raw), fetch.JobPostingSelectors())
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract HTML content: %w", err)
		}
		text = CleanText(extracted)
	case FormatJSON:
		text = strings.TrimSpace(string(raw))
	case FormatText, FormatMarkdown:
		text = CleanText(string(raw))
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	return text, NewMetadata(path, format, raw, text), nil
}

// detectFormat maps a file extension to an input format. Files without an
// extension are treated as plain text.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		return FormatText
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	case ".json":
		return FormatJSON
	default:
		return ""
	}
}

// WriteOutput writes the cleaned text and its metadata sidecar under dir,
// named <name>.cleaned.txt and <name>.meta.json.
func WriteOutput(dir, name, text string, meta *Metadata) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(dir, name+".cleaned.txt")
	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write cleaned text: %w", err)
	}

	metaJSON, err := meta.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(dir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}
