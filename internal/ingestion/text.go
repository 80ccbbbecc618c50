// Package ingestion normalizes raw candidate and job-posting documents
// before analysis. It accepts local files and live job-posting URLs and
// produces cleaned plain text plus provenance metadata.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpacePattern = regexp.MustCompile(`\s+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes text content while preserving document structure:
// markdown headings and bullets survive, runs of spaces collapse, and
// blank-line runs shrink to at most one separator line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Markdown headings keep their marker, leading indent normalized away.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet items keep their indent so nested lists stay readable.
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// Regular lines: collapse internal runs of whitespace, keep indent.
	indent := len(line) - len(trimmed)
	content := multiSpacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces runs of three or more newlines to two.
func removeExcessiveBlankLines(content string) string {
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}
