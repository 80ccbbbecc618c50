package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// Metadata records provenance for an ingested document.
type Metadata struct {
	// Source is the file path or URL the document came from.
	Source string `json:"source"`
	// Format is the detected input format: txt, md, html, or json.
	Format string `json:"format"`
	// Platform is the detected job board for URL ingests, empty otherwise.
	Platform string `json:"platform,omitempty"`
	// Timestamp is the ingestion time in RFC3339.
	Timestamp string `json:"timestamp"`
	// Hash is the SHA-256 hex digest of the cleaned text.
	Hash string `json:"hash"`
	// Bytes is the size of the raw input before cleaning.
	Bytes int `json:"bytes"`
	// Words counts whitespace-delimited words in the cleaned text.
	Words int `json:"words"`
}

// NewMetadata builds metadata for a cleaned document.
func NewMetadata(source, format string, raw []byte, cleaned string) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(cleaned),
		Bytes:     len(raw),
		Words:     len(strings.Fields(cleaned)),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ToJSON serializes the metadata as indented JSON for sidecar files.
func (m *Metadata) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
