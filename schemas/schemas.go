// Package schemas ships the JSON Schema documents for structured resume and
// job description inputs. The documents are embedded so validation works
// wherever the binary runs.
package schemas

import _ "embed"

// ResumeSchema is the JSON Schema for structured resume documents.
//
//go:embed resume.schema.json
var ResumeSchema []byte

// JobDescriptionSchema is the JSON Schema for structured job description
// documents.
//
//go:embed job_description.schema.json
var JobDescriptionSchema []byte
