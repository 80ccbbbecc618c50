// Package schemas validates structured resume and job description documents
// against the JSON Schemas shipped with the binary.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemadefs "github.com/hirelens/hirelens/schemas"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Description))
	}
	return sb.String()
}

// SchemaLoadError represents errors compiling the schema itself
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compileOnce  sync.Once
	resumeSchema *gojsonschema.Schema
	jobSchema    *gojsonschema.Schema
	compileErr   error
)

func compiledSchemas() (*gojsonschema.Schema, *gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		resumeSchema, compileErr = compile("resume", schemadefs.ResumeSchema)
		if compileErr != nil {
			return
		}
		jobSchema, compileErr = compile("job_description", schemadefs.JobDescriptionSchema)
	})
	return resumeSchema, jobSchema, compileErr
}

func compile(name string, raw []byte) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "schema compilation failed", Cause: err}
	}
	return schema, nil
}

// ValidateResume checks a structured resume document against the resume
// schema. A nil return means the document conforms.
func ValidateResume(doc []byte) error {
	schema, _, err := compiledSchemas()
	if err != nil {
		return err
	}
	return validate(schema, doc)
}

// ValidateJobDescription checks a structured job description document
// against the job description schema.
func ValidateJobDescription(doc []byte) error {
	_, schema, err := compiledSchemas()
	if err != nil {
		return err
	}
	return validate(schema, doc)
}

func validate(schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		// The document could not be loaded at all (malformed JSON).
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Description: err.Error()}}}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:       field,
			Description: desc.Description(),
		})
	}
	return validationErr
}
