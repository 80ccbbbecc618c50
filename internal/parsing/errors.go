package parsing

import "fmt"

// ParseError reports that a document could not be parsed at all. Parsing
// failures are reserved for unusable input (empty text, invalid JSON);
// merely incomplete documents produce warnings on the parsed result
// instead.
type ParseError struct {
	Document string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s: %s", e.Document, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
