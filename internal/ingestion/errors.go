package ingestion

import "fmt"

// ExtractionError represents a failure to extract text from an uploaded
// document. It names the offending file so the HTTP layer can surface it as
// a client error.
type ExtractionError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Filename, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UnsupportedTypeError indicates an upload whose declared type is neither PDF
// nor DOCX. Such files are rejected before any parsing happens.
type UnsupportedTypeError struct {
	Filename     string
	DeclaredType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: upload a .pdf or .docx file", e.DeclaredType, e.Filename)
}
