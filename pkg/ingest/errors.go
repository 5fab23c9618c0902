package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	ErrUnrecognizedSchema = errors.New("no known layout matches the source")
	ErrMissingSheets      = errors.New("required sheets missing")
	ErrNoUsableRows       = errors.New("no usable interaction rows")
	ErrWorkbookRead       = errors.New("workbook unreadable")
)

// SchemaError reports why a source could not be normalized. It carries
// the detected layout's display name and the list of required sheets
// that were not found, for precise user feedback.
type SchemaError struct {
	Source     string   // Source (file or archive entry) name
	LayoutName string   // Display name of the detected layout, if any
	Missing    []string // Required sheets absent from the source
	Cause      error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s: layout %q: missing sheets: %s",
			e.Source, e.LayoutName, strings.Join(e.Missing, ", "))
	case e.LayoutName != "":
		return fmt.Sprintf("%s: layout %q: %v", e.Source, e.LayoutName, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Source, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SchemaError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// UnrecognizedSchemaError creates the error for a source no layout
// detector matched.
func UnrecognizedSchemaError(source string) error {
	return &SchemaError{Source: source, Cause: ErrUnrecognizedSchema}
}

// ValidationError creates the error for a detected layout with missing
// required sheets.
func ValidationError(source, layoutName string, missing []string) error {
	return &SchemaError{
		Source:     source,
		LayoutName: layoutName,
		Missing:    missing,
		Cause:      ErrMissingSheets,
	}
}

// ReadError wraps a workbook-level read failure.
func ReadError(source string, cause error) error {
	return &SchemaError{Source: source, Cause: fmt.Errorf("%w: %v", ErrWorkbookRead, cause)}
}

// IsUnrecognized reports whether the error means no layout matched.
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrUnrecognizedSchema)
}
