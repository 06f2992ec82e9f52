package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("collection not found")
	// ErrDocumentNotFound signals a missing politician record.
	ErrDocumentNotFound = errors.New("politician not found")
	// ErrValidation signals invalid client input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidSchema signals a field declaration the mapping translator cannot handle.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnsupportedFile signals an upload that is not a CSV file.
	ErrUnsupportedFile = errors.New("Only CSV files are supported") //nolint:staticcheck // client-facing text
	// ErrMalformedRow signals a CSV row whose width does not match the header.
	ErrMalformedRow = errors.New("malformed csv row")
	// ErrMalformedNumber signals a non-numeric value in a numeric CSV column.
	ErrMalformedNumber = errors.New("malformed numeric field")

	// ErrBulkAborted signals that bulk ingestion stopped at the first rejected item.
	ErrBulkAborted = errors.New("bulk ingestion aborted")
	// ErrUpstreamUnavailable signals that the search engine cannot be reached.
	ErrUpstreamUnavailable = errors.New("search engine unavailable")
)

// MalformedRowError wraps ErrMalformedRow with the offending line and widths.
type MalformedRowError struct {
	Line int
	Want int
	Got  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: line %d has %d fields, header has %d", ErrMalformedRow.Error(), e.Line, e.Got, e.Want)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// MalformedNumberError wraps ErrMalformedNumber with the offending cell.
type MalformedNumberError struct {
	Line   int
	Column string
	Value  string
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("%s: line %d column %q value %q", ErrMalformedNumber.Error(), e.Line, e.Column, e.Value)
}

func (e *MalformedNumberError) Unwrap() error { return ErrMalformedNumber }

// NewValidation creates an ErrValidation with a client-facing reason.
func NewValidation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
