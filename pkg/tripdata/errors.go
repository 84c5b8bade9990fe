package tripdata

import (
	"errors"
	"fmt"
)

var (
	// ErrFileAccess indicates the input could not be opened or read.
	ErrFileAccess = errors.New("file access")

	// ErrSchema indicates the header is missing a required column.
	ErrSchema = errors.New("schema")

	// ErrParse indicates a field value could not be converted.
	ErrParse = errors.New("parse")
)

// RecordError describes a single field that failed to parse.
// It unwraps to [ErrParse] and to the underlying conversion error.
type RecordError struct {
	Err    error
	Column string
	Value  string
	Line   int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%v: line %d: column %q: value %q: %v", ErrParse, e.Line, e.Column, e.Value, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
