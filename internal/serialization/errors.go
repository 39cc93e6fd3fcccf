package serialization

import (
	"errors"
	"fmt"
)

// Error kinds shared by the network codec and the numeric core.
var (
	// ErrDimensionMismatch reports a vector or declared size whose length
	// does not match the arity it is used with.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrMalformedRecord reports a stream that is missing a keyword, declares
	// a wrong size, or ends before a record is complete.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIO reports a stream that could not be written to or read from.
	ErrIO = errors.New("stream i/o failure")
)

// RecordError provides detailed information about a malformed record.
type RecordError struct {
	Record  string // Record keyword being parsed (e.g., "LAYER")
	Field   string // Field within the record (e.g., "inputs")
	Details string // Additional details
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s %s: %s", ErrMalformedRecord, e.Record, e.Field, e.Details)
	}
	return fmt.Sprintf("%v: %s: %s", ErrMalformedRecord, e.Record, e.Details)
}

// Unwrap lets errors.Is match ErrMalformedRecord.
func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

func malformed(record, field, format string, args ...any) error {
	return &RecordError{Record: record, Field: field, Details: fmt.Sprintf(format, args...)}
}

// IOError reports a failed read or write against the underlying stream.
type IOError struct {
	Op  string // Operation that failed (e.g., "write NEURON")
	Err error  // Underlying stream error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrIO, e.Op, e.Err)
}

// Unwrap lets errors.Is match both ErrIO and the stream's own error.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
