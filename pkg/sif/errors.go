package sif

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine is returned for a line with too few tab-separated fields.
	ErrMalformedLine = errors.New("malformed line")
	// ErrInvalidHeat is returned when a heat value is not a number.
	ErrInvalidHeat = errors.New("heat value is not a number")
	// ErrInvalidSign is returned when a heat sign is neither "+" nor "-".
	ErrInvalidSign = errors.New("invalid heat sign")
)

// ParseError locates a parse failure in an input file.
type ParseError struct {
	Path  string // empty when reading from a bare stream
	Line  int
	Cause error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// withPath stamps a file path onto a ParseError produced by a stream reader.
func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}
	return err
}
