package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when an archive name is empty.
	ErrEmptyName = errors.New("archive name must not be empty")

	// ErrRaggedData is returned when the rows of an array have unequal
	// lengths.
	ErrRaggedData = errors.New("array rows must have equal length")
)

// ErrAnnotationType indicates that an archive carries a different
// annotation type tag than the caller expected.
type ErrAnnotationType struct {
	Expected string
	Found    string
}

func (e *ErrAnnotationType) Error() string {
	return fmt.Sprintf("annotation type mismatch: expected %q, found %q", e.Expected, e.Found)
}

// ErrFormat indicates a malformed or unsupported archive.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrFormat struct {
	Name  string
	Issue string
	cause error
}

func (e *ErrFormat) Error() string {
	return fmt.Sprintf("archive %q: %s", e.Name, e.Issue)
}

func (e *ErrFormat) Unwrap() error { return e.cause }
