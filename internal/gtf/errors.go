package gtf

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a stream yields no records where at
	// least one is required.
	ErrEmptyInput = errors.New("gtf: empty input")

	// ErrKeyNotFound is returned when an attribute is read or deleted but is
	// not present on the record.
	ErrKeyNotFound = errors.New("gtf: attribute not found")
)

// FormatError reports a line that cannot be parsed as a GTF record.
// Line is 0 when the text was not read from a stream.
type FormatError struct {
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("gtf format error at line %d: %s", e.Line, e.Message)
	}
	return "gtf format error: " + e.Message
}

// DuplicateKeyError reports a child key that is already present in a keyed
// node.
type DuplicateKeyError struct {
	Parent string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("gtf: duplicate %s child %q", e.Parent, e.Key)
}

func keyNotFound(key string) error {
	return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}
