package org

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableTimestamp is returned when a bracketed token does not follow the date grammar.
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")

	// ErrInvalidDuration is returned for clock durations that are not in [-]H:MM form.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrImpossibleDate flags a well-formed timestamp whose day does not exist in its month.
	// The timestamp is kept; the error only surfaces as a warning.
	ErrImpossibleDate = errors.New("impossible calendar date")

	// ErrReservedLine is returned by edits whose text would parse back as outline structure.
	ErrReservedLine = errors.New("line would be read as outline structure")
)

// Warning records a recoverable anomaly found while building the tree.
type Warning struct {
	Line    int // 1-based line of the heading owning the construct
	Heading string
	Err     error
}

func (w Warning) Error() string {
	return fmt.Sprintf("line %d (%q): %v", w.Line, w.Heading, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}
