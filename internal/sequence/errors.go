package sequence

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id does not name a target or group in
	// the sequence.
	ErrNotFound = errors.New("not found")

	// ErrNotASprite is returned when a sprite operation addresses the stage.
	ErrNotASprite = errors.New("target is not a sprite")

	// ErrOutOfRange is returned for positions outside the sequence.
	ErrOutOfRange = errors.New("position out of range")
)

// InvariantError reports a consistency check that failed on a sequence.
type InvariantError struct {
	Rule    string
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s: %s", e.Rule, e.Message)
}

// IsInvariantError checks if an error is an InvariantError.
func IsInvariantError(err error) bool {
	var ie InvariantError
	return errors.As(err, &ie)
}
