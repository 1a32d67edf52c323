package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrCancelled           = errors.New("operation cancelled")
)

// AlreadyTrackingError reports the open session that blocked a start request.
type AlreadyTrackingError struct {
	Activity string
}

func (e *AlreadyTrackingError) Error() string {
	return fmt.Sprintf("activity %q is still ongoing", e.Activity)
}

func (e *AlreadyTrackingError) Is(target error) bool {
	return target == ErrActiveSessionExists
}
