package main

import (
	"errors"
	"fmt"
	"io"

	apperrors "timetrack/internal/platform/errors"
)

// handleError prints err for a person, not a stack trace, and returns the
// exit code.
func handleError(w io.Writer, err error) int {
	_, _ = fmt.Fprintln(w, describeError(err))
	return 1
}

func describeError(err error) string {
	var already *apperrors.AlreadyTrackingError
	switch {
	case errors.As(err, &already):
		return fmt.Sprintf("Error: Activity '%s' is still ongoing. Stop it first.", already.Activity)
	case errors.Is(err, apperrors.ErrActiveSessionExists):
		return "Error: another activity is already being tracked. Stop it first."
	case errors.Is(err, apperrors.ErrNoActiveSession):
		return "No activity is currently being tracked."
	case errors.Is(err, apperrors.ErrCancelled):
		return "Operation cancelled."
	default:
		return "Error: " + err.Error()
	}
}
