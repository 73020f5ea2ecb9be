package assistant

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoMessages      = errors.New("no messages supplied")
	ErrRunTimeout      = errors.New("request timed out")
	ErrNoValidResponse = errors.New("no valid response from assistant")
)

const unknownRunError = "Unknown error"

// RunFailedError reports a run that reached a terminal non-success status.
type RunFailedError struct {
	Status RunStatus
	Reason string
}

func (e *RunFailedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = unknownRunError
	}
	return fmt.Sprintf("run failed: %s", reason)
}

func newRunFailedError(run Run) *RunFailedError {
	return &RunFailedError{Status: run.Status, Reason: run.LastError}
}
