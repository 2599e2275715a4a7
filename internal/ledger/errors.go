package ledger

import (
	"errors"
	"fmt"
)

// GateError is the blocked result of a commit attempt that failed the
// authorization gate. It carries the failing lines so callers can surface
// each status message rather than a generic error.
type GateError struct {
	// FailureCount is the number of non-compliant lines. Zero means the
	// order had no lines at all.
	FailureCount int

	// Failures lists the failing lines and their status messages.
	Failures []Failure
}

// Failure identifies one non-compliant line.
type Failure struct {
	Code   string `json:"code"`
	Status string `json:"status"`
}

func (e *GateError) Error() string {
	if e.FailureCount == 0 {
		return "commit blocked: order has no lines"
	}
	return fmt.Sprintf("commit blocked: %d line(s) below tier minimum", e.FailureCount)
}

// IsGateError reports whether err is a blocked commit.
// Uses errors.As to handle wrapped errors.
func IsGateError(err error) bool {
	var ge *GateError
	return errors.As(err, &ge)
}
