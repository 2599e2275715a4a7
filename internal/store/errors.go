package store

import (
	"errors"
	"fmt"
)

// CorruptError marks a persisted payload that failed to parse. Callers must
// treat it as recoverable: log it and fall back to the empty state rather
// than crash.
type CorruptError struct {
	What string // "draft" or "ledger"
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s payload: %v", e.What, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err is a corruption failure.
// Uses errors.As to handle wrapped errors.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}
