package backend

import (
	"errors"
	"fmt"
)

// ErrDriver is the category for failures reported by the underlying driver.
var ErrDriver = errors.New("driver error")

// DriverError wraps a backend-reported failure (connectivity, constraint
// violation, rejected syntax). The engine never interprets or retries it;
// retry semantics are call-site policy.
type DriverError struct {
	Backend string
	Op      string
	Err     error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

// Is reports true for ErrDriver so callers can match the category without
// knowing the backend.
func (e *DriverError) Is(target error) bool { return target == ErrDriver }
