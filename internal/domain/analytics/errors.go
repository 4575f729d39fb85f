package analytics

import "errors"

var (
	// ErrRunNotFound is terminal: the requested payroll run does not
	// exist, which is distinct from the row source being unreachable.
	ErrRunNotFound = errors.New("payroll run not found")

	// ErrSourceUnavailable marks retryable row-source failures
	// (connection loss, timeout). Callers should translate it to a 503.
	ErrSourceUnavailable = errors.New("data source unavailable")
)
