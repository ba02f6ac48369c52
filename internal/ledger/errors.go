package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when a mutation is attempted without a
	// resolved user identity. The operation is aborted outright, nothing is
	// queued or written.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrTransactionNotFound is returned by update operations targeting an
	// identifier the ledger has never seen. Deletes never return it, they
	// are idempotent.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBudgetNotFound is the budget counterpart of ErrTransactionNotFound.
	ErrBudgetNotFound = errors.New("budget not found")
)

// ValidationError reports a business-rule violation. It is raised
// synchronously before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// RemoteWriteError wraps a failure of a fire-and-forget write after the
// mutation has already returned to its caller. It surfaces on the observed
// error path and flips the unsynced indicator; the core does not retry.
type RemoteWriteError struct {
	Op  string
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote write %s: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}
