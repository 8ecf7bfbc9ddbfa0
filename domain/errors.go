package domain

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Each kind maps to a distinct corrective action
// on the caller's side, so adapters surface them verbatim.
const (
	KindEmptyTitle         = "empty-title"
	KindTitleTooLong       = "title-too-long"
	KindDescriptionTooLong = "description-too-long"
)

// ValidationError indicates caller-supplied task content violated an entity
// invariant. Always recoverable by retrying with corrected input.
type ValidationError struct {
	Kind    string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// NotFoundError indicates an id that does not, or no longer, refers to a
// stored task. It carries the offending id for user-facing messages.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task with id %d not found", e.ID)
}

// ErrInvalidID rejects structurally invalid identifiers (id <= 0) handed
// directly to a repository, as opposed to well-formed ids that are absent.
var ErrInvalidID = errors.New("task id must be a positive integer")

// ErrAlreadyCompleted rejects a second completion of the same task.
var ErrAlreadyCompleted = errors.New("task is already completed")
