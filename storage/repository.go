package storage

import (
	"context"

	"taskdesk/domain"
)

// TaskRepository is the storage contract for tasks. Implementations own the
// canonical task collection and the id counter: ids are assigned on Add,
// strictly increasing, and never reused within one repository instance, even
// after deletions.
//
// Repositories store and return values. A task handed out by GetByID or
// GetAll is a copy; mutating it never changes stored state until the caller
// submits it through Update.
type TaskRepository interface {
	// Add assigns the next id, stores the task and returns the stored value.
	Add(ctx context.Context, task domain.Task) (domain.Task, error)
	// GetByID returns the task or nil when no task has that id. A nil result
	// is an expected outcome, not an error. Ids <= 0 fail with ErrInvalidID.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// GetAll returns every stored task in ascending-id order.
	GetAll(ctx context.Context) ([]domain.Task, error)
	// Update replaces the stored task with the same id and returns it.
	// Fails with NotFoundError when the id is absent.
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	// Delete removes the task, reporting whether it existed. Ids <= 0 fail
	// with ErrInvalidID.
	Delete(ctx context.Context, id int64) (bool, error)
}
