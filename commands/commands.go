// Package commands is the orchestration layer between callers and task
// storage. Every operation takes primitive arguments, drives entity
// construction or mutation plus repository calls, and returns the resulting
// task or a domain error, leaving user-facing rendering to the adapter.
// Operations never log and never touch anything beyond the given repository.
package commands

import (
	"context"

	"taskdesk/domain"
	"taskdesk/storage"
)

// Create validates and stores a new pending task. Validation failures from
// entity construction propagate unchanged.
func Create(ctx context.Context, repo storage.TaskRepository, title, description string) (domain.Task, error) {
	task, err := domain.NewTask(title, description)
	if err != nil {
		return domain.Task{}, err
	}
	return repo.Add(ctx, task)
}

// List returns every stored task in ascending-id order. An empty slice is a
// valid, expected result; the adapter decides how to present it.
func List(ctx context.Context, repo storage.TaskRepository) ([]domain.Task, error) {
	return repo.GetAll(ctx)
}

// Get returns the task with the given id, failing with NotFoundError when it
// does not exist.
func Get(ctx context.Context, repo storage.TaskRepository, id int64) (domain.Task, error) {
	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil {
		return domain.Task{}, domain.NotFoundError{ID: id}
	}
	return *task, nil
}

// Update applies a partial edit: nil fields keep their prior values. Supplied
// fields are re-validated through the entity rules before the repository
// accepts the replacement.
func Update(ctx context.Context, repo storage.TaskRepository, id int64, title, description *string) (domain.Task, error) {
	task, err := Get(ctx, repo, id)
	if err != nil {
		return domain.Task{}, err
	}
	if title != nil {
		if err := task.SetTitle(*title); err != nil {
			return domain.Task{}, err
		}
	}
	if description != nil {
		if err := task.SetDescription(*description); err != nil {
			return domain.Task{}, err
		}
	}
	return repo.Update(ctx, task)
}

// Delete removes the task with the given id. Unlike the repository's
// boolean-return Delete, absence here is a NotFoundError: callers expect
// confirmation of which task was removed.
func Delete(ctx context.Context, repo storage.TaskRepository, id int64) error {
	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.NotFoundError{ID: id}
	}
	_, err = repo.Delete(ctx, id)
	return err
}

// Complete transitions the task to completed and persists the change.
// Completing an already completed task fails with ErrAlreadyCompleted.
func Complete(ctx context.Context, repo storage.TaskRepository, id int64) (domain.Task, error) {
	task, err := Get(ctx, repo, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := task.MarkComplete(); err != nil {
		return domain.Task{}, err
	}
	return repo.Update(ctx, task)
}
