package storage

import (
	"context"
	"sync"

	"taskdesk/domain"
)

// Serialized guards a TaskRepository with a mutex. The repositories themselves
// make no thread-safety claim and expect one actor per instance; a
// multi-request host (like the HTTP server) wraps its repository in
// Serialized to get that guarantee.
type Serialized struct {
	mu   sync.Mutex
	base TaskRepository
}

// NewSerialized wraps base so every operation runs under one mutex.
func NewSerialized(base TaskRepository) *Serialized {
	if base == nil {
		panic("storage.NewSerialized: base repository is nil")
	}
	return &Serialized{base: base}
}

func (s *Serialized) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Add(ctx, task)
}

func (s *Serialized) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.GetByID(ctx, id)
}

func (s *Serialized) GetAll(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.GetAll(ctx)
}

func (s *Serialized) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Update(ctx, task)
}

func (s *Serialized) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Delete(ctx, id)
}
