package storage

import (
	"context"
	"sort"

	"taskdesk/domain"
)

// Memory keeps tasks in a map keyed by id. It performs no I/O and is fully
// synchronous; it makes no claim of thread-safety and expects a single actor
// per instance, so an embedding host must serialize access itself.
type Memory struct {
	tasks  map[int64]domain.Task
	nextID int64
}

// NewMemory creates an empty repository with the id counter at 1.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[int64]domain.Task), nextID: 1}
}

func (m *Memory) Add(_ context.Context, task domain.Task) (domain.Task, error) {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = task
	return task, nil
}

func (m *Memory) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (m *Memory) GetAll(_ context.Context) ([]domain.Task, error) {
	ids := make([]int64, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tasks := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, m.tasks[id])
	}
	return tasks, nil
}

func (m *Memory) Update(_ context.Context, task domain.Task) (domain.Task, error) {
	if _, ok := m.tasks[task.ID]; !ok {
		return domain.Task{}, domain.NotFoundError{ID: task.ID}
	}
	m.tasks[task.ID] = task
	return task, nil
}

func (m *Memory) Delete(_ context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, domain.ErrInvalidID
	}
	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}
