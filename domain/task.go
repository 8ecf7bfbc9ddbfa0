package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a task. The only transition is
// pending -> completed; completed is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Title and description limits, measured after trimming surrounding whitespace.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// Task represents a single todo item. The zero ID means the task has not been
// stored yet; repositories assign IDs on Add and callers never set them.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// NewTask builds a pending task with CreatedAt set to the current UTC time.
// Title and description are stored trimmed; a whitespace-only description is
// normalized to empty (absent) rather than rejected.
func NewTask(title, description string) (Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if err := validate(title, description); err != nil {
		return Task{}, err
	}
	return Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// MarkComplete transitions the task to completed and stamps CompletedAt.
// Completing an already completed task is rejected with ErrAlreadyCompleted
// so callers can report that nothing changed.
func (t *Task) MarkComplete() error {
	if t.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	now := time.Now().UTC()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	return nil
}

// SetTitle replaces the title, applying the same trimming and validation as
// construction.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := validate(title, t.Description); err != nil {
		return err
	}
	t.Title = title
	return nil
}

// SetDescription replaces the description. A whitespace-only value normalizes
// to empty (absent), matching construction.
func (t *Task) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if err := validate(t.Title, description); err != nil {
		return err
	}
	t.Description = description
	return nil
}

// Validate re-runs the construction rules against the current field values.
// The command layer calls it before submitting an edited task to a repository.
func (t Task) Validate() error {
	return validate(strings.TrimSpace(t.Title), strings.TrimSpace(t.Description))
}

// Map renders the task as a plain key/value view for adapters. Timestamps use
// RFC 3339; an absent description or completion time maps to an explicit nil.
func (t Task) Map() map[string]any {
	m := map[string]any{
		"id":           t.ID,
		"title":        t.Title,
		"description":  nil,
		"status":       string(t.Status),
		"created_at":   t.CreatedAt.Format(time.RFC3339),
		"completed_at": nil,
	}
	if t.Description != "" {
		m["description"] = t.Description
	}
	if t.CompletedAt != nil {
		m["completed_at"] = t.CompletedAt.Format(time.RFC3339)
	}
	return m
}

func validate(title, description string) error {
	if title == "" {
		return ValidationError{Kind: KindEmptyTitle, Message: "title cannot be empty"}
	}
	if len([]rune(title)) > MaxTitleLen {
		return ValidationError{Kind: KindTitleTooLong, Message: "title cannot exceed 200 characters"}
	}
	if len([]rune(description)) > MaxDescriptionLen {
		return ValidationError{Kind: KindDescriptionTooLong, Message: "description cannot exceed 1000 characters"}
	}
	return nil
}
