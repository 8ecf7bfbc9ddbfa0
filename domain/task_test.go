package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func TestNewTaskTrimsAndDefaults(t *testing.T) {
	task, err := NewTask("  Buy milk  ", "   ")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.ID != 0 {
		t.Fatalf("expected unassigned id, got %d", task.ID)
	}
	if task.Title != "Buy milk" {
		t.Fatalf("unexpected title: %q", task.Title)
	}
	if task.Description != "" {
		t.Fatalf("whitespace description should normalize to absent, got %q", task.Description)
	}
	if task.Status != StatusPending {
		t.Fatalf("unexpected status: %s", task.Status)
	}
	if task.CompletedAt != nil {
		t.Fatalf("pending task must not carry a completion time")
	}
	if task.CreatedAt.IsZero() || task.CreatedAt.Location() != time.UTC {
		t.Fatalf("created at must be a UTC timestamp, got %v", task.CreatedAt)
	}
}

func TestNewTaskValidation(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		kind        string
	}{
		{"empty title", "", "", KindEmptyTitle},
		{"whitespace title", "  ", "", KindEmptyTitle},
		{"title too long", strings.Repeat("a", 201), "", KindTitleTooLong},
		{"description too long", "ok", strings.Repeat("d", 1001), KindDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.title, tc.description)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Kind != tc.kind {
				t.Fatalf("unexpected kind: %s", verr.Kind)
			}
		})
	}
}

func TestNewTaskAcceptsBoundaryLengths(t *testing.T) {
	task, err := NewTask(strings.Repeat("a", 200), strings.Repeat("d", 1000))
	if err != nil {
		t.Fatalf("boundary lengths should be accepted: %v", err)
	}
	if len(task.Title) != 200 || len(task.Description) != 1000 {
		t.Fatalf("unexpected stored lengths: %d/%d", len(task.Title), len(task.Description))
	}
}

func TestMarkComplete(t *testing.T) {
	task, err := NewTask("Write report", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := task.MarkComplete(); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if task.Status != StatusCompleted {
		t.Fatalf("unexpected status: %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Fatalf("completed task must carry a completion time")
	}
	if task.CompletedAt.Before(task.CreatedAt) {
		t.Fatalf("completed at %v precedes created at %v", task.CompletedAt, task.CreatedAt)
	}
}

func TestMarkCompleteTwiceIsRejected(t *testing.T) {
	task, err := NewTask("Write report", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := task.MarkComplete(); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	first := *task.CompletedAt
	if err := task.MarkComplete(); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if !task.CompletedAt.Equal(first) {
		t.Fatalf("second completion must not move the timestamp")
	}
}

func TestStatusCompletedIffCompletedAtSet(t *testing.T) {
	task, err := NewTask("Invariant check", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if (task.Status == StatusCompleted) != (task.CompletedAt != nil) {
		t.Fatalf("invariant violated while pending: %+v", task)
	}
	if err := task.MarkComplete(); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if (task.Status == StatusCompleted) != (task.CompletedAt != nil) {
		t.Fatalf("invariant violated after completion: %+v", task)
	}
}

func TestValidateRejectsMutatedTask(t *testing.T) {
	task, err := NewTask("Valid", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	task.Title = "   "
	var verr ValidationError
	if err := task.Validate(); !errors.As(err, &verr) || verr.Kind != KindEmptyTitle {
		t.Fatalf("expected empty-title validation error, got %v", err)
	}
}

func TestMapRendersAbsentFieldsAsNil(t *testing.T) {
	task, err := NewTask("Buy milk", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	m := task.Map()
	if m["description"] != nil {
		t.Fatalf("absent description should map to nil, got %#v", m["description"])
	}
	if m["completed_at"] != nil {
		t.Fatalf("pending completed_at should map to nil, got %#v", m["completed_at"])
	}
	if m["status"] != "pending" {
		t.Fatalf("unexpected status value: %#v", m["status"])
	}
	created, ok := m["created_at"].(string)
	if !ok {
		t.Fatalf("created_at should render as text, got %#v", m["created_at"])
	}
	if _, err := time.Parse(time.RFC3339, created); err != nil {
		t.Fatalf("created_at is not RFC 3339: %v", err)
	}
}

func TestMapRendersCompletion(t *testing.T) {
	task, err := NewTask("Buy milk", "semi-skimmed")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := task.MarkComplete(); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	m := task.Map()
	if m["description"] != "semi-skimmed" {
		t.Fatalf("unexpected description: %#v", m["description"])
	}
	completed, ok := m["completed_at"].(string)
	if !ok {
		t.Fatalf("completed_at should render as text, got %#v", m["completed_at"])
	}
	if _, err := time.Parse(time.RFC3339, completed); err != nil {
		t.Fatalf("completed_at is not RFC 3339: %v", err)
	}
}

func TestTaskMarshalCarriesStatusString(t *testing.T) {
	task, err := NewTask("Title", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	payload, err := sonic.Marshal(task)
	if err != nil {
		t.Fatalf("marshal task: %v", err)
	}
	if !strings.Contains(string(payload), `"status":"pending"`) {
		t.Fatalf("expected status string in payload, got %s", payload)
	}
}
