package commands

import (
	"fmt"
	"strings"
	"time"

	"taskdesk/domain"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// FormatTask renders one task as a single display line: "[id] ○ title - desc".
func FormatTask(task domain.Task) string {
	icon := "○"
	if task.Status == domain.StatusCompleted {
		icon = "✓"
	}
	desc := ""
	if task.Description != "" {
		desc = " - " + task.Description
	}
	return fmt.Sprintf("[%d] %s %s%s", task.ID, icon, task.Title, desc)
}

// FormatTaskList renders tasks with their creation and completion timestamps,
// one block per task.
func FormatTaskList(tasks []domain.Task) string {
	lines := make([]string, 0, len(tasks)*3)
	for _, task := range tasks {
		lines = append(lines, FormatTask(task))
		lines = append(lines, "    Created: "+formatTime(task.CreatedAt))
		if task.Status == domain.StatusCompleted && task.CompletedAt != nil {
			lines = append(lines, "    Completed: "+formatTime(*task.CompletedAt))
		}
	}
	return strings.Join(lines, "\n")
}

func formatTime(t time.Time) string {
	return t.Format(displayTimeLayout)
}
