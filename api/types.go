package api

import "taskdesk/domain"

const requestBodyMaxSize = 64 * 1024 // 64 KiB

// POST /api/tasks request body.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// PUT /api/tasks/:id request body. Absent fields keep their stored values.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// GET /api/tasks response body.
type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
