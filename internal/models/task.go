package models

import "time"

// Task status values. Status cycles 0 -> 1 -> 2 -> 0 on each scan.
const (
	StatusNotStarted = 0
	StatusInProgress = 1
	StatusCompleted  = 2
)

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Status      int    `json:"status"`
	Priority    int    `json:"priority"`
	Effort      int    `json:"effort"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	HasSubtasks bool   `json:"has_subtasks"`
	Subtasks    []Task `json:"subtasks"`
}

// NewTask returns a task at status 0 with timestamps set to now.
func NewTask(title string) Task {
	now := time.Now().Format(time.RFC3339)
	return Task{
		Title:     title,
		Status:    StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
		Subtasks:  []Task{},
	}
}

// NextStatus returns the status after one cycle step.
func NextStatus(status int) int {
	return (status + 1) % 3
}

// ClampStatus forces a caller-supplied status into the valid 0..2 range.
func ClampStatus(status int) int {
	if status < 0 {
		return 0
	}
	if status > 2 {
		return 2
	}
	return status
}

// StatusName converts a status value to its display name.
func StatusName(status int) string {
	switch status {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// TaskStats summarizes the task store for /api/health and /api/tasks/stats.
type TaskStats struct {
	Total       int `json:"total"`
	NotStarted  int `json:"not_started"`
	InProgress  int `json:"in_progress"`
	Completed   int `json:"completed"`
	HasSubtasks int `json:"has_subtasks"`
	Overdue     int `json:"overdue"`
}
