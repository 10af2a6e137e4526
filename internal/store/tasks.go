package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taskplanner/internal/models"
)

// Task list manipulation shared by the file and memory stores. All helpers
// take the slice by value or pointer and leave persistence to the caller.

func renumber(tasks []models.Task) {
	for i := range tasks {
		tasks[i].ID = i + 1
	}
}

func findByTitle(tasks []models.Task, title string) int {
	want := strings.ToLower(strings.TrimSpace(title))
	for i, t := range tasks {
		if strings.ToLower(strings.TrimSpace(t.Title)) == want {
			return i + 1
		}
	}
	return 0
}

func setStatus(tasks []models.Task, index int, status *int) (int, error) {
	if index < 1 || index > len(tasks) {
		return 0, ErrNotFound
	}
	t := &tasks[index-1]
	if status == nil {
		t.Status = models.NextStatus(t.Status)
	} else {
		t.Status = models.ClampStatus(*status)
	}
	t.UpdatedAt = time.Now().Format(time.RFC3339)
	return t.Status, nil
}

func removeAt(tasks []models.Task, index int) ([]models.Task, error) {
	if index < 1 || index > len(tasks) {
		return tasks, ErrNotFound
	}
	tasks = append(tasks[:index-1], tasks[index:]...)
	renumber(tasks)
	return tasks, nil
}

func computeStats(tasks []models.Task) models.TaskStats {
	stats := models.TaskStats{Total: len(tasks)}
	today := time.Now()
	for _, t := range tasks {
		switch t.Status {
		case models.StatusNotStarted:
			stats.NotStarted++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		}
		if t.HasSubtasks {
			stats.HasSubtasks++
		}
		if t.DueDate != "" && t.Status != models.StatusCompleted {
			if due, err := parseDueDate(t.DueDate); err == nil && due.Before(today) {
				stats.Overdue++
			}
		}
	}
	return stats
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func sortTasks(tasks []models.Task, by string) error {
	switch by {
	case "priority":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Priority > tasks[j].Priority })
	case "due_date":
		noDue := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		key := func(t models.Task) time.Time {
			if t.DueDate == "" {
				return noDue
			}
			due, err := parseDueDate(t.DueDate)
			if err != nil {
				return noDue
			}
			return due
		}
		sort.SliceStable(tasks, func(i, j int) bool { return key(tasks[i]).Before(key(tasks[j])) })
	case "effort":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Effort < tasks[j].Effort })
	case "status":
		sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Status < tasks[j].Status })
	case "title":
		sort.SliceStable(tasks, func(i, j int) bool {
			return strings.ToLower(tasks[i].Title) < strings.ToLower(tasks[j].Title)
		})
	default:
		return fmt.Errorf("unknown sort criteria: %s", by)
	}
	renumber(tasks)
	return nil
}
