package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"taskplanner/internal/models"
	"taskplanner/internal/store"
)

// handleHealth reports store and hardware health without auth, so probes and
// the simulator can check liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	taskStats, err := s.tasks.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	nfcStats, err := s.mappingStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"timestamp":        time.Now().Format(time.RFC3339),
		"task_stats":       taskStats,
		"nfc_stats":        nfcStats,
		"hardware_enabled": s.hardware,
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	total := len(tasks)

	q := r.URL.Query()
	if raw := q.Get("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_status", "status must be an integer")
			return
		}
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	if q.Get("include_subtasks") == "false" {
		for i := range tasks {
			tasks[i].Subtasks = nil
			tasks[i].HasSubtasks = false
		}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":          tasks,
		"total_count":    total,
		"filtered_count": len(tasks),
	})
}

type createTaskRequest struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Effort   int    `json:"effort"`
	DueDate  string `json:"due_date"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "missing_title", "Missing task title")
		return
	}

	task := models.NewTask(req.Title)
	task.Priority = req.Priority
	task.Effort = req.Effort
	task.DueDate = req.DueDate

	index, err := s.tasks.Add(task)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	s.pushStatus(models.StatusNotStarted)

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":     "created",
		"task_index": index,
		"title":      req.Title,
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	task, err := s.tasks.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task_not_found", "Task not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	err := s.tasks.Remove(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task_not_found", "Task not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "deleted",
		"task_id": id,
	})
}

// handleUpdateTaskStatus accepts either an empty body (cycle the status) or
// {"status": 0|1|2} to set it directly.
func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	var req struct {
		Status *int `json:"status"`
	}
	// An empty or absent body is fine; it means cycle.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Status = nil
	}

	newStatus, err := s.tasks.SetStatus(id, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "task_not_found", "Task not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	s.pushStatus(newStatus)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "updated",
		"task_id":     id,
		"new_status":  newStatus,
		"status_name": models.StatusName(newStatus),
	})
}

func (s *Server) handleSortTasks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SortBy string `json:"sort_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SortBy == "" {
		req.SortBy = "priority"
	}
	if err := s.tasks.Sort(req.SortBy); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_sort", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "sorted",
		"sort_by": req.SortBy,
	})
}

func (s *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tasks.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// taskID pulls the numeric id from the route; the route pattern already
// guarantees digits.
func taskID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// pushStatus is the best-effort LED update for the plain task endpoints.
func (s *Server) pushStatus(status int) {
	if err := s.sink.SetStatus(status); err != nil {
		log.Printf("hardware status update failed: %v", err)
	}
}
