package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"taskplanner/internal/models"
	"taskplanner/internal/scan"
	"taskplanner/internal/store"
)

type scanRequest struct {
	TagID     string `json:"tag_id"`
	TaskTitle string `json:"task_title"`
	Reader    string `json:"reader"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TagID == "" {
		writeError(w, http.StatusBadRequest, "missing_tag_id", "Missing tag_id")
		return
	}
	s.runScan(w, scan.Request{TagID: req.TagID, TaskTitle: req.TaskTitle, Reader: req.Reader})
}

// handleScanGet serves scans fired as bare GETs by readers that cannot POST.
// A numeric identifier addresses a task index directly; anything else is a
// tag UID. Optional query params: task_title, reader.
func (s *Server) handleScanGet(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]
	q := r.URL.Query()
	title := q.Get("task_title")
	reader := q.Get("reader")

	if id, err := strconv.Atoi(identifier); err == nil {
		result, err := s.scanner.ScanTaskID(id, title, reader)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task_not_found", "Task not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "scan_failed", err.Error())
			return
		}
		writeScanResult(w, result)
		return
	}

	s.runScan(w, scan.Request{TagID: identifier, TaskTitle: title, Reader: reader})
}

func (s *Server) runScan(w http.ResponseWriter, req scan.Request) {
	result, err := s.scanner.Scan(req)
	switch {
	case errors.Is(err, scan.ErrUnmappedTag):
		writeError(w, http.StatusBadRequest, "unmapped_tag",
			"Tag is not mapped to a task. Provide task_title to create and map one.")
	case errors.Is(err, scan.ErrMissingTagID):
		writeError(w, http.StatusBadRequest, "missing_tag_id", "Missing tag_id")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "scan_failed", err.Error())
	default:
		writeScanResult(w, result)
	}
}

func writeScanResult(w http.ResponseWriter, result *scan.Result) {
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"status":      result.Action,
		"tag_id":      result.TagID,
		"task_title":  result.TaskTitle,
		"task_index":  result.TaskIndex,
		"new_status":  result.NewStatus,
		"status_name": result.StatusName,
	})
}

func (s *Server) handleGetMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.mappings.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mappings": mappings})
}

// handleCreateMapping maps a tag to a task without cycling it, creating the
// task when it does not exist yet.
func (s *Server) handleCreateMapping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TagID     string `json:"tag_id"`
		TaskTitle string `json:"task_title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TagID == "" || req.TaskTitle == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "Missing tag_id or task_title")
		return
	}

	index, err := s.tasks.FindByTitle(req.TaskTitle)
	if errors.Is(err, store.ErrNotFound) {
		index, err = s.tasks.Add(models.NewTask(req.TaskTitle))
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	if err := s.mappings.Put(req.TagID, req.TaskTitle); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":     "mapping_created",
		"tag_id":     req.TagID,
		"task_title": req.TaskTitle,
		"task_index": index,
	})
}

func (s *Server) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	tagID := mux.Vars(r)["tag_id"]
	err := s.mappings.Remove(tagID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "mapping_not_found", "Mapping not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "mapping_deleted",
		"tag_id": tagID,
	})
}

func (s *Server) handleGetPings(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	pings, err := s.pings.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pings": pings,
		"count": len(pings),
	})
}

func (s *Server) handleNFCStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.mappingStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// mappingStats summarizes mappings and recent scan activity.
func (s *Server) mappingStats() (models.MappingStats, error) {
	mappings, err := s.mappings.All()
	if err != nil {
		return models.MappingStats{}, err
	}
	recent, err := s.pings.Recent(100)
	if err != nil {
		return models.MappingStats{}, err
	}

	titles := make(map[string]struct{}, len(mappings))
	for _, title := range mappings {
		titles[title] = struct{}{}
	}
	stats := models.MappingStats{
		TotalMappings: len(mappings),
		UniqueTasks:   len(titles),
		RecentPings:   len(recent),
	}

	usage := make(map[string]int)
	for _, ping := range recent {
		usage[ping.TagID]++
	}
	for tagID, count := range usage {
		if stats.MostUsedTag == nil || count > stats.MostUsedTag.UsageCount {
			mapped := mappings[tagID]
			if mapped == "" {
				mapped = "Unmapped"
			}
			stats.MostUsedTag = &models.TagUsage{
				TagID:      tagID,
				UsageCount: count,
				MappedTask: mapped,
			}
		}
	}
	return stats, nil
}
