// Package scan implements the tag-scan logic: resolve the tag's mapping,
// create or cycle the task, record the event in the ping log and push the
// new status to the hardware sink.
package scan

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskplanner/internal/hardware"
	"taskplanner/internal/models"
	"taskplanner/internal/store"
)

// Scan outcome actions, recorded in the ping log and returned to the caller.
const (
	ActionIncremented          = "task_incremented"
	ActionCreatedRemapped      = "task_created_remapped"
	ActionMappedAndIncremented = "task_mapped_and_incremented"
	ActionCreatedAndMapped     = "task_created_and_mapped"
)

// DefaultReader is used when a scan request does not name its reader.
const DefaultReader = "api"

// ErrUnmappedTag is returned for a scan of an unmapped tag with no task
// title to map it to. Nothing is mutated in that case.
var ErrUnmappedTag = errors.New("unmapped_tag")

// ErrMissingTagID is returned when the scan request has no tag id.
var ErrMissingTagID = errors.New("missing tag_id")

type Request struct {
	TagID     string
	TaskTitle string
	Reader    string
}

type Result struct {
	Action     string
	TagID      string
	TaskTitle  string
	TaskIndex  int
	NewStatus  int
	StatusName string
	// Created reports whether this scan created a task.
	Created bool
}

// Scanner owns one scan flow over the three stores and the hardware sink.
type Scanner struct {
	mu       sync.Mutex
	tasks    store.TaskStore
	mappings store.MappingStore
	pings    store.PingLog
	sink     hardware.StatusSink
}

func New(tasks store.TaskStore, mappings store.MappingStore, pings store.PingLog, sink hardware.StatusSink) *Scanner {
	if sink == nil {
		sink = hardware.NopSink{}
	}
	return &Scanner{tasks: tasks, mappings: mappings, pings: pings, sink: sink}
}

// Scan handles one tag scan. Whole scans are serialized so two scans of the
// same tag cannot interleave their read-modify-write of the stores.
func (s *Scanner) Scan(req Request) (*Result, error) {
	tagID := strings.TrimSpace(req.TagID)
	if tagID == "" {
		return nil, ErrMissingTagID
	}
	reader := req.Reader
	if reader == "" {
		reader = DefaultReader
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	storedTitle, err := s.mappings.Get(tagID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	// An empty stored title is a tag recorded but never assigned; treat it
	// like an unmapped tag.
	if err == nil && storedTitle != "" {
		return s.scanMapped(tagID, storedTitle, req.TaskTitle, reader)
	}
	return s.scanUnmapped(tagID, req.TaskTitle, reader)
}

func (s *Scanner) scanMapped(tagID, storedTitle, suppliedTitle, reader string) (*Result, error) {
	index, err := s.tasks.FindByTitle(storedTitle)
	if err == nil {
		newStatus, err := s.tasks.SetStatus(index, nil)
		if err != nil {
			return nil, err
		}
		s.pushStatus(newStatus)
		s.logPing(tagID, ActionIncremented, storedTitle, index, &newStatus, reader)
		return &Result{
			Action:     ActionIncremented,
			TagID:      tagID,
			TaskTitle:  storedTitle,
			TaskIndex:  index,
			NewStatus:  newStatus,
			StatusName: models.StatusName(newStatus),
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// Mapped task was deleted; recreate it at status 0, preferring a freshly
	// supplied title over the stored one.
	title := suppliedTitle
	if title == "" {
		title = storedTitle
	}
	index, err = s.tasks.Add(models.NewTask(title))
	if err != nil {
		return nil, err
	}
	if err := s.mappings.Put(tagID, title); err != nil {
		return nil, err
	}
	s.pushStatus(models.StatusNotStarted)
	s.logPing(tagID, ActionCreatedRemapped, title, index, nil, reader)
	return &Result{
		Action:     ActionCreatedRemapped,
		TagID:      tagID,
		TaskTitle:  title,
		TaskIndex:  index,
		NewStatus:  models.StatusNotStarted,
		StatusName: models.StatusName(models.StatusNotStarted),
		Created:    true,
	}, nil
}

func (s *Scanner) scanUnmapped(tagID, title, reader string) (*Result, error) {
	if title == "" {
		return nil, ErrUnmappedTag
	}

	index, err := s.tasks.FindByTitle(title)
	if err == nil {
		// Task already exists: map the tag to it and cycle.
		if err := s.mappings.Put(tagID, title); err != nil {
			return nil, err
		}
		newStatus, err := s.tasks.SetStatus(index, nil)
		if err != nil {
			return nil, err
		}
		s.pushStatus(newStatus)
		s.logPing(tagID, ActionMappedAndIncremented, title, index, &newStatus, reader)
		return &Result{
			Action:     ActionMappedAndIncremented,
			TagID:      tagID,
			TaskTitle:  title,
			TaskIndex:  index,
			NewStatus:  newStatus,
			StatusName: models.StatusName(newStatus),
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	index, err = s.tasks.Add(models.NewTask(title))
	if err != nil {
		return nil, err
	}
	if err := s.mappings.Put(tagID, title); err != nil {
		return nil, err
	}
	s.pushStatus(models.StatusNotStarted)
	s.logPing(tagID, ActionCreatedAndMapped, title, index, nil, reader)
	return &Result{
		Action:     ActionCreatedAndMapped,
		TagID:      tagID,
		TaskTitle:  title,
		TaskIndex:  index,
		NewStatus:  models.StatusNotStarted,
		StatusName: models.StatusName(models.StatusNotStarted),
		Created:    true,
	}, nil
}

// ScanTaskID handles a scan that addresses a task index directly instead of
// a tag UID (numeric GET scans from readers that can only fire URLs). When
// the task is missing and a title is supplied, the task is created and the
// numeric identifier mapped to it like any other tag.
func (s *Scanner) ScanTaskID(id int, title, reader string) (*Result, error) {
	if reader == "" {
		reader = DefaultReader
	}
	tagID := strconv.Itoa(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	newStatus, err := s.tasks.SetStatus(id, nil)
	if err == nil {
		s.pushStatus(newStatus)
		s.logPing(tagID, ActionIncremented, "", id, &newStatus, reader)
		return &Result{
			Action:     ActionIncremented,
			TagID:      tagID,
			TaskIndex:  id,
			NewStatus:  newStatus,
			StatusName: models.StatusName(newStatus),
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if title == "" {
		return nil, store.ErrNotFound
	}

	index, err := s.tasks.Add(models.NewTask(title))
	if err != nil {
		return nil, err
	}
	if err := s.mappings.Put(tagID, title); err != nil {
		return nil, err
	}
	s.pushStatus(models.StatusNotStarted)
	s.logPing(tagID, ActionCreatedAndMapped, title, index, nil, reader)
	return &Result{
		Action:     ActionCreatedAndMapped,
		TagID:      tagID,
		TaskTitle:  title,
		TaskIndex:  index,
		NewStatus:  models.StatusNotStarted,
		StatusName: models.StatusName(models.StatusNotStarted),
		Created:    true,
	}, nil
}

// pushStatus updates the LED. Best-effort: failures are logged and the scan
// still succeeds.
func (s *Scanner) pushStatus(status int) {
	if err := s.sink.SetStatus(status); err != nil {
		log.Printf("hardware status update failed: %v", err)
	}
}

// logPing appends the event to the scan log. A failed append does not fail
// the scan; the state change already happened.
func (s *Scanner) logPing(tagID, action, title string, index int, newStatus *int, reader string) {
	event := models.PingEvent{
		ID:        uuid.New().String(),
		TagID:     tagID,
		Action:    action,
		TaskTitle: title,
		TaskIndex: index,
		NewStatus: newStatus,
		Reader:    reader,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := s.pings.Append(event); err != nil {
		log.Printf("failed to log ping for tag %s: %v", tagID, err)
	}
}
