// Package store holds the persistence contracts for tasks, tag mappings and
// the scan log, plus file-backed and in-memory implementations. Handlers and
// the scan logic only ever see the interfaces so tests can swap in the
// in-memory stores.
package store

import (
	"errors"

	"taskplanner/internal/models"
)

// ErrNotFound is returned for lookups of tasks or mappings that do not exist.
var ErrNotFound = errors.New("not found")

// MaxPings is the scan-log cap; appending beyond it drops the oldest events.
const MaxPings = 1000

// TaskStore is an ordered collection of tasks. Indexes are 1-based and
// positional: removing or sorting rewrites the IDs of the remaining tasks.
type TaskStore interface {
	List() ([]models.Task, error)
	Get(index int) (models.Task, error)
	FindByTitle(title string) (int, error)
	Add(task models.Task) (int, error)
	// SetStatus updates a task's status. A nil status cycles 0->1->2->0,
	// otherwise the supplied value is clamped to 0..2. Returns the new status.
	SetStatus(index int, status *int) (int, error)
	Remove(index int) error
	Count() (int, error)
	Stats() (models.TaskStats, error)
	Sort(by string) error
}

// MappingStore maps NFC tag identifiers to task titles.
type MappingStore interface {
	All() (map[string]string, error)
	Get(tagID string) (string, error)
	Put(tagID, title string) error
	Remove(tagID string) error
	Count() (int, error)
}

// PingLog is the bounded append-only scan log.
type PingLog interface {
	Append(event models.PingEvent) error
	Recent(limit int) ([]models.PingEvent, error)
	Count() (int, error)
}
