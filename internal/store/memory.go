package store

import (
	"sync"

	"taskplanner/internal/models"
)

// In-memory store implementations, used by tests and anywhere persistence is
// not wanted.

type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks []models.Task
}

func NewMemoryTaskStore() *MemoryTaskStore { return &MemoryTaskStore{} }

func (s *MemoryTaskStore) List() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *MemoryTaskStore) Get(index int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 1 || index > len(s.tasks) {
		return models.Task{}, ErrNotFound
	}
	return s.tasks[index-1], nil
}

func (s *MemoryTaskStore) FindByTitle(title string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := findByTitle(s.tasks, title); idx > 0 {
		return idx, nil
	}
	return 0, ErrNotFound
}

func (s *MemoryTaskStore) Add(task models.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = len(s.tasks) + 1
	s.tasks = append(s.tasks, task)
	return task.ID, nil
}

func (s *MemoryTaskStore) SetStatus(index int, status *int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setStatus(s.tasks, index, status)
}

func (s *MemoryTaskStore) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := removeAt(s.tasks, index)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

func (s *MemoryTaskStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks), nil
}

func (s *MemoryTaskStore) Stats() (models.TaskStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeStats(s.tasks), nil
}

func (s *MemoryTaskStore) Sort(by string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortTasks(s.tasks, by)
}

type MemoryMappingStore struct {
	mu       sync.Mutex
	mappings map[string]string
}

func NewMemoryMappingStore() *MemoryMappingStore {
	return &MemoryMappingStore{mappings: make(map[string]string)}
}

func (s *MemoryMappingStore) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.mappings))
	for k, v := range s.mappings {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryMappingStore) Get(tagID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	title, ok := s.mappings[tagID]
	if !ok {
		return "", ErrNotFound
	}
	return title, nil
}

func (s *MemoryMappingStore) Put(tagID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[tagID] = title
	return nil
}

func (s *MemoryMappingStore) Remove(tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mappings[tagID]; !ok {
		return ErrNotFound
	}
	delete(s.mappings, tagID)
	return nil
}

func (s *MemoryMappingStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mappings), nil
}

type MemoryPingLog struct {
	mu    sync.Mutex
	pings []models.PingEvent
}

func NewMemoryPingLog() *MemoryPingLog { return &MemoryPingLog{} }

func (s *MemoryPingLog) Append(event models.PingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pings = append(s.pings, event)
	if len(s.pings) > MaxPings {
		s.pings = s.pings[len(s.pings)-MaxPings:]
	}
	return nil
}

func (s *MemoryPingLog) Recent(limit int) ([]models.PingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recent(s.pings, limit), nil
}

func (s *MemoryPingLog) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pings), nil
}
