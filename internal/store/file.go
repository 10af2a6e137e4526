package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"taskplanner/internal/models"
)

// File names inside the data directory.
const (
	tasksFile    = "tasks.json"
	mappingsFile = "nfc_mappings.json"
	pingsFile    = "nfc_pings.json"
)

// FileStores bundles the three JSON-file stores over one data directory.
type FileStores struct {
	Tasks    *FileTaskStore
	Mappings *FileMappingStore
	Pings    *FilePingLog
}

// OpenFileStores creates the data directory if needed and returns the
// file-backed stores for it.
func OpenFileStores(dataDir string) (*FileStores, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStores{
		Tasks:    &FileTaskStore{path: filepath.Join(dataDir, tasksFile)},
		Mappings: &FileMappingStore{path: filepath.Join(dataDir, mappingsFile)},
		Pings:    &FilePingLog{path: filepath.Join(dataDir, pingsFile)},
	}, nil
}

// readJSONFile unmarshals the file at path into v. A missing file is not an
// error; v is left at its zero value.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ===== Tasks =====

// FileTaskStore persists tasks as a JSON array, read and rewritten whole on
// every operation.
type FileTaskStore struct {
	mu   sync.Mutex
	path string
}

func (s *FileTaskStore) load() ([]models.Task, error) {
	var tasks []models.Task
	if err := readJSONFile(s.path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *FileTaskStore) save(tasks []models.Task) error {
	return writeJSONFile(s.path, tasks)
}

func (s *FileTaskStore) List() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileTaskStore) Get(index int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return models.Task{}, err
	}
	if index < 1 || index > len(tasks) {
		return models.Task{}, ErrNotFound
	}
	return tasks[index-1], nil
}

func (s *FileTaskStore) FindByTitle(title string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	if idx := findByTitle(tasks, title); idx > 0 {
		return idx, nil
	}
	return 0, ErrNotFound
}

func (s *FileTaskStore) Add(task models.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	task.ID = len(tasks) + 1
	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return 0, err
	}
	return task.ID, nil
}

func (s *FileTaskStore) SetStatus(index int, status *int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	newStatus, err := setStatus(tasks, index, status)
	if err != nil {
		return 0, err
	}
	if err := s.save(tasks); err != nil {
		return 0, err
	}
	return newStatus, nil
}

func (s *FileTaskStore) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return err
	}
	tasks, err = removeAt(tasks, index)
	if err != nil {
		return err
	}
	return s.save(tasks)
}

func (s *FileTaskStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (s *FileTaskStore) Stats() (models.TaskStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return models.TaskStats{}, err
	}
	return computeStats(tasks), nil
}

func (s *FileTaskStore) Sort(by string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.load()
	if err != nil {
		return err
	}
	if err := sortTasks(tasks, by); err != nil {
		return err
	}
	return s.save(tasks)
}

// ===== Mappings =====

// FileMappingStore persists tag-to-title mappings as a JSON object. Older
// mapping files stored full task objects as values; those still load, with
// the title extracted.
type FileMappingStore struct {
	mu   sync.Mutex
	path string
}

func (s *FileMappingStore) load() (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := readJSONFile(s.path, &raw); err != nil {
		return nil, err
	}
	mappings := make(map[string]string, len(raw))
	for tagID, val := range raw {
		var title string
		if err := json.Unmarshal(val, &title); err == nil {
			mappings[tagID] = title
			continue
		}
		// Legacy format: value is a task object.
		var obj struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(val, &obj); err == nil {
			mappings[tagID] = obj.Title
		}
	}
	return mappings, nil
}

func (s *FileMappingStore) save(mappings map[string]string) error {
	return writeJSONFile(s.path, mappings)
}

func (s *FileMappingStore) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileMappingStore) Get(tagID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mappings, err := s.load()
	if err != nil {
		return "", err
	}
	title, ok := mappings[tagID]
	if !ok {
		return "", ErrNotFound
	}
	return title, nil
}

func (s *FileMappingStore) Put(tagID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mappings, err := s.load()
	if err != nil {
		return err
	}
	mappings[tagID] = title
	return s.save(mappings)
}

func (s *FileMappingStore) Remove(tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mappings, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := mappings[tagID]; !ok {
		return ErrNotFound
	}
	delete(mappings, tagID)
	return s.save(mappings)
}

func (s *FileMappingStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mappings, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(mappings), nil
}

// ===== Pings =====

// FilePingLog persists scan events as a JSON array capped at MaxPings
// entries, newest appended last.
type FilePingLog struct {
	mu   sync.Mutex
	path string
}

func (s *FilePingLog) load() ([]models.PingEvent, error) {
	var pings []models.PingEvent
	if err := readJSONFile(s.path, &pings); err != nil {
		return nil, err
	}
	return pings, nil
}

func (s *FilePingLog) Append(event models.PingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pings, err := s.load()
	if err != nil {
		return err
	}
	pings = append(pings, event)
	if len(pings) > MaxPings {
		pings = pings[len(pings)-MaxPings:]
	}
	return writeJSONFile(s.path, pings)
}

func (s *FilePingLog) Recent(limit int) ([]models.PingEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pings, err := s.load()
	if err != nil {
		return nil, err
	}
	return recent(pings, limit), nil
}

func (s *FilePingLog) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pings, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(pings), nil
}

func recent(pings []models.PingEvent, limit int) []models.PingEvent {
	if limit <= 0 || limit > len(pings) {
		limit = len(pings)
	}
	out := make([]models.PingEvent, limit)
	copy(out, pings[len(pings)-limit:])
	return out
}
