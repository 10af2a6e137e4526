package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"taskplanner/internal/models"
)

func openTestStores(t *testing.T) *FileStores {
	t.Helper()
	stores, err := OpenFileStores(t.TempDir())
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	return stores
}

func TestFileTaskStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	stores, err := OpenFileStores(dir)
	if err != nil {
		t.Fatal(err)
	}
	tasks := stores.Tasks

	idx, err := tasks.Add(models.NewTask("Water Plants"))
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("first index = %d, want 1", idx)
	}
	if idx, err = tasks.Add(models.NewTask("Feed Cat")); err != nil || idx != 2 {
		t.Fatalf("second add: index %d err %v", idx, err)
	}

	// Lookup is case-insensitive and ignores surrounding spaces.
	if idx, err := tasks.FindByTitle("  water plants "); err != nil || idx != 1 {
		t.Errorf("FindByTitle = %d, %v; want 1, nil", idx, err)
	}
	if _, err := tasks.FindByTitle("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// A second store over the same directory sees persisted state.
	reopened, err := OpenFileStores(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := reopened.Tasks.Count(); n != 2 {
		t.Errorf("reopened count = %d, want 2", n)
	}
}

func TestFileTaskStoreStatusCycle(t *testing.T) {
	tasks := openTestStores(t).Tasks
	if _, err := tasks.Add(models.NewTask("Water Plants")); err != nil {
		t.Fatal(err)
	}

	for _, want := range []int{1, 2, 0, 1} {
		got, err := tasks.SetStatus(1, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("cycled to %d, want %d", got, want)
		}
	}

	// Explicit statuses are clamped to 0..2.
	five := 5
	if got, _ := tasks.SetStatus(1, &five); got != 2 {
		t.Errorf("clamped status = %d, want 2", got)
	}
	neg := -3
	if got, _ := tasks.SetStatus(1, &neg); got != 0 {
		t.Errorf("clamped status = %d, want 0", got)
	}
}

func TestFileTaskStoreRemoveRenumbers(t *testing.T) {
	tasks := openTestStores(t).Tasks
	for _, title := range []string{"a", "b", "c"} {
		if _, err := tasks.Add(models.NewTask(title)); err != nil {
			t.Fatal(err)
		}
	}

	if err := tasks.Remove(2); err != nil {
		t.Fatal(err)
	}
	list, err := tasks.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Title != "a" || list[1].Title != "c" {
		t.Fatalf("unexpected list after remove: %+v", list)
	}
	if list[1].ID != 2 {
		t.Errorf("remaining task id = %d, want renumbered to 2", list[1].ID)
	}

	if err := tasks.Remove(5); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove out of range: err = %v, want ErrNotFound", err)
	}
}

func TestFileTaskStoreSort(t *testing.T) {
	tasks := openTestStores(t).Tasks
	for _, tc := range []struct {
		title    string
		priority int
	}{{"low", 1}, {"high", 9}, {"mid", 5}} {
		task := models.NewTask(tc.title)
		task.Priority = tc.priority
		if _, err := tasks.Add(task); err != nil {
			t.Fatal(err)
		}
	}

	if err := tasks.Sort("priority"); err != nil {
		t.Fatal(err)
	}
	list, _ := tasks.List()
	if list[0].Title != "high" || list[2].Title != "low" {
		t.Errorf("priority sort order wrong: %s, %s, %s", list[0].Title, list[1].Title, list[2].Title)
	}
	if list[0].ID != 1 {
		t.Errorf("ids not renumbered after sort: first id = %d", list[0].ID)
	}

	if err := tasks.Sort("favorite_color"); err == nil {
		t.Error("unknown sort criteria accepted")
	}
}

func TestFileMappingStore(t *testing.T) {
	mappings := openTestStores(t).Mappings

	if err := mappings.Put("04:AA:BB:CC", "Water Plants"); err != nil {
		t.Fatal(err)
	}
	if title, err := mappings.Get("04:AA:BB:CC"); err != nil || title != "Water Plants" {
		t.Errorf("Get = %q, %v", title, err)
	}
	if _, err := mappings.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := mappings.Remove("04:AA:BB:CC"); err != nil {
		t.Fatal(err)
	}
	if err := mappings.Remove("04:AA:BB:CC"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double remove: err = %v, want ErrNotFound", err)
	}
}

func TestFileMappingStoreLegacyFormat(t *testing.T) {
	dir := t.TempDir()
	// Older mapping files stored whole task objects as values.
	legacy := `{
  "04:AA:BB:CC": {"id": null, "title": "Water Plants", "status": 1},
  "04:DD:EE:FF": "Feed Cat"
}`
	if err := os.WriteFile(filepath.Join(dir, mappingsFile), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	stores, err := OpenFileStores(dir)
	if err != nil {
		t.Fatal(err)
	}
	all, err := stores.Mappings.All()
	if err != nil {
		t.Fatal(err)
	}
	if all["04:AA:BB:CC"] != "Water Plants" || all["04:DD:EE:FF"] != "Feed Cat" {
		t.Errorf("legacy mappings not normalized: %v", all)
	}
}

func TestFilePingLogRecent(t *testing.T) {
	pings := openTestStores(t).Pings

	for i := 0; i < 5; i++ {
		err := pings.Append(models.PingEvent{ID: fmt.Sprintf("p%d", i), TagID: "T1", Action: "task_incremented"})
		if err != nil {
			t.Fatal(err)
		}
	}

	recent, err := pings.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != "p3" || recent[1].ID != "p4" {
		t.Fatalf("Recent(2) = %+v, want p3, p4", recent)
	}

	// Oversized and zero limits return everything.
	if all, _ := pings.Recent(50); len(all) != 5 {
		t.Errorf("Recent(50) returned %d events, want 5", len(all))
	}
	if all, _ := pings.Recent(0); len(all) != 5 {
		t.Errorf("Recent(0) returned %d events, want 5", len(all))
	}
}

func TestPingLogEvictsOldest(t *testing.T) {
	// The cap behavior is identical in both implementations; the memory log
	// keeps this test fast.
	pings := NewMemoryPingLog()

	for i := 0; i < MaxPings+5; i++ {
		if err := pings.Append(models.PingEvent{ID: fmt.Sprintf("p%d", i)}); err != nil {
			t.Fatal(err)
		}
	}

	if n, _ := pings.Count(); n != MaxPings {
		t.Fatalf("count = %d, want %d", n, MaxPings)
	}
	all, _ := pings.Recent(0)
	if all[0].ID != "p5" {
		t.Errorf("oldest surviving event = %s, want p5 (FIFO eviction)", all[0].ID)
	}
	if all[len(all)-1].ID != fmt.Sprintf("p%d", MaxPings+4) {
		t.Errorf("newest event = %s, want p%d", all[len(all)-1].ID, MaxPings+4)
	}
}

func TestTaskStats(t *testing.T) {
	tasks := NewMemoryTaskStore()

	overdue := models.NewTask("overdue")
	overdue.DueDate = "2020-01-01"
	done := models.NewTask("done")
	done.Status = models.StatusCompleted
	done.DueDate = "2020-01-01" // completed tasks are never overdue
	inProgress := models.NewTask("going")
	inProgress.Status = models.StatusInProgress
	for _, task := range []models.Task{overdue, done, inProgress} {
		if _, err := tasks.Add(task); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := tasks.Stats()
	if err != nil {
		t.Fatal(err)
	}
	want := models.TaskStats{Total: 3, NotStarted: 1, InProgress: 1, Completed: 1, Overdue: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}
