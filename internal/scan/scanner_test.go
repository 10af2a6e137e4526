package scan

import (
	"errors"
	"testing"

	"taskplanner/internal/models"
	"taskplanner/internal/store"
)

// recordingSink captures every status pushed to the hardware.
type recordingSink struct {
	statuses []int
	fail     bool
}

func (s *recordingSink) SetStatus(status int) error {
	if s.fail {
		return errors.New("gpio write failed")
	}
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *recordingSink) Close() error { return nil }

type fixture struct {
	tasks    *store.MemoryTaskStore
	mappings *store.MemoryMappingStore
	pings    *store.MemoryPingLog
	sink     *recordingSink
	scanner  *Scanner
}

func newFixture() *fixture {
	f := &fixture{
		tasks:    store.NewMemoryTaskStore(),
		mappings: store.NewMemoryMappingStore(),
		pings:    store.NewMemoryPingLog(),
		sink:     &recordingSink{},
	}
	f.scanner = New(f.tasks, f.mappings, f.pings, f.sink)
	return f
}

func TestScanCreatesThenCycles(t *testing.T) {
	f := newFixture()

	// First scan creates the task and the mapping at status 0, the next
	// three cycle 1 -> 2 -> 0.
	want := []struct {
		action  string
		status  int
		created bool
	}{
		{ActionCreatedAndMapped, 0, true},
		{ActionIncremented, 1, false},
		{ActionIncremented, 2, false},
		{ActionIncremented, 0, false},
	}
	for i, w := range want {
		result, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "Water Plants"})
		if err != nil {
			t.Fatalf("scan %d: %v", i+1, err)
		}
		if result.Action != w.action {
			t.Errorf("scan %d: action = %q, want %q", i+1, result.Action, w.action)
		}
		if result.NewStatus != w.status {
			t.Errorf("scan %d: new status = %d, want %d", i+1, result.NewStatus, w.status)
		}
		if result.Created != w.created {
			t.Errorf("scan %d: created = %v, want %v", i+1, result.Created, w.created)
		}
	}

	if n, _ := f.tasks.Count(); n != 1 {
		t.Errorf("task count = %d, want 1", n)
	}
	if n, _ := f.mappings.Count(); n != 1 {
		t.Errorf("mapping count = %d, want 1", n)
	}
	if n, _ := f.pings.Count(); n != 4 {
		t.Errorf("ping count = %d, want 4", n)
	}

	wantStatuses := []int{0, 1, 2, 0}
	if len(f.sink.statuses) != len(wantStatuses) {
		t.Fatalf("sink got %d updates, want %d", len(f.sink.statuses), len(wantStatuses))
	}
	for i, s := range wantStatuses {
		if f.sink.statuses[i] != s {
			t.Errorf("sink update %d = %d, want %d", i, f.sink.statuses[i], s)
		}
	}
}

func TestScanUnmappedWithoutTitle(t *testing.T) {
	f := newFixture()

	_, err := f.scanner.Scan(Request{TagID: "UNKNOWN"})
	if !errors.Is(err, ErrUnmappedTag) {
		t.Fatalf("err = %v, want ErrUnmappedTag", err)
	}

	// No mutation at all, not even a ping.
	if n, _ := f.tasks.Count(); n != 0 {
		t.Errorf("task count = %d, want 0", n)
	}
	if n, _ := f.mappings.Count(); n != 0 {
		t.Errorf("mapping count = %d, want 0", n)
	}
	if n, _ := f.pings.Count(); n != 0 {
		t.Errorf("ping count = %d, want 0", n)
	}
}

func TestScanMissingTagID(t *testing.T) {
	f := newFixture()
	if _, err := f.scanner.Scan(Request{TagID: "  "}); !errors.Is(err, ErrMissingTagID) {
		t.Fatalf("err = %v, want ErrMissingTagID", err)
	}
}

func TestScanRecreatesDeletedTask(t *testing.T) {
	f := newFixture()

	if _, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "Water Plants"}); err != nil {
		t.Fatal(err)
	}
	if err := f.tasks.Remove(1); err != nil {
		t.Fatal(err)
	}

	// Rescan with no title: the stored mapping title is enough.
	result, err := f.scanner.Scan(Request{TagID: "T1"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionCreatedRemapped {
		t.Errorf("action = %q, want %q", result.Action, ActionCreatedRemapped)
	}
	if result.NewStatus != models.StatusNotStarted {
		t.Errorf("new status = %d, want 0", result.NewStatus)
	}
	if result.TaskTitle != "Water Plants" {
		t.Errorf("task title = %q, want %q", result.TaskTitle, "Water Plants")
	}
	if _, err := f.tasks.FindByTitle("Water Plants"); err != nil {
		t.Errorf("recreated task not found: %v", err)
	}
}

func TestScanRecreateUsesSuppliedTitle(t *testing.T) {
	f := newFixture()

	if _, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "Old Title"}); err != nil {
		t.Fatal(err)
	}
	if err := f.tasks.Remove(1); err != nil {
		t.Fatal(err)
	}

	result, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "New Title"})
	if err != nil {
		t.Fatal(err)
	}
	if result.TaskTitle != "New Title" {
		t.Errorf("task title = %q, want %q", result.TaskTitle, "New Title")
	}
	if title, _ := f.mappings.Get("T1"); title != "New Title" {
		t.Errorf("mapping = %q, want %q", title, "New Title")
	}
}

func TestScanMapsExistingTask(t *testing.T) {
	f := newFixture()

	if _, err := f.tasks.Add(models.NewTask("Feed Cat")); err != nil {
		t.Fatal(err)
	}

	result, err := f.scanner.Scan(Request{TagID: "T2", TaskTitle: "feed cat"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionMappedAndIncremented {
		t.Errorf("action = %q, want %q", result.Action, ActionMappedAndIncremented)
	}
	if result.NewStatus != models.StatusInProgress {
		t.Errorf("new status = %d, want 1", result.NewStatus)
	}
	if n, _ := f.tasks.Count(); n != 1 {
		t.Errorf("task count = %d, want 1 (no duplicate)", n)
	}
}

func TestScanSinkFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.sink.fail = true

	result, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "Water Plants"})
	if err != nil {
		t.Fatalf("scan failed on sink error: %v", err)
	}
	if result.Action != ActionCreatedAndMapped {
		t.Errorf("action = %q, want %q", result.Action, ActionCreatedAndMapped)
	}
}

func TestScanLogsPingDetails(t *testing.T) {
	f := newFixture()

	if _, err := f.scanner.Scan(Request{TagID: "T1", TaskTitle: "Water Plants", Reader: "door"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.scanner.Scan(Request{TagID: "T1"}); err != nil {
		t.Fatal(err)
	}

	pings, err := f.pings.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pings) != 2 {
		t.Fatalf("ping count = %d, want 2", len(pings))
	}

	created, incremented := pings[0], pings[1]
	if created.Reader != "door" {
		t.Errorf("reader = %q, want %q", created.Reader, "door")
	}
	if created.ID == "" || created.Timestamp == "" {
		t.Error("ping missing id or timestamp")
	}
	if created.NewStatus != nil {
		t.Error("creation ping should not carry new_status")
	}
	if incremented.Reader != DefaultReader {
		t.Errorf("reader = %q, want default %q", incremented.Reader, DefaultReader)
	}
	if incremented.NewStatus == nil || *incremented.NewStatus != 1 {
		t.Errorf("incremented ping new_status = %v, want 1", incremented.NewStatus)
	}
}

func TestScanTaskID(t *testing.T) {
	f := newFixture()

	if _, err := f.tasks.Add(models.NewTask("Water Plants")); err != nil {
		t.Fatal(err)
	}

	result, err := f.scanner.ScanTaskID(1, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionIncremented || result.NewStatus != 1 {
		t.Errorf("got action %q status %d, want %q status 1", result.Action, result.NewStatus, ActionIncremented)
	}

	if _, err := f.scanner.ScanTaskID(99, "", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	result, err = f.scanner.ScanTaskID(99, "Sweep Floor", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionCreatedAndMapped || !result.Created {
		t.Errorf("action = %q created = %v, want created-and-mapped", result.Action, result.Created)
	}
	if title, _ := f.mappings.Get("99"); title != "Sweep Floor" {
		t.Errorf("mapping for 99 = %q, want %q", title, "Sweep Floor")
	}
}
