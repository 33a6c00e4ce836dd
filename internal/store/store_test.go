package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/workforce.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Document load/save
// ============================================================

func TestLoadMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInitializeIfAbsent(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.InitializeIfAbsent()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Workers == nil || len(doc.Workers) != 0 {
		t.Fatalf("expected empty workers slice, got %v", doc.Workers)
	}
	if doc.Settings.Currency != "USD" || doc.Settings.DefaultRate != 15.00 {
		t.Fatalf("unexpected default settings: %+v", doc.Settings)
	}
	if doc.Settings.OvertimeMultiplier != 1.5 || doc.Settings.MaxHoursPerDay != 24 {
		t.Fatalf("unexpected default settings: %+v", doc.Settings)
	}
	if doc.Metadata.Version != "2.0.0" {
		t.Fatalf("expected version 2.0.0, got %q", doc.Metadata.Version)
	}
	if doc.Metadata.Created == "" || doc.Metadata.LastModified == "" {
		t.Fatal("expected metadata timestamps")
	}
}

func TestInitializeIfAbsentKeepsExisting(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.InitializeIfAbsent()
	if err != nil {
		t.Fatal(err)
	}
	doc.Workers = append(doc.Workers, Worker{ID: "w1", Name: "Jane"})
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}

	again, err := s.InitializeIfAbsent()
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Workers) != 1 || again.Workers[0].Name != "Jane" {
		t.Fatalf("existing document was replaced: %+v", again.Workers)
	}
}

func TestSaveStampsLastModified(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.InitializeIfAbsent()
	if err != nil {
		t.Fatal(err)
	}
	before := doc.Metadata.LastModified

	time.Sleep(5 * time.Millisecond)
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Metadata.LastModified < before {
		t.Fatalf("lastModified went backwards: %q -> %q", before, loaded.Metadata.LastModified)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	doc, _ := s.InitializeIfAbsent()
	doc.Workers = append(doc.Workers, Worker{ID: "w1", Name: "Jane", Rate: 25, Status: WorkerActive})
	doc.Tasks = append(doc.Tasks, Task{ID: "t1", Title: "Report", Status: TaskTodo, Priority: PriorityHigh})
	doc.TimeEntries = append(doc.TimeEntries, TimeEntry{ID: "e1", WorkerID: "w1", Date: "2026-08-28", Hours: 4, Rate: 25})

	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Workers) != 1 || loaded.Workers[0].Name != "Jane" {
		t.Fatalf("workers not round-tripped: %+v", loaded.Workers)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Priority != PriorityHigh {
		t.Fatalf("tasks not round-tripped: %+v", loaded.Tasks)
	}
	if loaded.TimeEntries[0].Earnings() != 100 {
		t.Fatalf("expected earnings 100, got %g", loaded.TimeEntries[0].Earnings())
	}
}

func TestLoadCorruptValueReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.setValue(keyData, "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt value, got %v", err)
	}

	// InitializeIfAbsent recovers by writing a fresh document.
	doc, err := s.InitializeIfAbsent()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Workers) != 0 {
		t.Fatalf("expected fresh document, got %+v", doc)
	}
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)
	doc, _ := s.InitializeIfAbsent()
	doc.Workers = append(doc.Workers, Worker{ID: "w1", Name: "Jane"})
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePreferences(&Preferences{Theme: "light"}); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Workers) != 0 {
		t.Fatalf("expected empty document after clear, got %+v", loaded.Workers)
	}
	if _, err := s.LoadPreferences(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected preferences cleared, got %v", err)
	}
}

// ============================================================
// Preferences and app state
// ============================================================

func TestPreferencesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadPreferences(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}

	want := Preferences{Theme: "light", SidebarCollapsed: true}
	if err := s.SavePreferences(&want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if *got != want {
		t.Fatalf("expected %+v, got %+v", want, *got)
	}
}

func TestAppStateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := AppState{CurrentTab: "reports"}
	if err := s.SaveAppState(&want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadAppState()
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentTab != "reports" {
		t.Fatalf("expected reports, got %q", got.CurrentTab)
	}
}

// ============================================================
// Time helpers
// ============================================================

func TestDayOf(t *testing.T) {
	ts := Timestamp()
	if DayOf(ts) != Day(time.Now()) {
		t.Fatalf("DayOf(Timestamp()) = %q, want %q", DayOf(ts), Day(time.Now()))
	}
	if DayOf("2026-08-28T10:30:00+02:00") != "2026-08-28" {
		t.Fatalf("unexpected day: %q", DayOf("2026-08-28T10:30:00+02:00"))
	}
	if DayOf("short") != "short" {
		t.Fatalf("short input should pass through, got %q", DayOf("short"))
	}
}
