package repo

import (
	"errors"
	"testing"

	"github.com/dnoice/workforce-tracker/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }
func boolPtr(b bool) *bool        { return &b }

// ============================================================
// Identifiers
// ============================================================

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

// ============================================================
// Workers
// ============================================================

func TestAddAndGetWorker(t *testing.T) {
	r := newTestRepo(t)
	w, err := r.AddWorker(store.Worker{Name: "Jane", Rate: 25})
	if err != nil {
		t.Fatal(err)
	}
	if w.ID == "" || w.CreatedAt == "" {
		t.Fatalf("expected id and createdAt, got %+v", w)
	}
	if w.Status != store.WorkerActive {
		t.Fatalf("expected default status active, got %q", w.Status)
	}

	got, err := r.GetWorker(w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jane" || got.Rate != 25 {
		t.Fatalf("unexpected worker: %+v", got)
	}
}

func TestGetWorkerNotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.GetWorker("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListWorkersInsertionOrder(t *testing.T) {
	r := newTestRepo(t)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if _, err := r.AddWorker(store.Worker{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	workers, err := r.ListWorkers()
	if err != nil {
		t.Fatal(err)
	}
	if len(workers) != 3 {
		t.Fatalf("expected 3 workers, got %d", len(workers))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if workers[i].Name != want {
			t.Fatalf("order broken at %d: got %q, want %q", i, workers[i].Name, want)
		}
	}
}

func TestUpdateWorkerPartial(t *testing.T) {
	r := newTestRepo(t)
	w, _ := r.AddWorker(store.Worker{Name: "Jane", Rate: 25, Department: "Design"})

	got, err := r.UpdateWorker(w.ID, WorkerPatch{Rate: floatPtr(30)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Rate != 30 {
		t.Fatalf("rate not updated: %g", got.Rate)
	}
	if got.Name != "Jane" || got.Department != "Design" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateWorkerEmptyPatchStillWrites(t *testing.T) {
	r := newTestRepo(t)
	w, _ := r.AddWorker(store.Worker{Name: "Jane"})

	docBefore, _ := r.Document()
	before := docBefore.Metadata.LastModified

	if _, err := r.UpdateWorker(w.ID, WorkerPatch{}); err != nil {
		t.Fatal(err)
	}

	docAfter, _ := r.Document()
	if docAfter.Metadata.LastModified < before {
		t.Fatal("empty patch should still rewrite the document")
	}
}

func TestDeleteWorkerKeepsReferences(t *testing.T) {
	r := newTestRepo(t)
	w, _ := r.AddWorker(store.Worker{Name: "Jane"})
	e, _ := r.AddTimeEntry(store.TimeEntry{WorkerID: w.ID, Date: "2026-08-28", Hours: 4, Rate: 20})
	task, _ := r.AddTask(store.Task{Title: "Report", AssigneeID: w.ID})

	if err := r.DeleteWorker(w.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetWorker(w.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("worker should be gone, got %v", err)
	}

	// Entries and tasks keep their dangling worker id.
	gotEntry, err := r.GetTimeEntry(e.ID)
	if err != nil || gotEntry.WorkerID != w.ID {
		t.Fatalf("entry lost its worker reference: %+v, %v", gotEntry, err)
	}
	gotTask, err := r.GetTask(task.ID)
	if err != nil || gotTask.AssigneeID != w.ID {
		t.Fatalf("task lost its assignee: %+v, %v", gotTask, err)
	}
}

func TestDeleteWorkerNotFound(t *testing.T) {
	r := newTestRepo(t)
	if err := r.DeleteWorker("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTaskDefaults(t *testing.T) {
	r := newTestRepo(t)
	task, err := r.AddTask(store.Task{Title: "Report"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Status != store.TaskTodo || task.Priority != store.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if task.CompletedAt != "" {
		t.Fatalf("new todo task should not have completedAt: %q", task.CompletedAt)
	}
}

func TestAddTaskCreatedCompleted(t *testing.T) {
	r := newTestRepo(t)
	task, err := r.AddTask(store.Task{Title: "Done already", Status: store.TaskCompleted})
	if err != nil {
		t.Fatal(err)
	}
	if task.CompletedAt == "" {
		t.Fatal("task created as completed should carry completedAt")
	}
}

func TestUpdateTaskCompletionStamps(t *testing.T) {
	r := newTestRepo(t)
	task, _ := r.AddTask(store.Task{Title: "Report"})

	done, err := r.UpdateTask(task.ID, TaskPatch{Status: strPtr(store.TaskCompleted)})
	if err != nil {
		t.Fatal(err)
	}
	if done.CompletedAt == "" {
		t.Fatal("completing a task should stamp completedAt")
	}

	reopened, err := r.UpdateTask(task.ID, TaskPatch{Status: strPtr(store.TaskInProgress)})
	if err != nil {
		t.Fatal(err)
	}
	if reopened.CompletedAt != "" {
		t.Fatalf("reopening should clear completedAt, got %q", reopened.CompletedAt)
	}
}

func TestUpdateTaskChecklistReplacedWholesale(t *testing.T) {
	r := newTestRepo(t)
	task, _ := r.AddTask(store.Task{
		Title: "Report",
		Checklist: []store.ChecklistItem{
			{Text: "draft", Completed: true},
			{Text: "review"},
			{Text: "send"},
		},
	})

	got, err := r.UpdateTask(task.ID, TaskPatch{
		Checklist: &[]store.ChecklistItem{{Text: "rewrite"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Checklist) != 1 || got.Checklist[0].Text != "rewrite" {
		t.Fatalf("checklist should be replaced, got %+v", got.Checklist)
	}
}

func TestTasksForWorker(t *testing.T) {
	r := newTestRepo(t)
	w, _ := r.AddWorker(store.Worker{Name: "Jane"})
	r.AddTask(store.Task{Title: "Mine", AssigneeID: w.ID})
	r.AddTask(store.Task{Title: "Unassigned"})
	r.AddTask(store.Task{Title: "Also mine", AssigneeID: w.ID})

	tasks, err := r.TasksForWorker(w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestDeleteTaskTerminal(t *testing.T) {
	r := newTestRepo(t)
	task, _ := r.AddTask(store.Task{Title: "Report"})
	if err := r.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := r.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

// ============================================================
// Time entries
// ============================================================

func TestAddTimeEntrySnapshotsRate(t *testing.T) {
	r := newTestRepo(t)
	w, _ := r.AddWorker(store.Worker{Name: "Jane", Rate: 25})
	e, err := r.AddTimeEntry(store.TimeEntry{WorkerID: w.ID, Date: "2026-08-28", Hours: 4, Rate: 25})
	if err != nil {
		t.Fatal(err)
	}

	// Raising the worker's rate must not touch logged entries.
	if _, err := r.UpdateWorker(w.ID, WorkerPatch{Rate: floatPtr(40)}); err != nil {
		t.Fatal(err)
	}
	got, err := r.GetTimeEntry(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rate != 25 || got.Earnings() != 100 {
		t.Fatalf("entry rate changed: %+v", got)
	}
}

func TestListTimeEntriesInRange(t *testing.T) {
	r := newTestRepo(t)
	for _, date := range []string{"2026-08-25", "2026-08-26", "2026-08-27", "2026-09-01"} {
		if _, err := r.AddTimeEntry(store.TimeEntry{Date: date, Hours: 1, Rate: 10}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := r.ListTimeEntriesInRange("2026-08-26", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Open bounds.
	all, _ := r.ListTimeEntriesInRange("", "")
	if len(all) != 4 {
		t.Fatalf("open range should return all, got %d", len(all))
	}
	from, _ := r.ListTimeEntriesInRange("2026-08-27", "")
	if len(from) != 2 {
		t.Fatalf("open end should return 2, got %d", len(from))
	}
}

func TestEntriesForWorker(t *testing.T) {
	r := newTestRepo(t)
	w1, _ := r.AddWorker(store.Worker{Name: "Jane"})
	w2, _ := r.AddWorker(store.Worker{Name: "Omar"})
	r.AddTimeEntry(store.TimeEntry{WorkerID: w1.ID, Date: "2026-08-25", Hours: 2, Rate: 10})
	r.AddTimeEntry(store.TimeEntry{WorkerID: w2.ID, Date: "2026-08-25", Hours: 3, Rate: 10})
	r.AddTimeEntry(store.TimeEntry{WorkerID: w1.ID, Date: "2026-08-30", Hours: 4, Rate: 10})

	entries, err := r.EntriesForWorker(w1.ID, "2026-08-24", "2026-08-26")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Hours != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

// ============================================================
// Invoices and expenses
// ============================================================

func TestAddInvoiceDefaultStatus(t *testing.T) {
	r := newTestRepo(t)
	inv, err := r.AddInvoice(store.Invoice{Number: "INV-0001", ClientName: "Acme", Amount: 500, Date: "2026-08-28"})
	if err != nil {
		t.Fatal(err)
	}
	if inv.Status != store.InvoiceDraft {
		t.Fatalf("expected draft, got %q", inv.Status)
	}
}

func TestUpdateAndDeleteInvoice(t *testing.T) {
	r := newTestRepo(t)
	inv, _ := r.AddInvoice(store.Invoice{Number: "INV-0001", Amount: 500, Date: "2026-08-28"})

	got, err := r.UpdateInvoice(inv.ID, InvoicePatch{Status: strPtr(store.InvoicePaid)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != store.InvoicePaid || got.Amount != 500 {
		t.Fatalf("unexpected invoice: %+v", got)
	}

	if err := r.DeleteInvoice(inv.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetInvoice(inv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExpensesInRange(t *testing.T) {
	r := newTestRepo(t)
	r.AddExpense(store.Expense{Description: "Licenses", Amount: 99, Date: "2026-08-01"})
	r.AddExpense(store.Expense{Description: "Travel", Amount: 250, Date: "2026-08-20"})

	expenses, err := r.ListExpensesInRange("2026-08-15", "2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 || expenses[0].Description != "Travel" {
		t.Fatalf("unexpected expenses: %+v", expenses)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsMergeNotReplace(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.UpdateSettings(SettingsPatch{
		BusinessName: strPtr("Studio North"),
		DefaultRate:  floatPtr(45),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.BusinessName != "Studio North" || got.DefaultRate != 45 {
		t.Fatalf("patched fields wrong: %+v", got)
	}
	// Unpatched fields keep their defaults.
	if got.Currency != "USD" || got.OvertimeMultiplier != 1.5 || got.BreakInterval != 15 {
		t.Fatalf("unpatched fields changed: %+v", got)
	}

	// A second patch keeps the first patch's values.
	got2, err := r.UpdateSettings(SettingsPatch{MaxHoursPerDay: intPtr(10), Notifications: boolPtr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if got2.BusinessName != "Studio North" || got2.MaxHoursPerDay != 10 || got2.Notifications {
		t.Fatalf("merge lost earlier values: %+v", got2)
	}
}

// ============================================================
// Document access
// ============================================================

func TestDocumentInitializesOnFirstUse(t *testing.T) {
	r := newTestRepo(t)
	doc, err := r.Document()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Workers == nil || doc.Metadata.Version == "" {
		t.Fatalf("expected initialized document, got %+v", doc)
	}
}

func TestReplaceDocument(t *testing.T) {
	r := newTestRepo(t)
	r.AddWorker(store.Worker{Name: "Old"})

	if err := r.ReplaceDocument(&store.Document{
		Workers:  []store.Worker{{ID: "w1", Name: "Imported"}},
		Settings: store.DefaultSettings(),
	}); err != nil {
		t.Fatal(err)
	}

	workers, err := r.ListWorkers()
	if err != nil {
		t.Fatal(err)
	}
	if len(workers) != 1 || workers[0].Name != "Imported" {
		t.Fatalf("replace did not overwrite: %+v", workers)
	}
}
