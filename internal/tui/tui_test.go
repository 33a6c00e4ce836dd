package tui

import (
	"testing"
	"time"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// ============================================================
// View routing
// ============================================================

func TestViewFromKey(t *testing.T) {
	for i, key := range viewKeys {
		if viewFromKey(key) != viewState(i) {
			t.Errorf("viewFromKey(%q) = %d, want %d", key, viewFromKey(key), i)
		}
	}
	if viewFromKey("bogus") != viewDashboard {
		t.Error("unknown key should fall back to dashboard")
	}
	if len(viewNames) != len(viewKeys) {
		t.Fatalf("viewNames and viewKeys out of sync: %d vs %d", len(viewNames), len(viewKeys))
	}
}

// ============================================================
// Formatting helpers
// ============================================================

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{150, "USD", "$150.00"},
		{99.5, "EUR", "€99.50"},
		{0, "GBP", "£0.00"},
		{10, "CHF", "10.00 CHF"},
	}
	for _, c := range cases {
		if got := formatMoney(c.amount, c.currency); got != c.want {
			t.Errorf("formatMoney(%g, %q) = %q, want %q", c.amount, c.currency, got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := formatHours(7.5); got != "7.5h" {
		t.Errorf("got %q", got)
	}
	if got := formatHours(8); got != "8h" {
		t.Errorf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"héllo wörld", 6, "héllo…"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

// ============================================================
// Week boundaries
// ============================================================

func TestWeekStart(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	cases := []time.Time{
		monday,
		time.Date(2026, 8, 26, 15, 30, 0, 0, time.Local), // Wednesday afternoon
		time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local), // Sunday night
	}
	for _, in := range cases {
		got := weekStart(in)
		if !got.Equal(monday) {
			t.Errorf("weekStart(%s) = %s, want %s", in, got, monday)
		}
	}
}

// ============================================================
// Worker lookup
// ============================================================

func TestLookupWorker(t *testing.T) {
	names := workerNames([]store.Worker{
		{ID: "w1", Name: "Jane"},
		{ID: "w2", Name: "Omar"},
	})
	if got := lookupWorker(names, "w1", "Unknown Worker"); got != "Jane" {
		t.Errorf("got %q", got)
	}
	if got := lookupWorker(names, "gone", "Unknown Worker"); got != "Unknown Worker" {
		t.Errorf("got %q", got)
	}
	if got := lookupWorker(names, "", "Unassigned"); got != "Unassigned" {
		t.Errorf("got %q", got)
	}
}

// ============================================================
// Task board
// ============================================================

func TestGroupTasks(t *testing.T) {
	tasks := []store.Task{
		{ID: "1", Status: store.TaskCompleted},
		{ID: "2", Status: store.TaskTodo},
		{ID: "3", Status: store.TaskInProgress},
		{ID: "4", Status: store.TaskTodo},
		{ID: "5", Status: "mystery"},
	}
	board := groupTasks(tasks)

	if len(board[0]) != 3 { // todo column holds the two todos plus the unknown status
		t.Fatalf("todo column: %+v", board[0])
	}
	if board[0][0].ID != "2" || board[0][1].ID != "4" || board[0][2].ID != "5" {
		t.Fatalf("todo column order broken: %+v", board[0])
	}
	if len(board[1]) != 1 || board[1][0].ID != "3" {
		t.Fatalf("in-progress column: %+v", board[1])
	}
	if len(board[2]) != 0 {
		t.Fatalf("review column should be empty: %+v", board[2])
	}
	if len(board[3]) != 1 || board[3][0].ID != "1" {
		t.Fatalf("completed column: %+v", board[3])
	}
}

func TestNextTaskStatus(t *testing.T) {
	cases := []struct{ in, want string }{
		{store.TaskTodo, store.TaskInProgress},
		{store.TaskInProgress, store.TaskReview},
		{store.TaskReview, store.TaskCompleted},
		{store.TaskCompleted, store.TaskTodo}, // wraps
		{"mystery", store.TaskTodo},
	}
	for _, c := range cases {
		if got := nextTaskStatus(c.in); got != c.want {
			t.Errorf("nextTaskStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ============================================================
// Checklist parsing
// ============================================================

func TestParseChecklist(t *testing.T) {
	items := parseChecklist("[x] draft\n[ ] review\nsend\n\n  \n[X] archive")
	want := []store.ChecklistItem{
		{Text: "draft", Completed: true},
		{Text: "review"},
		{Text: "send"},
		{Text: "archive", Completed: true},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d: got %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestParseChecklistEmpty(t *testing.T) {
	if items := parseChecklist(""); len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
	if items := parseChecklist("[x]\n[ ]"); len(items) != 0 {
		t.Fatalf("markers without text should be dropped, got %+v", items)
	}
}

func TestChecklistRoundTrip(t *testing.T) {
	items := []store.ChecklistItem{
		{Text: "draft", Completed: true},
		{Text: "review"},
	}
	parsed := parseChecklist(renderChecklist(items))
	if len(parsed) != 2 || parsed[0] != items[0] || parsed[1] != items[1] {
		t.Fatalf("round trip broke: %+v", parsed)
	}
}

func TestChecklistProgress(t *testing.T) {
	done, total := checklistProgress([]store.ChecklistItem{
		{Text: "a", Completed: true},
		{Text: "b"},
		{Text: "c", Completed: true},
	})
	if done != 2 || total != 3 {
		t.Fatalf("got %d/%d, want 2/3", done, total)
	}

	done, total = checklistProgress(nil)
	if done != 0 || total != 0 {
		t.Fatalf("got %d/%d, want 0/0", done, total)
	}
}
