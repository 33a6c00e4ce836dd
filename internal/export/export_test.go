package export

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// ============================================================
// CSV
// ============================================================

func TestWriteTimesheetCSV(t *testing.T) {
	jane := &store.Worker{ID: "w1", Name: "Jane Doe", Rate: 25}
	workers := map[string]*store.Worker{"w1": jane}
	entries := []store.TimeEntry{
		{WorkerID: "w1", Date: "2026-08-28", Hours: 4.5, Rate: 25, TaskDescription: "Design review"},
		{WorkerID: "gone", Date: "2026-08-27", Hours: 2, Rate: 30},
	}

	var buf bytes.Buffer
	if err := WriteTimesheetCSV(entries, workers, &buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Worker,Hours,Rate,Earnings,Description" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2026-08-28,Jane Doe,4.5,25.00,112.50,Design review" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Unknown Worker") {
		t.Fatalf("dangling worker id should render fallback, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "60.00") {
		t.Fatalf("expected earnings 60.00 in %q", lines[2])
	}
}

func TestWriteTimesheetCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTimesheetCSV(nil, nil, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "Date,Worker,Hours,Rate,Earnings,Description" {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestWriteWorkersCSV(t *testing.T) {
	workers := []store.Worker{
		{Name: "Jane Doe", Email: "jane@example.com", Rate: 25, Status: store.WorkerActive, Department: "Design", Skills: "figma,css"},
		{Name: "Omar", Rate: 30, Status: store.WorkerVacation},
	}

	var buf bytes.Buffer
	if err := WriteWorkersCSV(workers, &buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
	if lines[0] != "Name,Email,Phone,Rate,Status,Department,Skills" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// Skills contain a comma, so the field must be quoted.
	if !strings.Contains(lines[1], `"figma,css"`) {
		t.Fatalf("comma field not quoted: %q", lines[1])
	}
	if !strings.Contains(lines[2], "vacation") {
		t.Fatalf("expected status in row: %q", lines[2])
	}
}

func TestCSVToFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/timesheet.csv"
	entries := []store.TimeEntry{{WorkerID: "w1", Date: "2026-08-28", Hours: 1, Rate: 10}}

	if err := TimesheetCSVToFile(entries, nil, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,Worker") {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

// ============================================================
// JSON
// ============================================================

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := &store.Document{
		Workers:  []store.Worker{{ID: "w1", Name: "Jane", Rate: 25, Status: store.WorkerActive}},
		Tasks:    []store.Task{{ID: "t1", Title: "Report", Status: store.TaskTodo, Priority: store.PriorityHigh}},
		Settings: store.DefaultSettings(),
		Metadata: store.Metadata{Version: "2.0.0"},
	}

	var buf bytes.Buffer
	if err := WriteDocumentJSON(doc, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("export should end with a newline")
	}

	got, err := ReadDocumentJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Workers) != 1 || got.Workers[0].Name != "Jane" {
		t.Fatalf("workers not round-tripped: %+v", got.Workers)
	}
	if got.Settings.Currency != "USD" {
		t.Fatalf("settings not round-tripped: %+v", got.Settings)
	}
	if got.Metadata.Version != "2.0.0" {
		t.Fatalf("metadata not round-tripped: %+v", got.Metadata)
	}
}

func TestReadDocumentJSONRejectsNonObject(t *testing.T) {
	for _, input := range []string{"", "   ", "[]", `"string"`, "42", "not json"} {
		if _, err := ReadDocumentJSON(strings.NewReader(input)); err == nil {
			t.Errorf("input %q should be rejected", input)
		}
	}
}

func TestReadDocumentJSONToleratesUnknownFields(t *testing.T) {
	input := `{"workers": [{"id": "w1", "name": "Jane"}], "someFutureField": {"a": 1}}`
	doc, err := ReadDocumentJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Workers) != 1 || doc.Workers[0].Name != "Jane" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	// Missing collections stay empty rather than failing.
	if len(doc.Tasks) != 0 || len(doc.TimeEntries) != 0 {
		t.Fatalf("expected empty collections, got %+v", doc)
	}
}

// ============================================================
// Worker subset
// ============================================================

func TestWorkerSubset(t *testing.T) {
	doc := &store.Document{
		Workers: []store.Worker{
			{ID: "w1", Name: "Jane"},
			{ID: "w2", Name: "Omar"},
		},
		Tasks: []store.Task{
			{ID: "t1", Title: "Mine", AssigneeID: "w1"},
			{ID: "t2", Title: "Theirs", AssigneeID: "w2"},
			{ID: "t3", Title: "Nobody's"},
		},
		TimeEntries: []store.TimeEntry{
			{ID: "e1", WorkerID: "w1", Hours: 4},
			{ID: "e2", WorkerID: "w2", Hours: 2},
		},
		Invoices: []store.Invoice{{ID: "i1", Amount: 100}},
		Settings: store.DefaultSettings(),
		Metadata: store.Metadata{Version: "2.0.0"},
	}

	sub := WorkerSubset(doc, "w1")
	if len(sub.Workers) != 1 || sub.Workers[0].Name != "Jane" {
		t.Fatalf("unexpected workers: %+v", sub.Workers)
	}
	if len(sub.Tasks) != 1 || sub.Tasks[0].Title != "Mine" {
		t.Fatalf("unexpected tasks: %+v", sub.Tasks)
	}
	if len(sub.TimeEntries) != 1 || sub.TimeEntries[0].ID != "e1" {
		t.Fatalf("unexpected entries: %+v", sub.TimeEntries)
	}
	// Collections not tied to a worker are not carried over.
	if len(sub.Invoices) != 0 {
		t.Fatalf("invoices should be empty, got %+v", sub.Invoices)
	}
	if sub.Settings.Currency != "USD" || sub.Metadata.Version != "2.0.0" {
		t.Fatalf("settings/metadata should be copied: %+v", sub)
	}

	// Unknown worker yields an empty but well-formed document.
	empty := WorkerSubset(doc, "nope")
	if len(empty.Workers) != 0 || len(empty.Tasks) != 0 || len(empty.TimeEntries) != 0 {
		t.Fatalf("expected empty subset, got %+v", empty)
	}
}
