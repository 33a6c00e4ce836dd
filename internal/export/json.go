package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// WriteDocumentJSON writes the full document as indented JSON.
func WriteDocumentJSON(doc *store.Document, w io.Writer) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// DocumentJSONToFile writes the document to a file at path.
func DocumentJSONToFile(doc *store.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()
	return WriteDocumentJSON(doc, f)
}

// ReadDocumentJSON parses an imported document. The only structural
// requirement is a top-level JSON object; unknown fields are dropped and
// missing collections stay empty.
func ReadDocumentJSON(r io.Reader) (*store.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("import must be a JSON object")
	}

	var doc store.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	return &doc, nil
}

// WorkerSubset returns a copy of the document reduced to a single worker
// and the records referencing them, for per-worker export.
func WorkerSubset(doc *store.Document, workerID string) *store.Document {
	sub := &store.Document{
		Workers:     []store.Worker{},
		Tasks:       []store.Task{},
		TimeEntries: []store.TimeEntry{},
		Invoices:    []store.Invoice{},
		Expenses:    []store.Expense{},
		Projects:    []store.Project{},
		Clients:     []store.Client{},
		Settings:    doc.Settings,
		Metadata:    doc.Metadata,
	}
	for _, w := range doc.Workers {
		if w.ID == workerID {
			sub.Workers = append(sub.Workers, w)
		}
	}
	for _, t := range doc.Tasks {
		if t.AssigneeID == workerID {
			sub.Tasks = append(sub.Tasks, t)
		}
	}
	for _, e := range doc.TimeEntries {
		if e.WorkerID == workerID {
			sub.TimeEntries = append(sub.TimeEntries, e)
		}
	}
	return sub
}
