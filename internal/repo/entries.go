package repo

import "github.com/dnoice/workforce-tracker/internal/store"

// EntryPatch holds a partial update; nil fields are left untouched.
type EntryPatch struct {
	WorkerID        *string
	Date            *string
	Hours           *float64
	Rate            *float64
	TaskDescription *string
}

func (p EntryPatch) apply(e *store.TimeEntry) {
	if p.WorkerID != nil {
		e.WorkerID = *p.WorkerID
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Hours != nil {
		e.Hours = *p.Hours
	}
	if p.Rate != nil {
		e.Rate = *p.Rate
	}
	if p.TaskDescription != nil {
		e.TaskDescription = *p.TaskDescription
	}
}

// AddTimeEntry stores the entry with hours and rate exactly as given;
// the rate is a point-in-time snapshot, later worker rate changes never
// touch it.
func (r *Repository) AddTimeEntry(e store.TimeEntry) (*store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	e.ID = newID()
	e.CreatedAt = store.Timestamp()
	doc.TimeEntries = append(doc.TimeEntries, e)

	return &e, r.store.Save(doc)
}

func (r *Repository) GetTimeEntry(id string) (*store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.TimeEntries {
		if doc.TimeEntries[i].ID == id {
			return &doc.TimeEntries[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) ListTimeEntries() ([]store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.TimeEntries, nil
}

// ListTimeEntriesInRange filters on the entry date, inclusive on both
// bounds; empty bounds are open.
func (r *Repository) ListTimeEntriesInRange(start, end string) ([]store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var entries []store.TimeEntry
	for _, e := range doc.TimeEntries {
		if inRange(e.Date, start, end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// EntriesForWorker returns a worker's entries within [start, end].
func (r *Repository) EntriesForWorker(workerID, start, end string) ([]store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var entries []store.TimeEntry
	for _, e := range doc.TimeEntries {
		if e.WorkerID == workerID && inRange(e.Date, start, end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *Repository) UpdateTimeEntry(id string, patch EntryPatch) (*store.TimeEntry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.TimeEntries {
		if doc.TimeEntries[i].ID == id {
			patch.apply(&doc.TimeEntries[i])
			return &doc.TimeEntries[i], r.store.Save(doc)
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) DeleteTimeEntry(id string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.TimeEntries {
		if doc.TimeEntries[i].ID == id {
			doc.TimeEntries = append(doc.TimeEntries[:i], doc.TimeEntries[i+1:]...)
			return r.store.Save(doc)
		}
	}
	return ErrNotFound
}
