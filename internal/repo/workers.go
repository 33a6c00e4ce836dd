package repo

import "github.com/dnoice/workforce-tracker/internal/store"

// WorkerPatch holds a partial update; nil fields are left untouched.
type WorkerPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	Rate       *float64
	Status     *string
	Department *string
	Skills     *string
	Notes      *string
}

func (p WorkerPatch) apply(w *store.Worker) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Email != nil {
		w.Email = *p.Email
	}
	if p.Phone != nil {
		w.Phone = *p.Phone
	}
	if p.Rate != nil {
		w.Rate = *p.Rate
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Department != nil {
		w.Department = *p.Department
	}
	if p.Skills != nil {
		w.Skills = *p.Skills
	}
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
}

// AddWorker assigns a fresh id and createdAt, appends, and persists. The
// stored worker is returned even when the save fails.
func (r *Repository) AddWorker(w store.Worker) (*store.Worker, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	w.ID = newID()
	w.CreatedAt = store.Timestamp()
	if w.Status == "" {
		w.Status = store.WorkerActive
	}
	doc.Workers = append(doc.Workers, w)

	return &w, r.store.Save(doc)
}

func (r *Repository) GetWorker(id string) (*store.Worker, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Workers {
		if doc.Workers[i].ID == id {
			return &doc.Workers[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListWorkers returns all workers in insertion order.
func (r *Repository) ListWorkers() ([]store.Worker, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Workers, nil
}

// UpdateWorker merges the patch onto the record and persists. An empty
// patch still counts as a write.
func (r *Repository) UpdateWorker(id string, patch WorkerPatch) (*store.Worker, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Workers {
		if doc.Workers[i].ID == id {
			patch.apply(&doc.Workers[i])
			return &doc.Workers[i], r.store.Save(doc)
		}
	}
	return nil, ErrNotFound
}

// DeleteWorker removes the record. Time entries and tasks referencing the
// worker are left as-is; readers resolve dangling ids to fallback labels.
func (r *Repository) DeleteWorker(id string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Workers {
		if doc.Workers[i].ID == id {
			doc.Workers = append(doc.Workers[:i], doc.Workers[i+1:]...)
			return r.store.Save(doc)
		}
	}
	return ErrNotFound
}
