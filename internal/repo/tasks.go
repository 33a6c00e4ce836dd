package repo

import "github.com/dnoice/workforce-tracker/internal/store"

// TaskPatch holds a partial update; nil fields are left untouched. The
// checklist is replaced wholesale, never merged item by item.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *string
	DueDate     *string
	Tags        *string
	Checklist   *[]store.ChecklistItem
}

func (p TaskPatch) apply(t *store.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssigneeID != nil {
		t.AssigneeID = *p.AssigneeID
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Checklist != nil {
		t.Checklist = *p.Checklist
	}
}

func (r *Repository) AddTask(t store.Task) (*store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	t.ID = newID()
	t.CreatedAt = store.Timestamp()
	if t.Status == "" {
		t.Status = store.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = store.PriorityMedium
	}
	if t.Status == store.TaskCompleted {
		t.CompletedAt = t.CreatedAt
	}
	doc.Tasks = append(doc.Tasks, t)

	return &t, r.store.Save(doc)
}

func (r *Repository) GetTask(id string) (*store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			return &doc.Tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) ListTasks() ([]store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// ListTasksInRange filters on the task's creation day, inclusive.
func (r *Repository) ListTasksInRange(start, end string) ([]store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var tasks []store.Task
	for _, t := range doc.Tasks {
		if inRange(store.DayOf(t.CreatedAt), start, end) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// TasksForWorker returns the tasks assigned to a worker, including when
// the worker no longer exists.
func (r *Repository) TasksForWorker(workerID string) ([]store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var tasks []store.Task
	for _, t := range doc.Tasks {
		if t.AssigneeID == workerID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// UpdateTask merges the patch and persists. Moving a task into the
// completed status stamps completedAt; moving it out clears the stamp.
func (r *Repository) UpdateTask(id string, patch TaskPatch) (*store.Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].ID != id {
			continue
		}
		wasCompleted := doc.Tasks[i].Status == store.TaskCompleted
		patch.apply(&doc.Tasks[i])
		nowCompleted := doc.Tasks[i].Status == store.TaskCompleted
		if nowCompleted && !wasCompleted {
			doc.Tasks[i].CompletedAt = store.Timestamp()
		} else if !nowCompleted && wasCompleted {
			doc.Tasks[i].CompletedAt = ""
		}
		return &doc.Tasks[i], r.store.Save(doc)
	}
	return nil, ErrNotFound
}

func (r *Repository) DeleteTask(id string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
			return r.store.Save(doc)
		}
	}
	return ErrNotFound
}
