// Package repo provides typed CRUD over the document's collections.
//
// Every mutating method follows the same shape: load the whole document,
// mutate the in-memory copy, save the whole document back. On save
// failure the in-memory result is still returned alongside the error;
// there is no rollback, the caller decides whether to retry or surface
// the failure. Field validation is the caller's job, not this layer's.
package repo

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/dnoice/workforce-tracker/internal/store"
)

// ErrNotFound is returned by Get/Update/Delete when no record has the
// given id.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	store *store.Store
}

func New(s *store.Store) *Repository {
	return &Repository{store: s}
}

// load returns the current document, initializing the store on first use.
func (r *Repository) load() (*store.Document, error) {
	doc, err := r.store.Load()
	if errors.Is(err, store.ErrNotFound) {
		return r.store.InitializeIfAbsent()
	}
	return doc, err
}

// Document returns the full document, for export.
func (r *Repository) Document() (*store.Document, error) {
	return r.load()
}

// ReplaceDocument overwrites the stored document wholesale, used by
// import.
func (r *Repository) ReplaceDocument(doc *store.Document) error {
	return r.store.Save(doc)
}

// newID builds a timestamp-plus-random-suffix identifier. Collisions are
// treated as negligible, not formally prevented.
func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatInt(rand.Int64N(1<<40), 36)
}

// inRange reports whether day (YYYY-MM-DD) falls within [start, end]
// inclusive. Empty bounds are open.
func inRange(day, start, end string) bool {
	if start != "" && day < start {
		return false
	}
	if end != "" && day > end {
		return false
	}
	return true
}
