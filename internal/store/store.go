package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// docVersion is stamped into metadata.version of new documents.
const docVersion = "2.0.0"

// Storage keys. The document lives under a single fixed key; preferences
// and transient app state each get their own small key.
const (
	keyData        = "wfp_data"
	keyPreferences = "wfp_preferences"
	keyState       = "wfp_state"
)

// ErrNotFound is returned when a key holds no value, or when a stored
// value cannot be parsed (the caller falls back to empty state).
var ErrNotFound = errors.New("not found")

// Store persists the workforce document as a single JSON value in a
// key-value table. Every Save is a whole-document overwrite; concurrent
// writers are not coordinated, last write wins.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS storage (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) getValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) setValue(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO storage (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) deleteValue(key string) error {
	_, err := s.db.Exec(`DELETE FROM storage WHERE key = ?`, key)
	return err
}

// Load reads and parses the document. A missing key returns ErrNotFound;
// so does an unparseable value, after logging it, since stale garbage is
// treated the same as no data.
func (s *Store) Load() (*Document, error) {
	raw, err := s.getValue(keyData)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		logrus.WithError(err).Warn("stored document is not valid JSON, treating as empty")
		return nil, ErrNotFound
	}
	return &doc, nil
}

// Save stamps metadata.lastModified and writes the whole document. The
// store does not retry on failure; the caller decides what to do.
func (s *Store) Save(doc *Document) error {
	doc.Metadata.LastModified = Timestamp()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.setValue(keyData, string(data)); err != nil {
		logrus.WithError(err).Error("save document")
		return err
	}
	return nil
}

// InitializeIfAbsent writes a fresh document with empty collections and
// default settings when none exists, and returns whichever document the
// store now holds.
func (s *Store) InitializeIfAbsent() (*Document, error) {
	doc, err := s.Load()
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := Timestamp()
	doc = &Document{
		Workers:     []Worker{},
		Tasks:       []Task{},
		TimeEntries: []TimeEntry{},
		Invoices:    []Invoice{},
		Expenses:    []Expense{},
		Projects:    []Project{},
		Clients:     []Client{},
		Settings:    DefaultSettings(),
		Metadata: Metadata{
			Version:      docVersion,
			Created:      now,
			LastModified: now,
		},
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ClearAll deletes the document, preferences, and app state, then writes
// a fresh empty document.
func (s *Store) ClearAll() error {
	for _, key := range []string{keyData, keyPreferences, keyState} {
		if err := s.deleteValue(key); err != nil {
			return fmt.Errorf("clear %q: %w", key, err)
		}
	}
	_, err := s.InitializeIfAbsent()
	return err
}

// LoadPreferences reads the display preferences. ErrNotFound means none
// have been saved yet.
func (s *Store) LoadPreferences() (*Preferences, error) {
	raw, err := s.getValue(keyPreferences)
	if err != nil {
		return nil, err
	}
	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logrus.WithError(err).Warn("stored preferences are not valid JSON")
		return nil, ErrNotFound
	}
	return &prefs, nil
}

func (s *Store) SavePreferences(prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return s.setValue(keyPreferences, string(data))
}

// LoadAppState reads the transient UI state saved by the last session.
func (s *Store) LoadAppState() (*AppState, error) {
	raw, err := s.getValue(keyState)
	if err != nil {
		return nil, err
	}
	var state AppState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logrus.WithError(err).Warn("stored app state is not valid JSON")
		return nil, ErrNotFound
	}
	return &state, nil
}

func (s *Store) SaveAppState(state *AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal app state: %w", err)
	}
	return s.setValue(keyState, string(data))
}

// DefaultDBPath returns ~/.config/workforce/workforce.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "workforce", "workforce.db"), nil
}

// DefaultLogPath returns ~/.config/workforce/workforce.log
func DefaultLogPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "workforce", "workforce.log"), nil
}
