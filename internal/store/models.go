package store

import "time"

// DateOnly is the layout for day-granularity fields (entry dates, due
// dates). Timestamps (createdAt, completedAt, metadata) use RFC3339.
const DateOnly = "2006-01-02"

// Worker statuses.
const (
	WorkerActive   = "active"
	WorkerInactive = "inactive"
	WorkerVacation = "vacation"
	WorkerSick     = "sick"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in-progress"
	TaskReview     = "review"
	TaskCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Invoice statuses.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Document is the single root object held under the data key. The whole
// document is read and rewritten on every mutation; there is no
// per-collection persistence granularity.
type Document struct {
	Workers     []Worker    `json:"workers"`
	Tasks       []Task      `json:"tasks"`
	TimeEntries []TimeEntry `json:"timeEntries"`
	Invoices    []Invoice   `json:"invoices"`
	Expenses    []Expense   `json:"expenses"`
	Projects    []Project   `json:"projects"`
	Clients     []Client    `json:"clients"`
	Settings    Settings    `json:"settings"`
	Metadata    Metadata    `json:"metadata"`
}

type Worker struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Rate       float64 `json:"rate"`
	Status     string  `json:"status"`
	Department string  `json:"department,omitempty"`
	Skills     string  `json:"skills,omitempty"` // comma-separated
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	AssigneeID  string          `json:"assigneeId,omitempty"` // informational FK, may dangle
	DueDate     string          `json:"dueDate,omitempty"`
	Tags        string          `json:"tags,omitempty"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	CompletedAt string          `json:"completedAt,omitempty"`
}

// TimeEntry snapshots hours and rate at logging time. Earnings are always
// hours * rate computed on read, never stored.
type TimeEntry struct {
	ID              string  `json:"id"`
	WorkerID        string  `json:"workerId"` // informational FK, may dangle
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	Rate            float64 `json:"rate"`
	TaskDescription string  `json:"taskDescription,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func (e TimeEntry) Earnings() float64 {
	return e.Hours * e.Rate
}

type Invoice struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
	DueDate    string  `json:"dueDate,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

// Project and Client are carried so that imported documents round-trip;
// no operations are exposed over them.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClientID string `json:"clientId,omitempty"`
	Status   string `json:"status,omitempty"`
}

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
}

// Settings is a singleton inside the document; updates merge field by
// field rather than replacing the block.
type Settings struct {
	BusinessName       string  `json:"businessName"`
	DefaultRate        float64 `json:"defaultRate"`
	Currency           string  `json:"currency"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
	MaxHoursPerDay     int     `json:"maxHoursPerDay"`
	BreakInterval      int     `json:"breakTimeInterval"` // minutes
	AutoBreak          bool    `json:"autoBreak"`
	Notifications      bool    `json:"notifications"`
}

type Metadata struct {
	Version      string `json:"version"`
	Created      string `json:"created"`
	LastModified string `json:"lastModified"`
}

// Preferences is the small display-preferences object stored under its
// own key, separate from the document.
type Preferences struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// AppState holds transient UI state (restored on next launch).
type AppState struct {
	CurrentTab string `json:"currentTab"`
}

// DefaultSettings returns the settings written on first use.
func DefaultSettings() Settings {
	return Settings{
		DefaultRate:        15.00,
		Currency:           "USD",
		OvertimeMultiplier: 1.5,
		MaxHoursPerDay:     24,
		BreakInterval:      15,
		AutoBreak:          false,
		Notifications:      true,
	}
}

// Timestamp returns the current time formatted the way the document
// stores event timestamps.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// Day returns the calendar day of t in local time.
func Day(t time.Time) string {
	return t.Format(DateOnly)
}

// DayOf extracts the calendar day from an RFC3339 timestamp. Timestamps
// are written in local time, so the prefix is the local day.
func DayOf(ts string) string {
	if len(ts) < len(DateOnly) {
		return ts
	}
	return ts[:len(DateOnly)]
}
