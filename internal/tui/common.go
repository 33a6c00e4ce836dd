package tui

import (
	"fmt"
	"time"

	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewWorkers
	viewTasks
	viewTimesheet
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Workers", "Tasks", "Timesheet", "Reports", "Settings"}

// viewKeys are the stable names persisted in app state.
var viewKeys = []string{"dashboard", "workers", "tasks", "timesheet", "reports", "settings"}

func viewFromKey(key string) viewState {
	for i, k := range viewKeys {
		if k == key {
			return viewState(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type dataClearedMsg struct{}

type dashboardDataMsg struct {
	stats      report.Stats
	performers []report.Performance
	activity   []report.Activity
	settings   store.Settings
}

type workersDataMsg struct {
	workers []store.Worker
}

type tasksDataMsg struct {
	tasks   []store.Task
	workers []store.Worker
}

type entriesDataMsg struct {
	entries  []store.TimeEntry
	workers  []store.Worker
	week     [7]report.DayTotal
	settings store.Settings
}

type reportsDataMsg struct {
	week     [7]report.DayTotal
	invoices []store.Invoice
	settings store.Settings
}

type settingsDataMsg struct {
	settings store.Settings
	prefs    store.Preferences
}

// --- Helpers ---

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

func formatMoney(amount float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%gh", hours)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// weekStart returns the Monday of t's week, at day granularity in local
// time.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// workerNames builds an id-to-name lookup. Missing ids resolve through
// lookupWorker instead.
func workerNames(workers []store.Worker) map[string]string {
	names := make(map[string]string, len(workers))
	for _, w := range workers {
		names[w.ID] = w.Name
	}
	return names
}

func lookupWorker(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}
