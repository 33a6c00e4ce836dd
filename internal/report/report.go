// Package report computes read-only derived views over the repository's
// collections. Every call scans the collections fresh; nothing here
// mutates the store.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/store"
)

// Fallback labels for dangling informational FKs.
const (
	UnknownWorker = "Unknown Worker"
	Unassigned    = "Unassigned"
)

// Activity event types.
const (
	ActivityTaskCompleted = "task_completed"
	ActivityTimeLogged    = "time_logged"
)

type Reporter struct {
	repo *repo.Repository
}

func New(r *repo.Repository) *Reporter {
	return &Reporter{repo: r}
}

// Stats is the dashboard header block. "Today" is calendar-day equality
// against asOf in local time, not a rolling 24h window.
type Stats struct {
	HoursToday    float64
	ActiveWorkers int // distinct workers with an entry today, not status
	TotalWorkers  int
	TasksToday    int // tasks completed today
	RevenueToday  float64
}

func (rp *Reporter) DashboardStats(asOf time.Time) (Stats, error) {
	doc, err := rp.repo.Document()
	if err != nil {
		return Stats{}, err
	}

	today := store.Day(asOf)
	seen := make(map[string]bool)
	var stats Stats

	for _, e := range doc.TimeEntries {
		if e.Date != today {
			continue
		}
		stats.HoursToday += e.Hours
		stats.RevenueToday += e.Earnings()
		if !seen[e.WorkerID] {
			seen[e.WorkerID] = true
			stats.ActiveWorkers++
		}
	}
	stats.TotalWorkers = len(doc.Workers)
	for _, t := range doc.Tasks {
		if t.Status == store.TaskCompleted && store.DayOf(t.CompletedAt) == today {
			stats.TasksToday++
		}
	}
	return stats, nil
}

// Performance pairs a worker with their lifetime totals and efficiency
// score.
type Performance struct {
	Worker         store.Worker
	Hours          float64
	TasksCompleted int
	Efficiency     int
}

// TopPerformers ranks workers by efficiency, descending. The sort is
// stable so tied scores keep collection order.
func (rp *Reporter) TopPerformers(n int) ([]Performance, error) {
	doc, err := rp.repo.Document()
	if err != nil {
		return nil, err
	}

	perf := make([]Performance, 0, len(doc.Workers))
	for _, w := range doc.Workers {
		p := Performance{Worker: w}
		for _, e := range doc.TimeEntries {
			if e.WorkerID == w.ID {
				p.Hours += e.Hours
			}
		}
		for _, t := range doc.Tasks {
			if t.AssigneeID == w.ID && t.Status == store.TaskCompleted {
				p.TasksCompleted++
			}
		}
		p.Efficiency = efficiencyScore(p.TasksCompleted, p.Hours)
		perf = append(perf, p)
	}

	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].Efficiency > perf[j].Efficiency
	})
	if n > 0 && len(perf) > n {
		perf = perf[:n]
	}
	return perf, nil
}

// efficiencyScore is min(100, round(tasks / max(1, hours) * 20)). The
// constant 20 is inherited behavior with no deeper rationale.
func efficiencyScore(tasksCompleted int, hours float64) int {
	score := int(math.Round(float64(tasksCompleted) / math.Max(1, hours) * 20))
	if score > 100 {
		return 100
	}
	return score
}

// Activity is one event in the recent-activity feed.
type Activity struct {
	Type        string
	Title       string
	Description string
	Timestamp   string
}

// RecentActivity merges task completions and logged time into a single
// feed, newest first, truncated to limit.
func (rp *Reporter) RecentActivity(limit int) ([]Activity, error) {
	doc, err := rp.repo.Document()
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(doc.Workers))
	for _, w := range doc.Workers {
		names[w.ID] = w.Name
	}

	var feed []Activity
	for _, t := range doc.Tasks {
		if t.Status != store.TaskCompleted || t.CompletedAt == "" {
			continue
		}
		who := Unassigned
		if name, ok := names[t.AssigneeID]; ok {
			who = name
		}
		feed = append(feed, Activity{
			Type:        ActivityTaskCompleted,
			Title:       "Task Completed",
			Description: fmt.Sprintf("%s completed %q", who, t.Title),
			Timestamp:   t.CompletedAt,
		})
	}
	for _, e := range doc.TimeEntries {
		who := UnknownWorker
		if name, ok := names[e.WorkerID]; ok {
			who = name
		}
		feed = append(feed, Activity{
			Type:        ActivityTimeLogged,
			Title:       "Time Logged",
			Description: fmt.Sprintf("%s logged %g hours", who, e.Hours),
			Timestamp:   e.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp > feed[j].Timestamp
	})
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

// DayTotal is one calendar day's hours and earnings.
type DayTotal struct {
	Date     string
	Hours    float64
	Earnings float64
}

// WeeklyTotals returns per-day totals for the 7-day window anchored at
// weekStart, in calendar order.
func (rp *Reporter) WeeklyTotals(weekStart time.Time) ([7]DayTotal, error) {
	var week [7]DayTotal
	index := make(map[string]int, 7)
	for i := range week {
		day := store.Day(weekStart.AddDate(0, 0, i))
		week[i].Date = day
		index[day] = i
	}

	entries, err := rp.repo.ListTimeEntries()
	if err != nil {
		return week, err
	}
	for _, e := range entries {
		if i, ok := index[e.Date]; ok {
			week[i].Hours += e.Hours
			week[i].Earnings += e.Earnings()
		}
	}
	return week, nil
}

// SearchResult is a mixed-type hit; exactly one of Worker/Task is set.
type SearchResult struct {
	Type   string // "worker" or "task"
	Worker *store.Worker
	Task   *store.Task
}

// Search performs a case-insensitive substring match of query against
// worker names and task titles/descriptions. Results are unranked.
func (rp *Reporter) Search(query string) ([]SearchResult, error) {
	doc, err := rp.repo.Document()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []SearchResult
	for i := range doc.Workers {
		if strings.Contains(strings.ToLower(doc.Workers[i].Name), q) {
			results = append(results, SearchResult{Type: "worker", Worker: &doc.Workers[i]})
		}
	}
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			results = append(results, SearchResult{Type: "task", Task: t})
		}
	}
	return results, nil
}
