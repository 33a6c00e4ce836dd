package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
)

type dashboardModel struct {
	repo     *repo.Repository
	reporter *report.Reporter
	width    int
	height   int

	stats      report.Stats
	performers []report.Performance
	activity   []report.Activity
	settings   store.Settings
}

func newDashboardModel(rp *repo.Repository, rep *report.Reporter) dashboardModel {
	return dashboardModel{repo: rp, reporter: rep, settings: store.DefaultSettings()}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		stats, err := d.reporter.DashboardStats(time.Now())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		performers, _ := d.reporter.TopPerformers(5)
		activity, _ := d.reporter.RecentActivity(5)
		settings, _ := d.repo.Settings()

		return dashboardDataMsg{
			stats:      stats,
			performers: performers,
			activity:   activity,
			settings:   settings,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.stats = msg.stats
		d.performers = msg.performers
		d.activity = msg.activity
		d.settings = msg.settings
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsRow(contentWidth)
	performersPanel := d.renderPerformers(contentWidth)
	activityPanel := d.renderActivity(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statsPanel, performersPanel, activityPanel)
}

func (d dashboardModel) renderStatsRow(w int) string {
	boxWidth := w/4 - 2
	if boxWidth < 12 {
		boxWidth = 12
	}

	box := func(label, value string) string {
		content := lipgloss.JoinVertical(lipgloss.Center,
			statValueStyle.Width(boxWidth-6).Render(value),
			mutedStyle.Render(label),
		)
		return panelStyle.Width(boxWidth).Render(content)
	}

	active := fmt.Sprintf("%d / %d", d.stats.ActiveWorkers, d.stats.TotalWorkers)
	revenue := formatMoney(d.stats.RevenueToday, d.settings.Currency)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Hours Today", formatHours(d.stats.HoursToday)),
		box("Active Workers", active),
		box("Tasks Done Today", fmt.Sprintf("%d", d.stats.TasksToday)),
		box("Revenue Today", revenue),
	)
}

func (d dashboardModel) renderPerformers(w int) string {
	title := titleStyle.Render("Top Performers")

	if len(d.performers) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No workers yet. Press 2 to add some."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %8s %8s %12s", "Name", "Hours", "Tasks", "Efficiency")))
	for _, p := range d.performers {
		eff := fmt.Sprintf("%d%%", p.Efficiency)
		row := fmt.Sprintf("  %-24s %8s %8d %12s",
			truncate(p.Worker.Name, 24),
			formatHours(p.Hours),
			p.TasksCompleted,
			highlightStyle.Render(eff),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderActivity(w int) string {
	title := titleStyle.Render("Recent Activity")

	if len(d.activity) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, act := range d.activity {
		marker := successStyle.Render("✓")
		if act.Type == report.ActivityTimeLogged {
			marker = highlightStyle.Render("●")
		}
		when := mutedStyle.Render(store.DayOf(act.Timestamp))
		rows = append(rows, fmt.Sprintf("  %s %s  %s", marker, when, act.Description))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
