package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
)

type timesheetModel struct {
	repo     *repo.Repository
	reporter *report.Reporter
	width    int
	height   int

	entries  []store.TimeEntry
	workers  []store.Worker
	week     [7]report.DayTotal
	settings store.Settings
	cursor   int

	formActive bool
	form       *huh.Form
	editingID  string

	formWorker *string
	formDate   *string
	formHours  *string
	formRate   *string
	formDesc   *string
}

func newTimesheetModel(rp *repo.Repository, rep *report.Reporter) timesheetModel {
	worker, date, hours, rate, desc := "", "", "", "", ""
	return timesheetModel{
		repo:       rp,
		reporter:   rep,
		settings:   store.DefaultSettings(),
		formWorker: &worker,
		formDate:   &date,
		formHours:  &hours,
		formRate:   &rate,
		formDesc:   &desc,
	}
}

func (m *timesheetModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timesheetModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.repo.ListTimeEntries()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		// Newest first for display.
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date > entries[j].Date
			}
			return entries[i].CreatedAt > entries[j].CreatedAt
		})

		workers, _ := m.repo.ListWorkers()
		week, _ := m.reporter.WeeklyTotals(weekStart(time.Now()))
		settings, _ := m.repo.Settings()

		return entriesDataMsg{entries: entries, workers: workers, week: week, settings: settings}
	}
}

func (m timesheetModel) update(msg tea.Msg) (timesheetModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		m.entries = msg.entries
		m.workers = msg.workers
		m.week = msg.week
		m.settings = msg.settings
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			if len(m.workers) == 0 {
				return m, func() tea.Msg {
					return statusMsg{text: "No workers yet. Press 2 to go to Workers and add one.", isError: true}
				}
			}
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.entries) > 0 {
				e := m.entries[m.cursor]
				return m.showForm(&e)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.entries) > 0 {
				e := m.entries[m.cursor]
				if err := m.repo.DeleteTimeEntry(e.ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m timesheetModel) showForm(e *store.TimeEntry) (timesheetModel, tea.Cmd) {
	if e != nil {
		m.editingID = e.ID
		*m.formWorker = e.WorkerID
		*m.formDate = e.Date
		*m.formHours = strconv.FormatFloat(e.Hours, 'f', -1, 64)
		*m.formRate = strconv.FormatFloat(e.Rate, 'f', -1, 64)
		*m.formDesc = e.TaskDescription
	} else {
		m.editingID = ""
		*m.formWorker = ""
		if len(m.workers) > 0 {
			*m.formWorker = m.workers[0].ID
		}
		*m.formDate = store.Day(time.Now())
		*m.formHours = ""
		*m.formRate = strconv.FormatFloat(m.settings.DefaultRate, 'f', 2, 64)
		*m.formDesc = ""
	}

	workerOptions := make([]huh.Option[string], len(m.workers))
	for i, w := range m.workers {
		label := fmt.Sprintf("%s (%.2f/h)", w.Name, w.Rate)
		workerOptions[i] = huh.NewOption(label, w.ID)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Worker").Options(workerOptions...).Value(m.formWorker),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewInput().Title("Hours").Value(m.formHours),
			huh.NewInput().Title("Rate").Value(m.formRate),
			huh.NewInput().Title("Description").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timesheetModel) updateForm(msg tea.Msg) (timesheetModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}

	return m, cmd
}

func (m timesheetModel) submitForm() (timesheetModel, tea.Cmd) {
	hours, err := strconv.ParseFloat(*m.formHours, 64)
	if err != nil || hours < 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "Hours must be a non-negative number", isError: true}
		}
	}
	if float64(m.settings.MaxHoursPerDay) > 0 && hours > float64(m.settings.MaxHoursPerDay) {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Hours cannot exceed %d per day", m.settings.MaxHoursPerDay), isError: true}
		}
	}
	rate, err := strconv.ParseFloat(*m.formRate, 64)
	if err != nil || rate < 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "Rate must be a non-negative number", isError: true}
		}
	}
	if _, err := time.Parse(store.DateOnly, *m.formDate); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: "Date must be YYYY-MM-DD", isError: true}
		}
	}

	if m.editingID != "" {
		_, err = m.repo.UpdateTimeEntry(m.editingID, repo.EntryPatch{
			WorkerID:        m.formWorker,
			Date:            m.formDate,
			Hours:           &hours,
			Rate:            &rate,
			TaskDescription: m.formDesc,
		})
	} else {
		_, err = m.repo.AddTimeEntry(store.TimeEntry{
			WorkerID:        *m.formWorker,
			Date:            *m.formDate,
			Hours:           hours,
			Rate:            rate,
			TaskDescription: *m.formDesc,
		})
	}
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m timesheetModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Time")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Entry")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var weekHours, weekEarnings float64
	for _, day := range m.week {
		weekHours += day.Hours
		weekEarnings += day.Earnings
	}
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("Timesheet"),
		mutedStyle.Render(fmt.Sprintf("this week: %s  %s",
			formatHours(weekHours), formatMoney(weekEarnings, m.settings.Currency))),
	)

	if len(m.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No time logged yet. Press n to log hours."),
		)
		return panelStyle.Width(w).Render(content)
	}

	names := workerNames(m.workers)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %7s %8s %10s  %s",
		"Date", "Worker", "Hours", "Rate", "Earnings", "Description")))

	visible := m.entries
	if len(visible) > 20 {
		visible = visible[:20]
	}
	for i, e := range visible {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := lookupWorker(names, e.WorkerID, "Unknown Worker")
		row := style.Render(fmt.Sprintf("%s%-12s %-20s %7s %8.2f %10s  %s",
			cursor, e.Date, truncate(name, 20), formatHours(e.Hours), e.Rate,
			formatMoney(e.Earnings(), m.settings.Currency), truncate(e.TaskDescription, 24)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log time  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
