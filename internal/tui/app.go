package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/export"
	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
)

var exportFormats = []string{"Timesheet (CSV)", "Workers (CSV)", "Full backup (JSON)"}

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	repo     *repo.Repository
	reporter *report.Reporter
	width    int
	height   int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	searching     bool
	searchInput   textinput.Model
	searchResults []report.SearchResult

	dashboard dashboardModel
	workers   workersModel
	tasks     tasksModel
	timesheet timesheetModel
	reports   reportsModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(st *store.Store, rp *repo.Repository, rep *report.Reporter) App {
	h := help.New()
	h.ShowAll = false

	if prefs, err := st.LoadPreferences(); err == nil {
		applyTheme(prefs.Theme)
	}

	active := viewDashboard
	if state, err := st.LoadAppState(); err == nil {
		active = viewFromKey(state.CurrentTab)
	}

	si := textinput.New()
	si.Placeholder = "search workers and tasks"
	si.CharLimit = 64

	return App{
		store:       st,
		repo:        rp,
		reporter:    rep,
		activeView:  active,
		searchInput: si,
		dashboard:   newDashboardModel(rp, rep),
		workers:     newWorkersModel(rp),
		tasks:       newTasksModel(rp),
		timesheet:   newTimesheetModel(rp, rep),
		reports:     newReportsModel(rp, rep),
		settings:    newSettingsModel(rp, st),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return a.refreshCurrentView()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.workers.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.timesheet.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.searching {
			return a.updateSearch(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Search):
			a.searching = true
			a.searchInput.SetValue("")
			a.searchResults = nil
			return a, a.searchInput.Focus()
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewWorkers)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewTimesheet)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewReports)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case dataClearedMsg:
		a.status = "All data cleared"
		return a, a.refreshCurrentView()
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	// Best effort; a failed state write only costs tab restoration.
	a.store.SaveAppState(&store.AppState{CurrentTab: viewKeys[v]})
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewWorkers:
		a.workers, cmd = a.workers.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewTimesheet:
		a.timesheet, cmd = a.timesheet.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWorkers:
		return a.workers.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewTimesheet:
		return a.timesheet.formActive
	case viewReports:
		return a.reports.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewWorkers:
		return a.workers.refresh()
	case viewTasks:
		return a.tasks.refresh()
	case viewTimesheet:
		return a.timesheet.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

// --- Search overlay ---

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Enter):
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	query := a.searchInput.Value()
	if query == "" {
		a.searchResults = nil
		return a, cmd
	}
	results, err := a.reporter.Search(query)
	if err != nil {
		a.status = fmt.Sprintf("Search error: %v", err)
		return a, cmd
	}
	a.searchResults = results
	return a, cmd
}

func (a App) renderSearch() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Search"))
	rows = append(rows, "")
	rows = append(rows, a.searchInput.View())
	rows = append(rows, "")

	if a.searchInput.Value() != "" && len(a.searchResults) == 0 {
		rows = append(rows, mutedStyle.Render("  No matches"))
	}
	shown := a.searchResults
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, res := range shown {
		switch res.Type {
		case "worker":
			tag := highlightStyle.Render("[worker]")
			rows = append(rows, fmt.Sprintf("  %s %s", tag, res.Worker.Name))
		case "task":
			tag := accentStyle.Render("[task]")
			rows = append(rows, fmt.Sprintf("  %s %s", tag, res.Task.Title))
		}
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: close"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// --- Export picker ---

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.repo.Document()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DateOnly)

		var path string
		switch format {
		case 0:
			workers := make(map[string]*store.Worker, len(doc.Workers))
			for i := range doc.Workers {
				workers[doc.Workers[i].ID] = &doc.Workers[i]
			}
			path = filepath.Join(home, fmt.Sprintf("workforce-timesheet-%s.csv", dateStr))
			if err := export.TimesheetCSVToFile(doc.TimeEntries, workers, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		case 1:
			path = filepath.Join(home, fmt.Sprintf("workforce-workers-%s.csv", dateStr))
			if err := export.WorkersCSVToFile(doc.Workers, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		default:
			path = filepath.Join(home, fmt.Sprintf("workforce-backup-%s.json", dateStr))
			if err := export.DocumentJSONToFile(doc, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

// --- Rendering ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewWorkers:
		content = a.workers.view()
	case viewTasks:
		content = a.tasks.view()
	case viewTimesheet:
		content = a.timesheet.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}
	if a.searching {
		content = a.renderSearch()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("workforce")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
