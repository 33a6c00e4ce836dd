package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/store"
)

var workerStatuses = []string{store.WorkerActive, store.WorkerInactive, store.WorkerVacation, store.WorkerSick}

type workersModel struct {
	repo   *repo.Repository
	width  int
	height int

	workers []store.Worker
	cursor  int

	formActive bool
	form       *huh.Form
	editingID  string // empty while creating

	// Form field pointers (survive value copies)
	formName       *string
	formEmail      *string
	formPhone      *string
	formRate       *string
	formStatus     *string
	formDepartment *string
	formSkills     *string
}

func newWorkersModel(rp *repo.Repository) workersModel {
	name, email, phone, rate := "", "", "", ""
	status, dept, skills := "", "", ""
	return workersModel{
		repo:           rp,
		formName:       &name,
		formEmail:      &email,
		formPhone:      &phone,
		formRate:       &rate,
		formStatus:     &status,
		formDepartment: &dept,
		formSkills:     &skills,
	}
}

func (m *workersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m workersModel) refresh() tea.Cmd {
	return func() tea.Msg {
		workers, err := m.repo.ListWorkers()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return workersDataMsg{workers: workers}
	}
}

func (m workersModel) update(msg tea.Msg) (workersModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case workersDataMsg:
		m.workers = msg.workers
		if m.cursor >= len(m.workers) {
			m.cursor = max(0, len(m.workers)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.workers)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.workers) > 0 {
				w := m.workers[m.cursor]
				return m.showForm(&w)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.workers) > 0 {
				w := m.workers[m.cursor]
				if err := m.repo.DeleteWorker(w.ID); err != nil {
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

func (m workersModel) showForm(w *store.Worker) (workersModel, tea.Cmd) {
	if w != nil {
		m.editingID = w.ID
		*m.formName = w.Name
		*m.formEmail = w.Email
		*m.formPhone = w.Phone
		*m.formRate = strconv.FormatFloat(w.Rate, 'f', -1, 64)
		*m.formStatus = w.Status
		*m.formDepartment = w.Department
		*m.formSkills = w.Skills
	} else {
		m.editingID = ""
		settings, _ := m.repo.Settings()
		*m.formName = ""
		*m.formEmail = ""
		*m.formPhone = ""
		*m.formRate = strconv.FormatFloat(settings.DefaultRate, 'f', 2, 64)
		*m.formStatus = store.WorkerActive
		*m.formDepartment = ""
		*m.formSkills = ""
	}

	statusOptions := make([]huh.Option[string], len(workerStatuses))
	for i, s := range workerStatuses {
		statusOptions[i] = huh.NewOption(s, s)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Email").Value(m.formEmail),
			huh.NewInput().Title("Phone").Value(m.formPhone),
			huh.NewInput().Title("Hourly rate").Value(m.formRate),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Department").Value(m.formDepartment),
			huh.NewInput().Title("Skills (comma-separated)").Value(m.formSkills),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m workersModel) updateForm(msg tea.Msg) (workersModel, tea.Cmd) {
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

func (m workersModel) submitForm() (workersModel, tea.Cmd) {
	// Required-field validation happens here, not in the repository.
	if *m.formName == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Worker name is required", isError: true}
		}
	}
	rate, err := strconv.ParseFloat(*m.formRate, 64)
	if err != nil || rate < 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "Hourly rate must be a non-negative number", isError: true}
		}
	}

	if m.editingID != "" {
		_, err = m.repo.UpdateWorker(m.editingID, repo.WorkerPatch{
			Name:       m.formName,
			Email:      m.formEmail,
			Phone:      m.formPhone,
			Rate:       &rate,
			Status:     m.formStatus,
			Department: m.formDepartment,
			Skills:     m.formSkills,
		})
	} else {
		_, err = m.repo.AddWorker(store.Worker{
			Name:       *m.formName,
			Email:      *m.formEmail,
			Phone:      *m.formPhone,
			Rate:       rate,
			Status:     *m.formStatus,
			Department: *m.formDepartment,
			Skills:     *m.formSkills,
		})
	}
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m workersModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Worker")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Worker")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Workers")

	if len(m.workers) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No workers yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-12s %-14s %8s", "", "Name", "Status", "Department", "Rate")))

	for i, wk := range m.workers {
		dot := workerStatusStyle(wk.Status).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %-12s %-14s %8.2f",
			cursor, dot, truncate(wk.Name, 24), wk.Status, truncate(wk.Department, 14), wk.Rate))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
