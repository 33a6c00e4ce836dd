package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/store"
)

var taskStatuses = []string{store.TaskTodo, store.TaskInProgress, store.TaskReview, store.TaskCompleted}
var taskStatusLabels = []string{"To Do", "In Progress", "Review", "Completed"}
var taskPriorities = []string{store.PriorityLow, store.PriorityMedium, store.PriorityHigh, store.PriorityUrgent}

type tasksModel struct {
	repo   *repo.Repository
	width  int
	height int

	tasks   []store.Task
	workers []store.Worker
	board   [4][]store.Task
	col     int
	row     int

	formActive bool
	form       *huh.Form
	editingID  string

	formTitle     *string
	formDesc      *string
	formStatus    *string
	formPriority  *string
	formAssignee  *string
	formDueDate   *string
	formTags      *string
	formChecklist *string
}

func newTasksModel(rp *repo.Repository) tasksModel {
	title, desc, status, priority := "", "", "", ""
	assignee, due, tags, checklist := "", "", "", ""
	return tasksModel{
		repo:          rp,
		formTitle:     &title,
		formDesc:      &desc,
		formStatus:    &status,
		formPriority:  &priority,
		formAssignee:  &assignee,
		formDueDate:   &due,
		formTags:      &tags,
		formChecklist: &checklist,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.repo.ListTasks()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		workers, _ := m.repo.ListWorkers()
		return tasksDataMsg{tasks: tasks, workers: workers}
	}
}

// groupTasks splits tasks into board columns, keeping collection order
// within each column. Unrecognized statuses land in the first column.
func groupTasks(tasks []store.Task) [4][]store.Task {
	var board [4][]store.Task
	for _, t := range tasks {
		col := 0
		for i, s := range taskStatuses {
			if t.Status == s {
				col = i
				break
			}
		}
		board[col] = append(board[col], t)
	}
	return board
}

// nextTaskStatus advances a task one column, wrapping from completed back
// to todo.
func nextTaskStatus(status string) string {
	for i, s := range taskStatuses {
		if s == status {
			return taskStatuses[(i+1)%len(taskStatuses)]
		}
	}
	return store.TaskTodo
}

func (m tasksModel) selected() *store.Task {
	if m.row < len(m.board[m.col]) {
		return &m.board[m.col][m.row]
	}
	return nil
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.workers = msg.workers
		m.board = groupTasks(m.tasks)
		if m.row >= len(m.board[m.col]) {
			m.row = max(0, len(m.board[m.col])-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
				m.row = min(m.row, max(0, len(m.board[m.col])-1))
			}
		case key.Matches(msg, keys.Right):
			if m.col < len(m.board)-1 {
				m.col++
				m.row = min(m.row, max(0, len(m.board[m.col])-1))
			}
		case key.Matches(msg, keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, keys.Down):
			if m.row < len(m.board[m.col])-1 {
				m.row++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if t := m.selected(); t != nil {
				return m.showForm(t)
			}
		case key.Matches(msg, keys.Delete):
			if t := m.selected(); t != nil {
				if err := m.repo.DeleteTask(t.ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Advance), key.Matches(msg, keys.Enter):
			if t := m.selected(); t != nil {
				next := nextTaskStatus(t.Status)
				if _, err := m.repo.UpdateTask(t.ID, repo.TaskPatch{Status: &next}); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Update error: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m tasksModel) showForm(t *store.Task) (tasksModel, tea.Cmd) {
	if t != nil {
		m.editingID = t.ID
		*m.formTitle = t.Title
		*m.formDesc = t.Description
		*m.formStatus = t.Status
		*m.formPriority = t.Priority
		*m.formAssignee = t.AssigneeID
		*m.formDueDate = t.DueDate
		*m.formTags = t.Tags
		*m.formChecklist = renderChecklist(t.Checklist)
	} else {
		m.editingID = ""
		*m.formTitle = ""
		*m.formDesc = ""
		*m.formStatus = taskStatuses[m.col]
		*m.formPriority = store.PriorityMedium
		*m.formAssignee = ""
		*m.formDueDate = ""
		*m.formTags = ""
		*m.formChecklist = ""
	}

	statusOptions := make([]huh.Option[string], len(taskStatuses))
	for i, s := range taskStatuses {
		statusOptions[i] = huh.NewOption(taskStatusLabels[i], s)
	}
	priorityOptions := make([]huh.Option[string], len(taskPriorities))
	for i, p := range taskPriorities {
		priorityOptions[i] = huh.NewOption(p, p)
	}
	assigneeOptions := []huh.Option[string]{huh.NewOption("Unassigned", "")}
	for _, w := range m.workers {
		assigneeOptions = append(assigneeOptions, huh.NewOption(w.Name, w.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
			huh.NewSelect[string]().Title("Assignee").Options(assigneeOptions...).Value(m.formAssignee),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDueDate),
			huh.NewInput().Title("Tags (comma-separated)").Value(m.formTags),
			huh.NewText().Title("Checklist (one item per line, [x] marks done)").Value(m.formChecklist),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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

func (m tasksModel) submitForm() (tasksModel, tea.Cmd) {
	if *m.formTitle == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Task title is required", isError: true}
		}
	}

	checklist := parseChecklist(*m.formChecklist)
	var err error
	if m.editingID != "" {
		_, err = m.repo.UpdateTask(m.editingID, repo.TaskPatch{
			Title:       m.formTitle,
			Description: m.formDesc,
			Status:      m.formStatus,
			Priority:    m.formPriority,
			AssigneeID:  m.formAssignee,
			DueDate:     m.formDueDate,
			Tags:        m.formTags,
			Checklist:   &checklist,
		})
	} else {
		_, err = m.repo.AddTask(store.Task{
			Title:       *m.formTitle,
			Description: *m.formDesc,
			Status:      *m.formStatus,
			Priority:    *m.formPriority,
			AssigneeID:  *m.formAssignee,
			DueDate:     *m.formDueDate,
			Tags:        *m.formTags,
			Checklist:   checklist,
		})
	}
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

// parseChecklist turns the form's multiline text into checklist items.
// Lines starting with "[x]" are completed; "[ ]" prefixes are optional.
func parseChecklist(text string) []store.ChecklistItem {
	var items []store.ChecklistItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		item := store.ChecklistItem{Text: line}
		switch {
		case strings.HasPrefix(line, "[x]"), strings.HasPrefix(line, "[X]"):
			item.Completed = true
			item.Text = strings.TrimSpace(line[3:])
		case strings.HasPrefix(line, "[ ]"):
			item.Text = strings.TrimSpace(line[3:])
		}
		if item.Text != "" {
			items = append(items, item)
		}
	}
	return items
}

func renderChecklist(items []store.ChecklistItem) string {
	var lines []string
	for _, item := range items {
		if item.Completed {
			lines = append(lines, "[x] "+item.Text)
		} else {
			lines = append(lines, "[ ] "+item.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func checklistProgress(items []store.ChecklistItem) (done, total int) {
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	return done, len(items)
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	names := workerNames(m.workers)
	colWidth := w/len(m.board) - 2
	if colWidth < 16 {
		colWidth = 16
	}

	var cols []string
	for ci := range m.board {
		cols = append(cols, m.renderColumn(ci, colWidth, names))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	hint := mutedStyle.Render("  n: new  e: edit  d: delete  space: advance status  ←/→: column")
	return lipgloss.JoinVertical(lipgloss.Left, board, hint)
}

func (m tasksModel) renderColumn(ci, width int, names map[string]string) string {
	label := fmt.Sprintf("%s (%d)", taskStatusLabels[ci], len(m.board[ci]))
	header := titleStyle.Render(label)
	if ci == m.col {
		header = selectedItemStyle.Render(label)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	if len(m.board[ci]) == 0 {
		rows = append(rows, mutedStyle.Render("—"))
	}
	for ri, t := range m.board[ci] {
		rows = append(rows, m.renderCard(t, ci == m.col && ri == m.row, width-6, names))
	}

	style := panelStyle
	if ci == m.col {
		style = activePanelStyle
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderCard(t store.Task, selected bool, width int, names map[string]string) string {
	marker := priorityStyle(t.Priority).Render("▌")

	style := normalItemStyle
	if selected {
		style = selectedItemStyle
	}
	title := style.Render(truncate(t.Title, width-2))

	assignee := mutedStyle.Render(lookupWorker(names, t.AssigneeID, "Unassigned"))
	if t.AssigneeID == "" {
		assignee = mutedStyle.Render("Unassigned")
	}

	meta := assignee
	if done, total := checklistProgress(t.Checklist); total > 0 {
		meta += mutedStyle.Render(fmt.Sprintf("  %d/%d", done, total))
	}
	if t.DueDate != "" {
		meta += warningStyle.Render("  due " + t.DueDate)
	}

	return fmt.Sprintf("%s %s\n  %s", marker, title, meta)
}
