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

var currencies = []string{"USD", "EUR", "GBP"}

type settingsModel struct {
	repo   *repo.Repository
	store  *store.Store
	width  int
	height int

	settings store.Settings
	prefs    store.Preferences

	formActive bool
	form       *huh.Form
	formType   string // "edit" or "clear"

	formBusiness  *string
	formRate      *string
	formCurrency  *string
	formOvertime  *string
	formMaxHours  *string
	formBreak     *string
	formAutoBreak *bool
	formNotify    *bool
	clearConfirm  *bool
}

func newSettingsModel(rp *repo.Repository, st *store.Store) settingsModel {
	business, rate, currency, overtime, maxHours, brk := "", "", "", "", "", ""
	autoBreak, notify, clear := false, false, false
	return settingsModel{
		repo:          rp,
		store:         st,
		settings:      store.DefaultSettings(),
		prefs:         store.Preferences{Theme: "dark"},
		formBusiness:  &business,
		formRate:      &rate,
		formCurrency:  &currency,
		formOvertime:  &overtime,
		formMaxHours:  &maxHours,
		formBreak:     &brk,
		formAutoBreak: &autoBreak,
		formNotify:    &notify,
		clearConfirm:  &clear,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := m.repo.Settings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		prefs := store.Preferences{Theme: "dark"}
		if p, err := m.store.LoadPreferences(); err == nil {
			prefs = *p
		}
		return settingsDataMsg{settings: settings, prefs: prefs}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		m.prefs = msg.prefs
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New), key.Matches(msg, keys.Edit):
			return m.showEditForm()
		case key.Matches(msg, keys.Delete):
			return m.showClearForm()
		case msg.String() == "t":
			return m.toggleTheme()
		}
	}
	return m, nil
}

func (m settingsModel) toggleTheme() (settingsModel, tea.Cmd) {
	if m.prefs.Theme == "light" {
		m.prefs.Theme = "dark"
	} else {
		m.prefs.Theme = "light"
	}
	applyTheme(m.prefs.Theme)
	if err := m.store.SavePreferences(&m.prefs); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	theme := m.prefs.Theme
	return m, func() tea.Msg {
		return statusMsg{text: "Theme set to " + theme}
	}
}

func (m settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	*m.formBusiness = m.settings.BusinessName
	*m.formRate = strconv.FormatFloat(m.settings.DefaultRate, 'f', 2, 64)
	*m.formCurrency = m.settings.Currency
	*m.formOvertime = strconv.FormatFloat(m.settings.OvertimeMultiplier, 'f', 1, 64)
	*m.formMaxHours = strconv.Itoa(m.settings.MaxHoursPerDay)
	*m.formBreak = strconv.Itoa(m.settings.BreakInterval)
	*m.formAutoBreak = m.settings.AutoBreak
	*m.formNotify = m.settings.Notifications
	m.formType = "edit"

	currencyOptions := make([]huh.Option[string], len(currencies))
	for i, c := range currencies {
		currencyOptions[i] = huh.NewOption(c, c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Business name").Value(m.formBusiness),
			huh.NewInput().Title("Default hourly rate").Value(m.formRate),
			huh.NewSelect[string]().Title("Currency").Options(currencyOptions...).Value(m.formCurrency),
		).Title("Billing"),
		huh.NewGroup(
			huh.NewInput().Title("Overtime multiplier").Value(m.formOvertime),
			huh.NewInput().Title("Max hours per day").Value(m.formMaxHours),
			huh.NewInput().Title("Break interval (min)").Value(m.formBreak),
			huh.NewConfirm().Title("Auto break").Value(m.formAutoBreak),
			huh.NewConfirm().Title("Notifications").Value(m.formNotify),
		).Title("Hours"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showClearForm() (settingsModel, tea.Cmd) {
	*m.clearConfirm = false
	m.formType = "clear"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("Workers, tasks, time entries, and invoices will be deleted. This cannot be undone.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(m.clearConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		if m.formType == "clear" {
			return m.submitClear()
		}
		return m.submitEdit()
	}

	return m, cmd
}

func (m settingsModel) submitClear() (settingsModel, tea.Cmd) {
	if !*m.clearConfirm {
		return m, nil
	}
	if err := m.store.ClearAll(); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Clear error: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return dataClearedMsg{} },
	)
}

func (m settingsModel) submitEdit() (settingsModel, tea.Cmd) {
	patch := repo.SettingsPatch{
		BusinessName:  m.formBusiness,
		AutoBreak:     m.formAutoBreak,
		Notifications: m.formNotify,
		Currency:      m.formCurrency,
	}
	if rate, err := strconv.ParseFloat(*m.formRate, 64); err == nil && rate >= 0 {
		patch.DefaultRate = &rate
	}
	if mult, err := strconv.ParseFloat(*m.formOvertime, 64); err == nil && mult >= 1 {
		patch.OvertimeMultiplier = &mult
	}
	if maxHours, err := strconv.Atoi(*m.formMaxHours); err == nil && maxHours >= 1 && maxHours <= 24 {
		patch.MaxHoursPerDay = &maxHours
	}
	if brk, err := strconv.Atoi(*m.formBreak); err == nil && brk >= 0 {
		patch.BreakInterval = &brk
	}

	if _, err := m.repo.UpdateSettings(patch); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		if m.formType == "clear" {
			title = errorStyle.Render("Clear All Data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	label := func(s string) string {
		return lipgloss.NewStyle().Width(24).Render(s)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", label("Business name"), highlightStyle.Render(m.settings.BusinessName)))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Default rate"), highlightStyle.Render(formatMoney(m.settings.DefaultRate, m.settings.Currency))))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Currency"), highlightStyle.Render(m.settings.Currency)))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Overtime multiplier"), highlightStyle.Render(fmt.Sprintf("%.1fx", m.settings.OvertimeMultiplier))))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Max hours per day"), highlightStyle.Render(strconv.Itoa(m.settings.MaxHoursPerDay))))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Break interval"), highlightStyle.Render(fmt.Sprintf("%d min", m.settings.BreakInterval))))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Auto break"), onOff(m.settings.AutoBreak)))
	rows = append(rows, fmt.Sprintf("  %s %s", label("Notifications"), onOff(m.settings.Notifications)))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", label("Theme"), highlightStyle.Render(m.prefs.Theme)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit  t: toggle theme  d: clear all data"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
