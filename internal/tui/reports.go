package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
)

type reportMode int

const (
	reportWeekly reportMode = iota
	reportInvoices
)

var invoiceStatuses = []string{store.InvoiceDraft, store.InvoiceSent, store.InvoicePaid, store.InvoiceOverdue}

type reportsModel struct {
	repo     *repo.Repository
	reporter *report.Reporter
	width    int
	height   int

	mode     reportMode
	offset   int // weeks back from the current week (0 = current)
	week     [7]report.DayTotal
	invoices []store.Invoice
	settings store.Settings
	cursor   int

	chart barchart.Model

	formActive bool
	form       *huh.Form
	editingID  string

	formNumber *string
	formClient *string
	formAmount *string
	formStatus *string
	formDate   *string
	formDue    *string
}

func newReportsModel(rp *repo.Repository, rep *report.Reporter) reportsModel {
	number, client, amount, status, date, due := "", "", "", "", "", ""
	return reportsModel{
		repo:       rp,
		reporter:   rep,
		settings:   store.DefaultSettings(),
		chart:      barchart.New(60, 12),
		formNumber: &number,
		formClient: &client,
		formAmount: &amount,
		formStatus: &status,
		formDate:   &date,
		formDue:    &due,
	}
}

func (m *reportsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m reportsModel) weekAnchor() time.Time {
	return weekStart(time.Now()).AddDate(0, 0, -7*m.offset)
}

func (m reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		week, err := m.reporter.WeeklyTotals(m.weekAnchor())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		invoices, _ := m.repo.ListInvoices()
		settings, _ := m.repo.Settings()
		return reportsDataMsg{week: week, invoices: invoices, settings: settings}
	}
}

func (m reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case reportsDataMsg:
		m.week = msg.week
		m.invoices = msg.invoices
		m.settings = msg.settings
		if m.cursor >= len(m.invoices) {
			m.cursor = max(0, len(m.invoices)-1)
		}
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Mode):
			if m.mode == reportWeekly {
				m.mode = reportInvoices
			} else {
				m.mode = reportWeekly
			}
			return m, m.refresh()
		}
		if m.mode == reportWeekly {
			return m.updateWeekly(msg)
		}
		return m.updateInvoices(msg)
	}
	return m, nil
}

func (m reportsModel) updateWeekly(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.offset++
		return m, m.refresh()
	case key.Matches(msg, keys.Right):
		if m.offset > 0 {
			m.offset--
		}
		return m, m.refresh()
	}
	return m, nil
}

func (m reportsModel) updateInvoices(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		return m.showForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(m.invoices) > 0 {
			inv := m.invoices[m.cursor]
			return m.showForm(&inv)
		}
	case key.Matches(msg, keys.Delete):
		if len(m.invoices) > 0 {
			inv := m.invoices[m.cursor]
			if err := m.repo.DeleteInvoice(inv.ID); err != nil {
				return m, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
				}
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m reportsModel) showForm(inv *store.Invoice) (reportsModel, tea.Cmd) {
	if inv != nil {
		m.editingID = inv.ID
		*m.formNumber = inv.Number
		*m.formClient = inv.ClientName
		*m.formAmount = strconv.FormatFloat(inv.Amount, 'f', 2, 64)
		*m.formStatus = inv.Status
		*m.formDate = inv.Date
		*m.formDue = inv.DueDate
	} else {
		m.editingID = ""
		*m.formNumber = fmt.Sprintf("INV-%04d", len(m.invoices)+1)
		*m.formClient = ""
		*m.formAmount = ""
		*m.formStatus = store.InvoiceDraft
		*m.formDate = store.Day(time.Now())
		*m.formDue = store.Day(time.Now().AddDate(0, 0, 30))
	}

	statusOptions := make([]huh.Option[string], len(invoiceStatuses))
	for i, s := range invoiceStatuses {
		statusOptions[i] = huh.NewOption(s, s)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Number").Value(m.formNumber),
			huh.NewInput().Title("Client").Value(m.formClient),
			huh.NewInput().Title("Amount").Value(m.formAmount),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m reportsModel) updateForm(msg tea.Msg) (reportsModel, tea.Cmd) {
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

func (m reportsModel) submitForm() (reportsModel, tea.Cmd) {
	if *m.formClient == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Client name is required", isError: true}
		}
	}
	amount, err := strconv.ParseFloat(*m.formAmount, 64)
	if err != nil || amount < 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "Amount must be a non-negative number", isError: true}
		}
	}

	if m.editingID != "" {
		_, err = m.repo.UpdateInvoice(m.editingID, repo.InvoicePatch{
			Number:     m.formNumber,
			ClientName: m.formClient,
			Amount:     &amount,
			Status:     m.formStatus,
			Date:       m.formDate,
			DueDate:    m.formDue,
		})
	} else {
		_, err = m.repo.AddInvoice(store.Invoice{
			Number:     *m.formNumber,
			ClientName: *m.formClient,
			Amount:     amount,
			Status:     *m.formStatus,
			Date:       *m.formDate,
			DueDate:    *m.formDue,
		})
	}
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
	}
	return m, m.refresh()
}

func (m *reportsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range m.week {
		d, _ := time.Parse(store.DateOnly, day.Date)
		label := d.Format("Mon 02")

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if day.Hours == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: day.Date, Value: day.Hours, Style: style}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m reportsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Invoice")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Invoice")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	weeklyTab := inactiveTabStyle.Render("Weekly")
	invoicesTab := inactiveTabStyle.Render("Invoices")
	if m.mode == reportWeekly {
		weeklyTab = activeTabStyle.Render("Weekly")
	} else {
		invoicesTab = activeTabStyle.Render("Invoices")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weeklyTab, invoicesTab)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs,
	)

	var body string
	if m.mode == reportWeekly {
		body = m.renderWeekly(w)
	} else {
		body = m.renderInvoices(w)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body),
	)
}

func (m reportsModel) renderWeekly(w int) string {
	anchor := m.weekAnchor()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		anchor.Format("Jan 02"), anchor.AddDate(0, 0, 6).Format("Jan 02, 2006")))

	var totalHours, totalEarnings float64
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s %12s", "Date", "Hours", "Earnings")))
	for _, day := range m.week {
		totalHours += day.Hours
		totalEarnings += day.Earnings
		rows = append(rows, fmt.Sprintf("  %-12s %8s %12s",
			day.Date, formatHours(day.Hours), formatMoney(day.Earnings, m.settings.Currency)))
	}
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 34)))
	rows = append(rows, fmt.Sprintf("  %-12s %8s %12s",
		"Total",
		highlightStyle.Render(formatHours(totalHours)),
		highlightStyle.Render(formatMoney(totalEarnings, m.settings.Currency))))

	nav := mutedStyle.Render("  ←/→: navigate weeks  m: invoices")

	return lipgloss.JoinVertical(lipgloss.Left,
		dateLabel, "", m.chart.View(), "", strings.Join(rows, "\n"), "", nav,
	)
}

func (m reportsModel) renderInvoices(w int) string {
	if len(m.invoices) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("No invoices yet. Press n to create one."),
			"",
			mutedStyle.Render("  n: new  m: weekly"),
		)
	}

	totals := make(map[string]float64)
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-10s %-20s %12s %-10s %-12s",
		"", "Number", "Client", "Amount", "Status", "Date")))

	for i, inv := range m.invoices {
		totals[inv.Status] += inv.Amount
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := invoiceStatusStyle(inv.Status).Render(fmt.Sprintf("%-10s", inv.Status))
		row := style.Render(fmt.Sprintf("%s%-10s %-20s %12s ",
			cursor, inv.Number, truncate(inv.ClientName, 20),
			formatMoney(inv.Amount, m.settings.Currency))) + status + " " + inv.Date
		rows = append(rows, row)
	}

	var summary []string
	for _, s := range invoiceStatuses {
		if totals[s] > 0 {
			summary = append(summary, fmt.Sprintf("%s %s",
				invoiceStatusStyle(s).Render(s), formatMoney(totals[s], m.settings.Currency)))
		}
	}

	rows = append(rows, "")
	if len(summary) > 0 {
		rows = append(rows, "  "+strings.Join(summary, "  "))
		rows = append(rows, "")
	}
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  m: weekly"))

	return strings.Join(rows, "\n")
}
