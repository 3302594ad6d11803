// Package tui renders the tracker and translates key presses into ledger
// commands. It never touches the state files itself: every mutation goes
// through the ledger, and displayed totals are re-queried after each one.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"duit/internal/core"
	"duit/internal/ledger"
	"duit/internal/log"
)

// Left panel options, in display order.
const (
	optExpenses = iota
	optHistory
	optDashboard
)

var optionLabels = []string{"Current Expenses", "Expenses History", "Dashboard"}

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
	modeEntries
	modeSnapshot
)

type formPurpose int

const (
	purposeNewExpense formPurpose = iota
	purposeDeposit
	purposeNewEntry
	purposeEditEntry
)

// Model is the root bubbletea model. All state transitions happen in Update;
// View is a pure render of the current mode.
type Model struct {
	ledger   *ledger.Ledger
	logger   *log.Logger
	currency string

	width  int
	height int

	mode       mode
	focusRight bool
	option     int
	rowIdx     int

	form    *form
	purpose formPurpose

	entriesCat string
	entryIdx   int

	pendingDelete string

	snapshotName string
	snapshotCats []core.Category

	archives []string

	status    string
	statusErr bool
}

func New(l *ledger.Ledger, currency string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return Model{
		ledger:   l,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentTUI),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeEntries:
			return m.updateEntries(msg)
		case modeSnapshot:
			return m.updateSnapshot(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "h", "left":
		m.focusRight = false
	case "l", "right":
		if m.rowCount() > 0 {
			m.focusRight = true
			m.rowIdx = clamp(m.rowIdx, m.rowCount())
		}
	case "j", "down":
		if m.focusRight {
			m.rowIdx = clamp(m.rowIdx+1, m.rowCount())
		} else {
			m.option = clamp(m.option+1, len(optionLabels))
			m.enterOption()
		}
	case "k", "up":
		if m.focusRight {
			m.rowIdx = clamp(m.rowIdx-1, m.rowCount())
		} else {
			m.option = clamp(m.option-1, len(optionLabels))
			m.enterOption()
		}
	case "d":
		if m.option == optExpenses {
			m.form = newForm("Deposit Balance", "Amount")
			m.purpose = purposeDeposit
			m.mode = modeForm
		}
	case "n":
		if m.option == optExpenses {
			m.form = newForm("New Expense", "Expense name", "Date (DD-MM-YYYY)", "Amount")
			m.purpose = purposeNewExpense
			m.mode = modeForm
		}
	case "x":
		if m.option == optExpenses && m.focusRight {
			if c, ok := m.selectedCategory(); ok {
				m.pendingDelete = c.Name
				m.mode = modeConfirmDelete
			}
		}
	case "enter":
		return m.selectRow()
	}
	return m, nil
}

func (m Model) selectRow() (tea.Model, tea.Cmd) {
	if !m.focusRight {
		if m.rowCount() > 0 && m.option != optDashboard {
			m.focusRight = true
			m.rowIdx = 0
		}
		return m, nil
	}
	switch m.option {
	case optExpenses:
		if c, ok := m.selectedCategory(); ok {
			m.entriesCat = c.Name
			m.entryIdx = 0
			m.mode = modeEntries
		}
	case optHistory:
		if m.rowIdx < len(m.archives) {
			name := m.archives[m.rowIdx]
			cats, err := m.ledger.LoadArchive(name)
			if err != nil {
				m.setError(err)
				return m, nil
			}
			m.snapshotName = name
			m.snapshotCats = cats
			m.mode = modeSnapshot
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.form = nil
		m.mode = m.formReturnMode()
		return m, nil
	}
	if !m.form.handleKey(msg) {
		return m, nil
	}
	return m.submitForm()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	switch m.purpose {
	case purposeDeposit:
		amount, err := core.ParseMoney(f.value(0))
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.ledger.Deposit(amount); err != nil {
			m.setError(err)
			return m, nil
		}
	case purposeNewExpense:
		name := f.value(0)
		if name == "" {
			m.setError(core.ErrEmptyCategory)
			return m, nil
		}
		e, err := parseEntryInput(name, f.value(1), f.value(2))
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.ledger.AddExpense(name, e.Description, e.PaymentDate, e.Value); err != nil {
			m.setError(err)
			return m, nil
		}
	case purposeNewEntry:
		e, err := parseEntryInput(f.value(0), f.value(1), f.value(2))
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.ledger.AddEntry(m.entriesCat, e); err != nil {
			m.setError(err)
			return m, nil
		}
	case purposeEditEntry:
		e, err := parseEntryInput(f.value(0), f.value(1), f.value(2))
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.ledger.UpdateEntryAt(m.entriesCat, m.entryIdx, e); err != nil {
			m.setError(err)
			return m, nil
		}
	}
	m.clearStatus()
	m.form = nil
	m.mode = m.formReturnMode()
	m.rowIdx = clamp(m.rowIdx, m.rowCount())
	return m, nil
}

// formReturnMode picks where a closed form drops back to: entry forms belong
// to the entries dialog, the rest to the main screen.
func (m Model) formReturnMode() mode {
	if m.purpose == purposeNewEntry || m.purpose == purposeEditEntry {
		if _, ok := m.ledger.Category(m.entriesCat); ok {
			return modeEntries
		}
	}
	return modeBrowse
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.ledger.DeleteCategory(m.pendingDelete); err != nil {
			m.setError(err)
		} else {
			m.clearStatus()
		}
		m.pendingDelete = ""
		m.mode = modeBrowse
		m.rowIdx = clamp(m.rowIdx, m.rowCount())
		if m.rowCount() == 0 {
			m.focusRight = false
		}
	case "n", "esc":
		m.pendingDelete = ""
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) updateEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, ok := m.ledger.Category(m.entriesCat)
	if !ok {
		m.mode = modeBrowse
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.rowIdx = clamp(m.rowIdx, m.rowCount())
	case "j", "down":
		m.entryIdx = clamp(m.entryIdx+1, len(c.Entries))
	case "k", "up":
		m.entryIdx = clamp(m.entryIdx-1, len(c.Entries))
	case "n":
		m.form = newForm("New Entry", "Description", "Date (DD-MM-YYYY)", "Amount")
		m.purpose = purposeNewEntry
		m.mode = modeForm
	case "e":
		if m.entryIdx < len(c.Entries) {
			e := c.Entries[m.entryIdx]
			m.form = newForm("Edit Entry", "Description", "Date (DD-MM-YYYY)", "Amount")
			m.form.fields[0].value = e.Description
			m.form.fields[1].value = e.PaymentDate.String()
			m.form.fields[2].value = e.Value.String()
			m.purpose = purposeEditEntry
			m.mode = modeForm
		}
	case "x":
		if m.entryIdx < len(c.Entries) {
			if err := m.ledger.DeleteEntryAt(m.entriesCat, m.entryIdx); err != nil {
				m.setError(err)
			} else {
				m.clearStatus()
			}
			if c, ok := m.ledger.Category(m.entriesCat); ok {
				m.entryIdx = clamp(m.entryIdx, len(c.Entries))
			}
		}
	}
	return m, nil
}

func (m Model) updateSnapshot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		m.snapshotName = ""
		m.snapshotCats = nil
		m.mode = modeBrowse
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// enterOption refreshes data tied to the newly highlighted option.
func (m *Model) enterOption() {
	m.rowIdx = 0
	if m.option == optHistory {
		names, err := m.ledger.ArchivedMonths()
		if err != nil {
			m.setError(err)
			return
		}
		m.archives = names
	}
}

func (m *Model) rowCount() int {
	switch m.option {
	case optExpenses:
		return len(m.ledger.Categories())
	case optHistory:
		return len(m.archives)
	default:
		return 0
	}
}

func (m *Model) selectedCategory() (core.Category, bool) {
	cats := m.ledger.Categories()
	if m.rowIdx >= len(cats) {
		return core.Category{}, false
	}
	return cats[m.rowIdx], true
}

func (m *Model) setError(err error) {
	m.logger.Warn("Command failed", log.FieldError, err)
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.mode {
	case modeForm:
		return m.overlay(m.form.view())
	case modeConfirmDelete:
		return m.overlay(m.confirmDeleteView())
	case modeEntries:
		return m.overlay(m.entriesView())
	}

	leftWidth := m.width / 3
	if leftWidth < 24 {
		leftWidth = 24
	}
	rightWidth := m.width - leftWidth - 4
	bodyHeight := m.height - 3

	left := m.leftColumn(leftWidth, bodyHeight)
	right := panelStyle.Width(rightWidth).Height(bodyHeight).Render(m.rightPanel(rightWidth))

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return view + "\n" + m.statusLine()
}

func (m Model) overlay(dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) leftColumn(width, height int) string {
	header := panelStyle.Width(width).Render(headerStyle.Width(width - 2).Render("Finance Tracker"))

	var opts strings.Builder
	for i, label := range optionLabels {
		line := " " + label
		if i == m.option {
			if m.focusRight {
				line = mutedStyle.Render("> " + label)
			} else {
				line = selectedStyle.Render("> " + label)
			}
		}
		opts.WriteString(line + "\n")
	}
	optionsHeight := height - 8
	if optionsHeight < 3 {
		optionsHeight = 3
	}
	options := panelStyle.Width(width).Height(optionsHeight).Render(opts.String())

	half := width/2 - 2
	balance := panelStyle.Width(half).Render(
		mutedStyle.Render("Balance") + "\n" + boxValueStyle.Width(half-2).Render(m.ledger.Balance().Display(m.currency)))
	savings := panelStyle.Width(half).Render(
		mutedStyle.Render("Savings") + "\n" + boxValueStyle.Width(half-2).Render(m.ledger.Savings().Display(m.currency)))
	boxes := lipgloss.JoinHorizontal(lipgloss.Top, balance, savings)

	return lipgloss.JoinVertical(lipgloss.Left, header, options, boxes)
}

func (m Model) rightPanel(width int) string {
	if m.mode == modeSnapshot {
		return m.snapshotView(width)
	}
	switch m.option {
	case optExpenses:
		return m.expensesView(width)
	case optHistory:
		return m.historyView(width)
	default:
		return titleStyle.Width(width - 2).Render("Dashboard") + "\n" +
			renderDashboard(m.ledger.HistoryDataset(), m.currency, width)
	}
}

func (m Model) expensesView(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Width(width - 2).Render("Current Expenses"))
	b.WriteString("\n")

	cats := m.ledger.Categories()
	if len(cats) == 0 {
		b.WriteString(mutedStyle.Render("No expenses yet. Press [N] to add one."))
		b.WriteString("\n")
	}
	for i, c := range cats {
		line := categoryRow(c.Name, c.Total.Display(m.currency), width-4)
		if m.focusRight && i == m.rowIdx {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + "Total:\t" + amountStyle.Render(m.ledger.TotalExpenses().Display(m.currency)))
	b.WriteString("\n" + mutedStyle.Render("[D] Deposit Balance  [N] New Expense  [X] Delete Expense  [Enter] Select Expense"))
	return b.String()
}

func (m Model) historyView(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Width(width - 2).Render("Expenses History"))
	b.WriteString("\n")
	if len(m.archives) == 0 {
		b.WriteString(mutedStyle.Render("No archived months yet."))
		return b.String()
	}
	for i, name := range m.archives {
		line := " " + name
		if m.focusRight && i == m.rowIdx {
			line = selectedStyle.Render("> " + name)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("[Enter] View Snapshot"))
	return b.String()
}

func (m Model) snapshotView(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Width(width - 2).Render(m.snapshotName + " (Snapshot)"))
	b.WriteString("\n")
	var total core.Money
	for _, c := range m.snapshotCats {
		total = total.Add(c.Total)
		b.WriteString(categoryRow(c.Name, c.Total.Display(m.currency), width-4))
		b.WriteString("\n")
	}
	b.WriteString("\n" + "Total:\t" + amountStyle.Render(total.Display(m.currency)))
	b.WriteString("\n" + mutedStyle.Render("[B] Return"))
	return b.String()
}

func (m Model) entriesView() string {
	c, ok := m.ledger.Category(m.entriesCat)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(c.Name))
	b.WriteString("\n\n")
	for i, e := range c.Entries {
		line := padRight(e.PaymentDate.String(), 12) + padRight(e.Description, 28) + e.Value.Display(m.currency)
		if i == m.entryIdx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + mutedStyle.Render("[N] New Entry  [E] Edit  [X] Delete  [Esc] Close"))
	return dialogStyle.Render(b.String())
}

func (m Model) confirmDeleteView() string {
	body := headerStyle.Render("Confirm Deletion") + "\n\n" +
		"Delete expense '" + m.pendingDelete + "'?\n\n" +
		mutedStyle.Render("[Y] Yes    [N] No")
	return dialogStyle.Render(body)
}

func (m Model) statusLine() string {
	if m.status == "" {
		return mutedStyle.Render(" [H/L] Panels  [J/K] Move  [Q] Quit")
	}
	if m.statusErr {
		return errorStyle.Render(" " + m.status)
	}
	return mutedStyle.Render(" " + m.status)
}

func categoryRow(name, amount string, width int) string {
	gap := width - len(name) - len(amount)
	if gap < 1 {
		gap = 1
	}
	return " " + name + strings.Repeat(" ", gap) + amountStyle.Render(amount)
}
