// Package tui implements the interactive expense browser.
package tui

import (
	"strings"

	"github.com/Veraticus/spendwise/internal/filter"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Source supplies the data the browser displays.
type Source interface {
	Expenses() []model.Expense
	Settings() model.Settings
}

// Filter input fields, in tab order.
const (
	inputSearch = iota
	inputFrom
	inputTo
	inputAmount
	inputCount
)

const noFocus = -1

var inputLabels = [inputCount]string{"Search", "From", "To", "Amount"}

// Model holds the browser state.
type Model struct {
	theme    themes.Theme
	settings model.Settings
	category model.Category
	expenses []model.Expense
	visible  []model.Expense
	table    table.Model
	help     help.Model
	keymap   KeyMap
	config   Config
	summary  filter.Summary
	inputs   [inputCount]textinput.Model
	width    int
	height   int
	focus    int
	quitting bool
}

// New creates a browser over the current contents of src.
func New(src Source, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := Model{
		theme:    cfg.Theme,
		settings: src.Settings(),
		expenses: src.Expenses(),
		keymap:   DefaultKeyMap(),
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		focus:    noFocus,
		category: cfg.Filter.Category,
	}

	placeholders := [inputCount]string{"description or category", "YYYY-MM-DD", "YYYY-MM-DD", "500-1000"}
	initial := [inputCount]string{
		cfg.Filter.Search,
		string(cfg.Filter.DateFrom),
		string(cfg.Filter.DateTo),
		cfg.Filter.Amount,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 50
		ti.SetValue(initial[i])
		m.inputs[i] = ti
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = m.theme.Header
	s.Selected = m.theme.Selected
	m.table.SetStyles(s)

	m.help = help.New()
	m.help.ShowAll = cfg.ShowHelp

	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.focus != noFocus {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.focus != noFocus {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Done):
		m.blur()
		return m, nil
	case key.Matches(msg, m.keymap.NextInput):
		return m, m.focusInput((m.focus + 1) % inputCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keymap.Up):
		m.table.MoveUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.table.MoveDown(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.table.MoveUp(m.table.Height())
	case key.Matches(msg, m.keymap.PageDown):
		m.table.MoveDown(m.table.Height())
	case key.Matches(msg, m.keymap.Home):
		m.table.GotoTop()
	case key.Matches(msg, m.keymap.End):
		m.table.GotoBottom()
	case key.Matches(msg, m.keymap.Search):
		return m, m.focusInput(inputSearch)
	case key.Matches(msg, m.keymap.DateFrom):
		return m, m.focusInput(inputFrom)
	case key.Matches(msg, m.keymap.DateTo):
		return m, m.focusInput(inputTo)
	case key.Matches(msg, m.keymap.Amount):
		return m, m.focusInput(inputAmount)
	case key.Matches(msg, m.keymap.NextCategory):
		m.category = cycleCategory(m.category, 1)
		m.refresh()
	case key.Matches(msg, m.keymap.PrevCategory):
		m.category = cycleCategory(m.category, -1)
		m.refresh()
	case key.Matches(msg, m.keymap.ClearFilters):
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.category = ""
		m.refresh()
	}
	return m, nil
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.blur()
	m.focus = i
	m.table.Blur()
	return m.inputs[i].Focus()
}

func (m *Model) blur() {
	if m.focus != noFocus {
		m.inputs[m.focus].Blur()
	}
	m.focus = noFocus
	m.table.Focus()
}

// Spec returns the filter currently applied.
func (m Model) Spec() filter.Spec {
	return filter.Spec{
		Search:   m.inputs[inputSearch].Value(),
		Category: m.category,
		DateFrom: model.Date(strings.TrimSpace(m.inputs[inputFrom].Value())),
		DateTo:   model.Date(strings.TrimSpace(m.inputs[inputTo].Value())),
		Amount:   m.inputs[inputAmount].Value(),
	}
}

// Visible returns the expenses passing the current filter.
func (m Model) Visible() []model.Expense {
	return m.visible
}

// Summary describes the visible expenses.
func (m Model) Summary() filter.Summary {
	return m.summary
}

// Selected returns the expense under the cursor.
func (m Model) Selected() (model.Expense, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return model.Expense{}, false
	}
	return m.visible[i], true
}

// refresh re-applies the filter and rebuilds the table rows.
func (m *Model) refresh() {
	m.visible = filter.Apply(m.expenses, m.Spec())
	m.summary = filter.Stats(m.visible)

	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, table.Row{
			e.Date.Format(),
			e.Description,
			e.Category.DisplayName(),
			m.settings.FormatAmount(e.Amount),
			e.PaymentMethod.Label(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func cycleCategory(current model.Category, step int) model.Category {
	options := append([]model.Category{""}, model.AllCategories()...)
	idx := 0
	for i, c := range options {
		if c == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}
